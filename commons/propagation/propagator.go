/*
** Copyright (c) 2025 Oracle and/or its affiliates.
**
** The Universal Permissive License (UPL), Version 1.0
**
** Subject to the condition set forth below, permission is hereby granted to any
** person obtaining a copy of this software, associated documentation and/or data
** (collectively the "Software"), free of charge and under any and all copyright
** rights in the Software, and any and all patent rights owned or freely
** licensable by each licensor hereunder covering either (i) the unmodified
** Software as contributed to or provided by such licensor, or (ii) the Larger
** Works (as defined below), to deal in both
**
** (a) the Software, and
** (b) any piece of software and/or hardware listed in the lrgrwrks.txt file if
** one is included with the Software (each a "Larger Work" to which the Software
** is contributed by such licensors),
**
** without restriction, including without limitation the rights to copy, create
** derivative works of, display, perform, and distribute the Software and make,
** use, sell, offer for sale, import, export, have made, and have sold the
** Software and the Larger Work(s), and to sublicense the foregoing rights on
** either these or other terms.
**
** This license is subject to the following condition:
** The above copyright notice and either this complete permission notice or at
** a minimum a reference to the UPL must be included in all copies or
** substantial portions of the Software.
**
** THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
** IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
** FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
** AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
** LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
** OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
** SOFTWARE.
 */

// Package propagation implements the per-file-system decision loop: after a
// Full Stack DR switchover, file systems restored in the standby region come
// up without their customer-managed key, and the key to assign is carried in
// freeform tags copied over from the source.
package propagation

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-multierror"

	"github.com/oracle-samples/oci-fsdr-fss-cmk/commons/oci"
)

// Params carries the collaborators of a Propagator. Validator may be nil, in
// which case resolved keys are assigned without a KMS lookup.
type Params struct {
	Logger      logr.Logger
	Groups      oci.DisasterRecoveryService
	FileSystems oci.FileStorageService
	Keys        *KeySource
	Validator   oci.KeyValidator
	DryRun      bool
}

type Propagator struct {
	logger      logr.Logger
	groups      oci.DisasterRecoveryService
	fileSystems oci.FileStorageService
	keys        *KeySource
	validator   oci.KeyValidator
	dryRun      bool
}

func New(p Params) *Propagator {
	return &Propagator{
		logger:      p.Logger.WithName("propagator"),
		groups:      p.Groups,
		fileSystems: p.FileSystems,
		keys:        p.Keys,
		validator:   p.Validator,
		dryRun:      p.DryRun,
	}
}

// Result counts the outcome per file system of a single pass. Planned counts
// the updates a dry run would have made; Updated only ever counts real calls.
type Result struct {
	Total   int
	Updated int
	Planned int
	Skipped int
	Failed  int
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeUpdated
	outcomePlanned
)

// Run performs one pass over the FILE_SYSTEM members of the DR protection
// group. A failure on one file system does not stop the pass; failures are
// aggregated and returned together with the counts.
func (p *Propagator) Run(ctx context.Context, drpgOCID string) (Result, error) {
	group, err := p.groups.GetProtectionGroup(ctx, drpgOCID)
	if err != nil {
		return Result{}, err
	}

	result := Result{Total: len(group.FileSystemOCIDs)}

	if result.Total == 0 {
		p.logger.Info("no file systems found in DR protection group",
			"displayName", group.DisplayName, "role", group.Role)
		return result, nil
	}

	p.logger.Info("file systems found in DR protection group",
		"displayName", group.DisplayName,
		"role", group.Role,
		"count", result.Total,
		"fileSystems", group.FileSystemOCIDs)

	var errs *multierror.Error
	for _, fileSystemOCID := range group.FileSystemOCIDs {
		outcome, err := p.propagateOne(ctx, fileSystemOCID)
		if err != nil {
			result.Failed++
			errs = multierror.Append(errs, fmt.Errorf("file system %s: %w", fileSystemOCID, err))
			continue
		}

		switch outcome {
		case outcomeUpdated:
			result.Updated++
		case outcomePlanned:
			result.Planned++
		case outcomeSkipped:
			result.Skipped++
		}
	}

	return result, errs.ErrorOrNil()
}

func (p *Propagator) propagateOne(ctx context.Context, fileSystemOCID string) (outcome, error) {
	fileSystem, err := p.fileSystems.GetFileSystem(ctx, fileSystemOCID)
	if err != nil {
		return outcomeSkipped, err
	}

	logger := p.logger.WithValues(
		"displayName", fileSystem.DisplayName,
		"fileSystemOCID", fileSystem.OCID)

	if fileSystem.KmsKeyOCID != "" {
		logger.Info("skipping update, file system already has a customer-managed key",
			"kmsKeyOCID", fileSystem.KmsKeyOCID)
		return outcomeSkipped, nil
	}

	keyOCID, origin, ok := p.keys.Resolve(fileSystem.FreeformTags)
	if !ok {
		logger.Info("skipping update, no key found for region",
			"tagKey", p.keys.TagKey(),
			"freeformTags", fileSystem.FreeformTags)
		return outcomeSkipped, nil
	}

	if p.validator != nil {
		if err := p.validator.ValidateKeyEnabled(ctx, keyOCID); err != nil {
			return outcomeSkipped, err
		}
	}

	if p.dryRun {
		logger.Info("dry run, file system would be updated with the new customer-managed key",
			"kmsKeyOCID", keyOCID, "keyOrigin", origin)
		return outcomePlanned, nil
	}

	logger.Info("updating file system with the new customer-managed key",
		"kmsKeyOCID", keyOCID, "keyOrigin", origin)

	if err := p.fileSystems.UpdateKmsKey(ctx, fileSystem.OCID, keyOCID); err != nil {
		return outcomeSkipped, err
	}

	return outcomeUpdated, nil
}
