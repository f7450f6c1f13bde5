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

package oci

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/disasterrecovery"
)

// ProtectionGroup is the subset of a DR protection group this tool acts on.
type ProtectionGroup struct {
	OCID            string
	DisplayName     string
	Role            string
	LifecycleState  string
	FileSystemOCIDs []string
}

type DisasterRecoveryService interface {
	GetProtectionGroup(ctx context.Context, drpgOCID string) (*ProtectionGroup, error)
}

type disasterRecoveryService struct {
	logger   logr.Logger
	drClient disasterrecovery.DisasterRecoveryClient
}

func NewDisasterRecoveryService(
	logger logr.Logger,
	provider common.ConfigurationProvider) (DisasterRecoveryService, error) {

	drClient, err := disasterrecovery.NewDisasterRecoveryClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, err
	}

	return &disasterRecoveryService{
		logger:   logger.WithName("disasterRecoveryService"),
		drClient: drClient,
	}, nil
}

// GetProtectionGroup fetches the DR protection group and collects the OCIDs of
// its FILE_SYSTEM members. Members of other types are ignored.
func (d *disasterRecoveryService) GetProtectionGroup(ctx context.Context, drpgOCID string) (*ProtectionGroup, error) {
	request := disasterrecovery.GetDrProtectionGroupRequest{
		DrProtectionGroupId: common.String(drpgOCID),
	}

	response, err := d.drClient.GetDrProtectionGroup(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("fetching DR protection group %s: %w", drpgOCID, err)
	}

	group := &ProtectionGroup{
		OCID:           drpgOCID,
		DisplayName:    stringValue(response.DisplayName),
		Role:           string(response.Role),
		LifecycleState: string(response.LifecycleState),
	}

	for _, member := range response.Members {
		fssMember, ok := member.(disasterrecovery.DrProtectionGroupMemberFileSystem)
		if !ok {
			continue
		}
		if fssMember.MemberId == nil {
			continue
		}
		group.FileSystemOCIDs = append(group.FileSystemOCIDs, *fssMember.MemberId)
	}

	d.logger.V(1).Info("fetched DR protection group",
		"displayName", group.DisplayName,
		"role", group.Role,
		"fileSystems", len(group.FileSystemOCIDs))

	return group, nil
}
