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

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oracle-samples/oci-fsdr-fss-cmk/commons/oci"
	"github.com/oracle-samples/oci-fsdr-fss-cmk/commons/oci/ociutil"
	"github.com/oracle-samples/oci-fsdr-fss-cmk/commons/propagation"
)

type options struct {
	drProtectionGroupOCID string
	configFile            string
	profile               string
	keyMappingFile        string
	kmsVaultOCID          string
	logFile               string
	dryRun                bool
	debug                 bool
}

const longHelp = `Updates the KMS key on the File Systems created during a Full Stack DR
switchover. The tool reads the freeform tags carried over from the source
File Systems and sets the customer-managed key on each restored File System
accordingly. Tags follow the convention key_<regioncode> -> key OCID, e.g.

    key_iad: ocid1.key.oc1.iad.aaaa...
    key_phx: ocid1.key.oc1.phx.bbbb...

Without --config_file the tool authenticates with Instance Principal.`

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "fss-update-cmk",
		Short:        "Propagate customer-managed KMS keys to file systems restored by Full Stack DR",
		Long:         longHelp,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd.Context(), &opts)
		},
	}

	flags := cmd.Flags()
	flags.SetNormalizeFunc(normalizeFlagName)
	flags.StringVar(&opts.drProtectionGroupOCID, "dr_protection_group_ocid", "",
		"OCID of the DR protection group whose file systems receive the key (required)")
	flags.StringVar(&opts.configFile, "config_file", "",
		"path to the OCI config file; omit to authenticate with Instance Principal")
	flags.StringVar(&opts.profile, "profile", oci.DefaultProfile,
		"profile to use within the OCI config file")
	flags.StringVar(&opts.keyMappingFile, "key_mapping_file", "",
		"YAML file mapping region codes to key OCIDs, overriding freeform tags")
	flags.StringVar(&opts.kmsVaultOCID, "kms_vault_ocid", "",
		"OCID of the vault holding the keys; when set, keys are validated before any update")
	flags.StringVar(&opts.logFile, "log_file", "",
		"also write logs to this file, rotated by size")
	flags.BoolVar(&opts.dryRun, "dry_run", false,
		"log the planned updates without calling the update API")
	flags.BoolVar(&opts.debug, "debug", false,
		"enable verbose logging")

	cobra.CheckErr(cmd.MarkFlagRequired("dr_protection_group_ocid"))

	return cmd
}

// normalizeFlagName accepts hyphenated spellings of the documented
// underscore flags, e.g. --dr-protection-group-ocid.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "-", "_"))
}

func runUpdate(ctx context.Context, opts *options) error {
	logger, flush := newLogger(opts.debug, opts.logFile)
	defer flush()

	start := time.Now()
	logger.Info("execution started",
		"drProtectionGroupOCID", opts.drProtectionGroupOCID,
		"dryRun", opts.dryRun)
	defer func() {
		logger.Info("execution finished", "elapsed", time.Since(start).Round(time.Millisecond).String())
	}()

	resourceType, err := ociutil.ResourceType(opts.drProtectionGroupOCID)
	if err != nil {
		return err
	}
	if resourceType != "drprotectiongroup" {
		return fmt.Errorf("--dr_protection_group_ocid refers to a %s OCID, expected drprotectiongroup", resourceType)
	}

	regionSegment, err := ociutil.RegionSegment(opts.drProtectionGroupOCID)
	if err != nil {
		return err
	}

	var overrides map[string]string
	if opts.keyMappingFile != "" {
		if overrides, err = propagation.LoadKeyMappingFile(opts.keyMappingFile); err != nil {
			return err
		}
	}

	provider, err := oci.NewConfigurationProvider(opts.configFile, opts.profile)
	if err != nil {
		return err
	}

	identitySvc, err := oci.NewIdentityService(logger, provider)
	if err != nil {
		return err
	}

	drSvc, err := oci.NewDisasterRecoveryService(logger, provider)
	if err != nil {
		return err
	}

	fssSvc, err := oci.NewFileStorageService(logger, provider)
	if err != nil {
		return err
	}

	var validator oci.KeyValidator
	if opts.kmsVaultOCID != "" {
		if validator, err = oci.NewKmsService(logger, provider, opts.kmsVaultOCID); err != nil {
			return err
		}
	}

	regionCode, err := oci.NormalizeRegionCode(ctx, identitySvc, regionSegment)
	if err != nil {
		return err
	}
	logger.V(1).Info("resolved target region", "regionCode", regionCode)

	propagator := propagation.New(propagation.Params{
		Logger:      logger,
		Groups:      drSvc,
		FileSystems: fssSvc,
		Keys:        propagation.NewKeySource(regionCode, overrides),
		Validator:   validator,
		DryRun:      opts.dryRun,
	})

	result, err := propagator.Run(ctx, opts.drProtectionGroupOCID)
	logger.Info("pass completed",
		"total", result.Total,
		"updated", result.Updated,
		"planned", result.Planned,
		"skipped", result.Skipped,
		"failed", result.Failed)

	return err
}
