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
	"github.com/oracle/oci-go-sdk/v65/keymanagement"
)

// KeyValidator checks that a customer-managed key can actually be used before
// it is assigned to a file system.
type KeyValidator interface {
	ValidateKeyEnabled(ctx context.Context, keyOCID string) error
}

type kmsService struct {
	logger      logr.Logger
	provider    common.ConfigurationProvider
	vaultClient keymanagement.KmsVaultClient
	vaultOCID   string

	// bound to the vault's management endpoint on first use
	managementClient *keymanagement.KmsManagementClient
}

// NewKmsService returns a KeyValidator backed by the given vault. Key OCIDs
// can only be dereferenced through a vault-specific management endpoint, so a
// vault OCID is required.
func NewKmsService(
	logger logr.Logger,
	provider common.ConfigurationProvider,
	vaultOCID string) (KeyValidator, error) {

	vaultClient, err := keymanagement.NewKmsVaultClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, err
	}

	return &kmsService{
		logger:      logger.WithName("kmsService"),
		provider:    provider,
		vaultClient: vaultClient,
		vaultOCID:   vaultOCID,
	}, nil
}

func (k *kmsService) ValidateKeyEnabled(ctx context.Context, keyOCID string) error {
	managementClient, err := k.managementClientForVault(ctx)
	if err != nil {
		return err
	}

	request := keymanagement.GetKeyRequest{
		KeyId: common.String(keyOCID),
	}

	response, err := managementClient.GetKey(ctx, request)
	if err != nil {
		return fmt.Errorf("fetching key %s from vault %s: %w", keyOCID, k.vaultOCID, err)
	}

	if response.LifecycleState != keymanagement.KeyLifecycleStateEnabled {
		return fmt.Errorf("key %s is in state %s, expected %s",
			keyOCID, response.LifecycleState, keymanagement.KeyLifecycleStateEnabled)
	}

	k.logger.V(1).Info("validated key", "keyOCID", keyOCID, "displayName", stringValue(response.DisplayName))
	return nil
}

func (k *kmsService) managementClientForVault(ctx context.Context) (*keymanagement.KmsManagementClient, error) {
	if k.managementClient != nil {
		return k.managementClient, nil
	}

	request := keymanagement.GetVaultRequest{
		VaultId: common.String(k.vaultOCID),
	}

	response, err := k.vaultClient.GetVault(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("fetching vault %s: %w", k.vaultOCID, err)
	}

	if response.ManagementEndpoint == nil {
		return nil, fmt.Errorf("vault %s has no management endpoint", k.vaultOCID)
	}

	managementClient, err := keymanagement.NewKmsManagementClientWithConfigurationProvider(k.provider, *response.ManagementEndpoint)
	if err != nil {
		return nil, err
	}

	k.managementClient = &managementClient
	return k.managementClient, nil
}
