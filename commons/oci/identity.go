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
	"strings"

	"github.com/go-logr/logr"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/identity"
)

type IdentityService interface {
	RegionCodes(ctx context.Context) (map[string]string, error)
}

type identityService struct {
	logger         logr.Logger
	identityClient identity.IdentityClient
}

func NewIdentityService(
	logger logr.Logger,
	provider common.ConfigurationProvider) (IdentityService, error) {

	identityClient, err := identity.NewIdentityClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, err
	}

	return &identityService{
		logger:         logger.WithName("identityService"),
		identityClient: identityClient,
	}, nil
}

// RegionCodes returns the mapping of region name to lowercase region code,
// e.g. "us-ashburn-1" -> "iad".
func (i *identityService) RegionCodes(ctx context.Context) (map[string]string, error) {
	response, err := i.identityClient.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing subscribed regions: %w", err)
	}

	codes := make(map[string]string, len(response.Items))
	for _, region := range response.Items {
		if region.Name == nil || region.Key == nil {
			continue
		}
		codes[strings.ToLower(*region.Name)] = strings.ToLower(*region.Key)
	}

	i.logger.V(1).Info("fetched region dictionary", "regions", len(codes))
	return codes, nil
}

// NormalizeRegionCode maps the region segment of an OCID to the short region
// code used in tag keys. Older realms embed the short code ("phx") directly;
// newer regions embed the full region identifier ("us-phoenix-1"), which is
// translated through the tenancy's region dictionary.
func NormalizeRegionCode(ctx context.Context, identitySvc IdentityService, segment string) (string, error) {
	code := strings.ToLower(segment)
	if !strings.Contains(code, "-") {
		return code, nil
	}

	codes, err := identitySvc.RegionCodes(ctx)
	if err != nil {
		return "", err
	}

	short, ok := codes[code]
	if !ok {
		return "", fmt.Errorf("region %q is not in the tenancy's region list", segment)
	}
	return short, nil
}
