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
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/common/auth"
)

// DefaultProfile is the profile used when none is given on the command line.
const DefaultProfile = "DEFAULT"

// NewConfigurationProvider builds the authentication provider for all OCI
// clients. With a config file the named profile of that file is used;
// without one the tool falls back to Instance Principal, which only works
// when running on an OCI compute instance with the right dynamic-group
// policies.
func NewConfigurationProvider(configFile string, profile string) (common.ConfigurationProvider, error) {
	if configFile == "" {
		provider, err := auth.InstancePrincipalConfigurationProvider()
		if err != nil {
			return nil, fmt.Errorf("building Instance Principal provider: %w", err)
		}
		return provider, nil
	}

	if profile == "" {
		profile = DefaultProfile
	}

	expanded, err := expandPath(configFile)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(expanded); err != nil {
		return nil, fmt.Errorf("reading OCI config file %s: %w", configFile, err)
	}

	return common.CustomProfileConfigProvider(expanded, profile), nil
}

// expandPath resolves a leading "~" the way the OCI CLI does, since config
// files are conventionally referred to as ~/.oci/config.
func expandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	current, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}

	if path == "~" {
		return current.HomeDir, nil
	}
	return filepath.Join(current.HomeDir, path[2:]), nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
