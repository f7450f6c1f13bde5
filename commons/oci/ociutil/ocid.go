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

package ociutil

import (
	"fmt"
	"strings"
)

// OCIDs are dot-separated: ocid1.<resource-type>.<realm>.<region>.<future-use>.<unique-id>.
// Regional OCIDs carry either the short region code ("phx") or the full region
// identifier ("us-phoenix-1") in the region segment; tenancy-level OCIDs leave
// it empty.
const (
	ocidPrefix        = "ocid1"
	regionSegmentPos  = 3
	minimumOCIDFields = 5
)

// RegionSegment returns the region segment of a regional OCID.
func RegionSegment(ocid string) (string, error) {
	parts := strings.Split(ocid, ".")
	if len(parts) < minimumOCIDFields || parts[0] != ocidPrefix {
		return "", fmt.Errorf("malformed OCID %q", ocid)
	}

	region := parts[regionSegmentPos]
	if region == "" {
		return "", fmt.Errorf("OCID %q has no region segment", ocid)
	}

	return region, nil
}

// ResourceType returns the resource-type segment of an OCID, e.g.
// "drprotectiongroup" or "filesystem".
func ResourceType(ocid string) (string, error) {
	parts := strings.Split(ocid, ".")
	if len(parts) < minimumOCIDFields || parts[0] != ocidPrefix {
		return "", fmt.Errorf("malformed OCID %q", ocid)
	}

	return parts[1], nil
}
