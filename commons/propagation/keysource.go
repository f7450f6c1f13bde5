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

package propagation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TagKeyPrefix is the freeform-tag naming convention carried over from the
// source file systems: key_<regioncode> -> key OCID.
const TagKeyPrefix = "key_"

// KeySource resolves the customer-managed key for a file system. Entries from
// a key mapping file take precedence over the file system's freeform tags.
type KeySource struct {
	regionCode string
	overrides  map[string]string
}

func NewKeySource(regionCode string, overrides map[string]string) *KeySource {
	return &KeySource{
		regionCode: strings.ToLower(regionCode),
		overrides:  overrides,
	}
}

// TagKey returns the freeform-tag key looked up on each file system.
func (s *KeySource) TagKey() string {
	return TagKeyPrefix + s.regionCode
}

// RegionCode returns the lowercase region code this source resolves for.
func (s *KeySource) RegionCode() string {
	return s.regionCode
}

// Resolve returns the key OCID for the target region and a description of
// where it came from. ok is false when neither the mapping file nor the tags
// carry an entry for the region.
func (s *KeySource) Resolve(freeformTags map[string]string) (keyOCID string, origin string, ok bool) {
	if keyOCID, ok := s.overrides[s.regionCode]; ok && keyOCID != "" {
		return keyOCID, "key mapping file", true
	}

	if keyOCID, ok := freeformTags[s.TagKey()]; ok && keyOCID != "" {
		return keyOCID, "freeform tag " + s.TagKey(), true
	}

	return "", "", false
}

// LoadKeyMappingFile reads a YAML file mapping region codes to key OCIDs:
//
//	iad: ocid1.key.oc1.iad.aaaa....
//	phx: ocid1.key.oc1.phx.bbbb....
//
// Region codes are lowercased so the file does not have to match OCID casing.
func LoadKeyMappingFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key mapping file %s: %w", path, err)
	}

	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing key mapping file %s: %w", path, err)
	}

	mapping := make(map[string]string, len(raw))
	for regionCode, keyOCID := range raw {
		if keyOCID == "" {
			return nil, fmt.Errorf("key mapping file %s: empty key OCID for region %q", path, regionCode)
		}
		mapping[strings.ToLower(regionCode)] = keyOCID
	}

	return mapping, nil
}
