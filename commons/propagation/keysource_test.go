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
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("KeySource", func() {
	const (
		phxKey = "ocid1.key.oc1.phx.examplephxkey"
		iadKey = "ocid1.key.oc1.iad.exampleiadkey"
	)

	It("builds the tag key from the lowercased region code", func() {
		Expect(NewKeySource("PHX", nil).TagKey()).To(Equal("key_phx"))
	})

	It("resolves the key from the freeform tag of the target region", func() {
		source := NewKeySource("phx", nil)
		keyOCID, origin, ok := source.Resolve(map[string]string{
			"key_phx": phxKey,
			"key_iad": iadKey,
		})
		Expect(ok).To(BeTrue())
		Expect(keyOCID).To(Equal(phxKey))
		Expect(origin).To(ContainSubstring("key_phx"))
	})

	It("prefers the mapping file entry over the tag", func() {
		source := NewKeySource("phx", map[string]string{"phx": iadKey})
		keyOCID, origin, ok := source.Resolve(map[string]string{"key_phx": phxKey})
		Expect(ok).To(BeTrue())
		Expect(keyOCID).To(Equal(iadKey))
		Expect(origin).To(Equal("key mapping file"))
	})

	It("reports no key when neither source has an entry", func() {
		source := NewKeySource("phx", map[string]string{"iad": iadKey})
		_, _, ok := source.Resolve(map[string]string{"key_iad": iadKey})
		Expect(ok).To(BeFalse())
	})

	It("ignores an empty tag value", func() {
		source := NewKeySource("phx", nil)
		_, _, ok := source.Resolve(map[string]string{"key_phx": ""})
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("LoadKeyMappingFile", func() {
	writeMapping := func(content string) string {
		path := filepath.Join(GinkgoT().TempDir(), "keys.yaml")
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
		return path
	}

	It("loads region codes lowercased", func() {
		path := writeMapping("IAD: ocid1.key.oc1.iad.aaaa\nphx: ocid1.key.oc1.phx.bbbb\n")
		mapping, err := LoadKeyMappingFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(mapping).To(Equal(map[string]string{
			"iad": "ocid1.key.oc1.iad.aaaa",
			"phx": "ocid1.key.oc1.phx.bbbb",
		}))
	})

	It("rejects an entry with an empty key OCID", func() {
		path := writeMapping("iad: \"\"\n")
		_, err := LoadKeyMappingFile(path)
		Expect(err).To(MatchError(ContainSubstring("empty key OCID")))
	})

	It("rejects a file that is not a flat mapping", func() {
		path := writeMapping("- iad\n- phx\n")
		_, err := LoadKeyMappingFile(path)
		Expect(err).To(MatchError(ContainSubstring("parsing key mapping file")))
	})

	It("fails on a missing file", func() {
		_, err := LoadKeyMappingFile(filepath.Join(GinkgoT().TempDir(), "absent.yaml"))
		Expect(err).To(MatchError(ContainSubstring("reading key mapping file")))
	})
})
