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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RegionSegment", func() {
	It("extracts a short region code", func() {
		region, err := RegionSegment("ocid1.drprotectiongroup.oc1.phx.exampleuniqueid")
		Expect(err).ToNot(HaveOccurred())
		Expect(region).To(Equal("phx"))
	})

	It("extracts a long region identifier", func() {
		region, err := RegionSegment("ocid1.filesystem.oc1.us-phoenix-1.exampleuniqueid")
		Expect(err).ToNot(HaveOccurred())
		Expect(region).To(Equal("us-phoenix-1"))
	})

	It("rejects a tenancy-level OCID with an empty region segment", func() {
		_, err := RegionSegment("ocid1.tenancy.oc1..exampleuniqueid")
		Expect(err).To(MatchError(ContainSubstring("no region segment")))
	})

	It("rejects a string that is not an OCID", func() {
		_, err := RegionSegment("not-an-ocid")
		Expect(err).To(MatchError(ContainSubstring("malformed OCID")))
	})

	It("rejects an OCID with too few segments", func() {
		_, err := RegionSegment("ocid1.key.oc1.iad")
		Expect(err).To(MatchError(ContainSubstring("malformed OCID")))
	})
})

var _ = Describe("ResourceType", func() {
	It("returns the resource-type segment", func() {
		resourceType, err := ResourceType("ocid1.drprotectiongroup.oc1.phx.exampleuniqueid")
		Expect(err).ToNot(HaveOccurred())
		Expect(resourceType).To(Equal("drprotectiongroup"))
	})

	It("rejects a malformed OCID", func() {
		_, err := ResourceType("")
		Expect(err).To(MatchError(ContainSubstring("malformed OCID")))
	})
})
