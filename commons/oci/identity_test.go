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
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeIdentityService struct {
	codes map[string]string
	err   error
}

func (f *fakeIdentityService) RegionCodes(ctx context.Context) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.codes, nil
}

var _ = Describe("NormalizeRegionCode", func() {
	var identitySvc *fakeIdentityService

	BeforeEach(func() {
		identitySvc = &fakeIdentityService{
			codes: map[string]string{
				"us-phoenix-1":   "phx",
				"us-ashburn-1":   "iad",
				"eu-frankfurt-1": "fra",
			},
		}
	})

	It("passes a short region code through without a lookup", func() {
		identitySvc.err = errors.New("should not be called")

		code, err := NormalizeRegionCode(context.Background(), identitySvc, "PHX")
		Expect(err).ToNot(HaveOccurred())
		Expect(code).To(Equal("phx"))
	})

	It("translates a long region identifier through the region dictionary", func() {
		code, err := NormalizeRegionCode(context.Background(), identitySvc, "us-ashburn-1")
		Expect(err).ToNot(HaveOccurred())
		Expect(code).To(Equal("iad"))
	})

	It("fails on a region identifier missing from the dictionary", func() {
		_, err := NormalizeRegionCode(context.Background(), identitySvc, "xx-nowhere-9")
		Expect(err).To(MatchError(ContainSubstring("not in the tenancy's region list")))
	})

	It("propagates a region dictionary lookup failure", func() {
		identitySvc.err = errors.New("authentication failed")

		_, err := NormalizeRegionCode(context.Background(), identitySvc, "us-phoenix-1")
		Expect(err).To(MatchError(ContainSubstring("authentication failed")))
	})
})
