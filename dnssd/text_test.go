package dnssd_test

import (
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/searchlight-go/searchlight/dnssd"
)

var _ = Describe("TextPair", func() {
	Describe("String", func() {
		It("renders key=value when a value is present", func() {
			p := dnssd.TextPair{Key: "key", Value: "value"}
			Expect(p.String()).To(Equal("key=value"))
		})

		It("renders a bare key when the value is empty", func() {
			p := dnssd.TextPair{Key: "key"}
			Expect(p.String()).To(Equal("key"))
		})
	})

	Describe("Encode", func() {
		It("rejects a pair that exceeds 255 octets", func() {
			p := dnssd.TextPair{Key: "key", Value: strings.Repeat("x", 255)}
			_, err := p.Encode()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Truncate", func() {
		It("shortens the value so the pair fits within 255 octets", func() {
			p := dnssd.TextPair{Key: "key", Value: strings.Repeat("x", 300)}.Truncate()
			Expect(len(p.String())).To(Equal(255))
		})

		It("leaves short pairs unchanged", func() {
			p := dnssd.TextPair{Key: "key", Value: "value"}.Truncate()
			Expect(p).To(Equal(dnssd.TextPair{Key: "key", Value: "value"}))
		})
	})
})

var _ = Describe("EncodeTextPairs", func() {
	It("preserves input order", func() {
		out, err := dnssd.EncodeTextPairs([]dnssd.TextPair{
			{Key: "key", Value: "value"},
			{Key: "key2", Value: "value2"},
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal([]string{"key=value", "key2=value2"}))
	})
})
