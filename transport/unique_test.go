package transport_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/miekg/dns"
	"github.com/searchlight-go/searchlight/transport"
)

var _ = Describe("SetUniqueRecord and IsUniqueRecord", func() {
	It("roundtrips the cache-flush bit without mutating the original record", func() {
		rr := &dns.A{
			Hdr: dns.RR_Header{Name: "host.local.", Rrtype: dns.TypeA, Class: dns.ClassINET, Ttl: 120},
		}

		flagged := transport.SetUniqueRecord(rr)
		Expect(rr.Hdr.Class).To(Equal(uint16(dns.ClassINET)), "original record must be unchanged")

		unique, cleared := transport.IsUniqueRecord(flagged)
		Expect(unique).To(BeTrue())
		Expect(cleared.Header().Class).To(Equal(uint16(dns.ClassINET)))
	})

	It("reports false for a record without the bit set", func() {
		rr := &dns.A{Hdr: dns.RR_Header{Class: dns.ClassINET}}

		unique, _ := transport.IsUniqueRecord(rr)
		Expect(unique).To(BeFalse())
	})
})
