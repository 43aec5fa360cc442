package responder

import (
	"github.com/miekg/dns"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("suppressKnown", func() {
	ptr := func(ttl uint32) *dns.PTR {
		return &dns.PTR{
			Hdr: dns.RR_Header{Name: "_http._tcp.local.", Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: ttl},
			Ptr: "printer._http._tcp.local.",
		}
	}

	It("omits a candidate the query already knows with a fresh-enough TTL", func() {
		candidates := []dns.RR{ptr(120)}
		known := []dns.RR{ptr(90)} // >= half of 120

		out := suppressKnown(candidates, known)
		Expect(out).To(BeEmpty())
	})

	It("keeps a candidate when the known copy's remaining TTL is too stale", func() {
		candidates := []dns.RR{ptr(120)}
		known := []dns.RR{ptr(10)} // < half of 120

		out := suppressKnown(candidates, known)
		Expect(out).To(HaveLen(1))
	})

	It("keeps a candidate with no matching known answer", func() {
		candidates := []dns.RR{ptr(120)}

		out := suppressKnown(candidates, nil)
		Expect(out).To(HaveLen(1))
	})
})
