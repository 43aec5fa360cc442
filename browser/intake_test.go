package browser

import (
	"github.com/dogmatiq/dodeca/logging"
	"github.com/miekg/dns"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/searchlight-go/searchlight/dnssd"
)

var _ = Describe("messageMatches", func() {
	typ, _ := dnssd.NewServiceType("_http._tcp.local.")

	It("matches a message carrying a PTR for the service type", func() {
		m := &dns.Msg{Answer: []dns.RR{
			&dns.PTR{Hdr: dns.RR_Header{Name: "_http._tcp.local.", Rrtype: dns.TypePTR}, Ptr: "printer._http._tcp.local."},
		}}

		Expect(messageMatches(m, typ)).To(BeTrue())
	})

	It("matches a message carrying only an SRV under the service type", func() {
		m := &dns.Msg{Answer: []dns.RR{
			&dns.SRV{Hdr: dns.RR_Header{Name: "printer._http._tcp.local.", Rrtype: dns.TypeSRV}, Target: "printer.local."},
		}}

		Expect(messageMatches(m, typ)).To(BeTrue())
	})

	It("does not match an unrelated service type", func() {
		m := &dns.Msg{Answer: []dns.RR{
			&dns.PTR{Hdr: dns.RR_Header{Name: "_ipp._tcp.local.", Rrtype: dns.TypePTR}, Ptr: "printer._ipp._tcp.local."},
		}}

		Expect(messageMatches(m, typ)).To(BeFalse())
	})
})

var _ = Describe("trackIgnored", func() {
	It("logs and resets once the threshold is reached", func() {
		b := &Browser{maxIgnored: 2, logger: logging.DiscardLogger{}}

		b.trackIgnored(false)
		Expect(b.ignoredRun).To(Equal(uint32(1)))

		b.trackIgnored(false)
		Expect(b.ignoredRun).To(Equal(uint32(0)))
	})

	It("resets on a matched message", func() {
		b := &Browser{maxIgnored: 5, ignoredRun: 3}

		b.trackIgnored(true)
		Expect(b.ignoredRun).To(Equal(uint32(0)))
	})

	It("never increments when disabled", func() {
		b := &Browser{maxIgnored: 0}

		b.trackIgnored(false)
		Expect(b.ignoredRun).To(Equal(uint32(0)))
	})
})
