package responder

import (
	"net"
	"time"

	"github.com/miekg/dns"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/searchlight-go/searchlight/dnssd"
	"github.com/searchlight-go/searchlight/transport"
)

func testRegistration() dnssd.ServiceRegistration {
	typ, _ := dnssd.NewServiceType("_http._tcp.local.")

	return dnssd.ServiceRegistration{
		Type:      typ,
		Instance:  "printer",
		Port:      8080,
		Addresses: []net.IP{net.ParseIP("10.0.0.1")},
		Hostname:  "printer.local.",
		Text:      []dnssd.TextPair{{Key: "path", Value: "/"}},
	}
}

var _ = Describe("registry", func() {
	var reg *registry

	BeforeEach(func() {
		reg = newRegistry([]dnssd.ServiceRegistration{testRegistration()}, 120*time.Second)
	})

	It("answers a PTR question with the PTR in Answer and the rest in Additional", func() {
		sec := reg.answer("_http._tcp.local.", dns.TypePTR)

		Expect(sec.Answer).To(HaveLen(1))
		Expect(sec.Answer[0]).To(BeAssignableToTypeOf(&dns.PTR{}))
		Expect(sec.Additional).To(HaveLen(3)) // SRV, TXT, A
	})

	It("answers an SRV question for the instance owner name", func() {
		sec := reg.answer("printer._http._tcp.local.", dns.TypeSRV)

		Expect(sec.Answer).To(HaveLen(1))
		Expect(sec.Answer[0]).To(BeAssignableToTypeOf(&dns.SRV{}))
		Expect(sec.Additional).To(HaveLen(1)) // the A record
	})

	It("answers a TXT question for the instance owner name", func() {
		sec := reg.answer("printer._http._tcp.local.", dns.TypeTXT)

		Expect(sec.Answer).To(HaveLen(1))
		Expect(sec.Answer[0]).To(BeAssignableToTypeOf(&dns.TXT{}))
		Expect(sec.Additional).To(BeEmpty())
	})

	It("answers an A question for the host name", func() {
		sec := reg.answer("printer.local.", dns.TypeA)

		Expect(sec.Answer).To(HaveLen(1))
		Expect(sec.Answer[0]).To(BeAssignableToTypeOf(&dns.A{}))
	})

	It("returns empty sections for an unrelated name", func() {
		sec := reg.answer("someone.else._http._tcp.local.", dns.TypeANY)
		Expect(sec.isEmpty()).To(BeTrue())
	})

	It("clears the cache-flush bit on PTR and sets it on unique types", func() {
		sec := reg.answer("_http._tcp.local.", dns.TypePTR)

		ptr := applyCacheFlush(sec.Answer[0])
		flushed, _ := transport.IsUniqueRecord(ptr)
		Expect(flushed).To(BeFalse())

		srv := applyCacheFlush(sec.Additional[0])
		flushed, _ = transport.IsUniqueRecord(srv)
		Expect(flushed).To(BeTrue())
	})
})
