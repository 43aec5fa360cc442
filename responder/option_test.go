package responder_test

import (
	"net"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/searchlight-go/searchlight/dnssd"
	"github.com/searchlight-go/searchlight/responder"
)

func validRegistration() dnssd.ServiceRegistration {
	typ, _ := dnssd.NewServiceType("_http._tcp.local.")

	reg, err := dnssd.NewServiceBuilder(typ, "printer", 8080).
		AddAddress(net.ParseIP("10.0.0.1")).
		Build()
	Expect(err).NotTo(HaveOccurred())

	return reg
}

var _ = Describe("New", func() {
	It("rejects a configuration with no registered service", func() {
		_, err := responder.New()
		Expect(err).To(HaveOccurred())
	})

	It("rejects an invalid registration", func() {
		_, err := responder.New(
			responder.WithService(dnssd.ServiceRegistration{}),
		)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a non-positive TTL", func() {
		_, err := responder.New(
			responder.WithService(validRegistration()),
			responder.WithTTL(0),
		)
		Expect(err).To(HaveOccurred())
	})

	It("accepts a minimal valid configuration", func() {
		r, err := responder.New(
			responder.WithService(validRegistration()),
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(r).NotTo(BeNil())
	})

	It("accepts several registrations and probing disabled", func() {
		r, err := responder.New(
			responder.WithService(validRegistration()),
			responder.WithTTL(60*time.Second),
			responder.DisableProbing,
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(r).NotTo(BeNil())
	})
})
