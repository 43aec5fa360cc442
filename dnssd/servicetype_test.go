package dnssd_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/searchlight-go/searchlight/dnssd"
)

var _ = Describe("NewServiceType", func() {
	It("canonicalizes to lower-case with a trailing dot", func() {
		t, err := dnssd.NewServiceType("_Searchlight._UDP.Local")

		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(dnssd.ServiceType("_searchlight._udp.local.")))
	})

	It("accepts a service type that already has a trailing dot", func() {
		_, err := dnssd.NewServiceType("_http._tcp.local.")

		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a name that is not tcp or udp scoped", func() {
		_, err := dnssd.NewServiceType("_http._local.")

		Expect(err).To(HaveOccurred())
	})

	It("rejects an empty service type", func() {
		_, err := dnssd.NewServiceType("")

		Expect(err).To(HaveOccurred())
	})
})
