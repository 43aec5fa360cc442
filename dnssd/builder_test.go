package dnssd_test

import (
	"net"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/searchlight-go/searchlight/dnssd"
)

var _ = Describe("ServiceBuilder", func() {
	serviceType, _ := dnssd.NewServiceType("_searchlight._udp.local.")

	It("builds a valid registration", func() {
		reg, err := dnssd.NewServiceBuilder(serviceType, "HELLO-WORLD", 1234).
			AddAddress(net.ParseIP("192.168.1.69")).
			AddText("key", "value").
			AddText("key2", "value2").
			Build()

		Expect(err).NotTo(HaveOccurred())
		Expect(reg.Instance).To(Equal("HELLO-WORLD"))
		Expect(reg.Port).To(Equal(uint16(1234)))
		Expect(reg.Hostname).To(Equal("HELLO-WORLD.local."))
		Expect(reg.Text).To(Equal([]dnssd.TextPair{
			{Key: "key", Value: "value"},
			{Key: "key2", Value: "value2"},
		}))
	})

	It("rejects a zero port", func() {
		_, err := dnssd.NewServiceBuilder(serviceType, "HELLO-WORLD", 0).
			AddAddress(net.ParseIP("192.168.1.69")).
			Build()

		Expect(err).To(HaveOccurred())
	})

	It("rejects an empty address set", func() {
		_, err := dnssd.NewServiceBuilder(serviceType, "HELLO-WORLD", 1234).
			Build()

		Expect(err).To(HaveOccurred())
	})

	It("allows overriding the target hostname", func() {
		reg, err := dnssd.NewServiceBuilder(serviceType, "HELLO-WORLD", 1234).
			AddAddress(net.ParseIP("192.168.1.69")).
			Hostname("printer-1.local.").
			Build()

		Expect(err).NotTo(HaveOccurred())
		Expect(reg.Hostname).To(Equal("printer-1.local."))
	})
})
