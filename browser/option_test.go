package browser_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/searchlight-go/searchlight/browser"
	"github.com/searchlight-go/searchlight/dnssd"
)

var _ = Describe("New", func() {
	It("rejects a configuration with no subscribed service type", func() {
		_, err := browser.New()
		Expect(err).To(HaveOccurred())
	})

	It("accepts a minimal valid configuration", func() {
		typ, _ := dnssd.NewServiceType("_http._tcp.local.")

		b, err := browser.New(browser.WithServiceType(typ))
		Expect(err).NotTo(HaveOccurred())
		Expect(b).NotTo(BeNil())
	})

	It("accepts several subscribed service types", func() {
		t1, _ := dnssd.NewServiceType("_http._tcp.local.")
		t2, _ := dnssd.NewServiceType("_ipp._tcp.local.")

		b, err := browser.New(
			browser.WithServiceType(t1),
			browser.WithServiceType(t2),
			browser.WithMaxIgnoredPackets(50),
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(b).NotTo(BeNil())
	})
})

var _ = Describe("Run", func() {
	It("rejects a nil callback", func() {
		typ, _ := dnssd.NewServiceType("_http._tcp.local.")
		b, err := browser.New(browser.WithServiceType(typ))
		Expect(err).NotTo(HaveOccurred())

		err = b.Run(nil, nil) //nolint:staticcheck // exercising the nil-ctx-agnostic guard
		Expect(err).To(HaveOccurred())
	})
})
