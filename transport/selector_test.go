package transport_test

import (
	"net"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/searchlight-go/searchlight/transport"
)

var _ = Describe("Selector", func() {
	It("matches everything when empty", func() {
		Expect(transport.AllInterfaces.IsAll()).To(BeTrue())
		Expect(transport.AllInterfaces.Matches(net.Interface{Index: 7, Name: "eth0"})).To(BeTrue())
	})

	It("matches by index", func() {
		sel := transport.Selector{Indices: []int{2}}
		Expect(sel.Matches(net.Interface{Index: 2})).To(BeTrue())
		Expect(sel.Matches(net.Interface{Index: 3})).To(BeFalse())
	})

	It("matches by name", func() {
		sel := transport.Selector{Names: []string{"eth0"}}
		Expect(sel.Matches(net.Interface{Name: "eth0"})).To(BeTrue())
		Expect(sel.Matches(net.Interface{Name: "eth1"})).To(BeFalse())
	})
})

var _ = Describe("IPVersion", func() {
	It("reports which families are wanted", func() {
		Expect(transport.V4.WantsV4()).To(BeTrue())
		Expect(transport.V4.WantsV6()).To(BeFalse())
		Expect(transport.V6.WantsV4()).To(BeFalse())
		Expect(transport.V6.WantsV6()).To(BeTrue())
		Expect(transport.Both.WantsV4()).To(BeTrue())
		Expect(transport.Both.WantsV6()).To(BeTrue())
	})
})
