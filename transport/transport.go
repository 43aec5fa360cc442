// Package transport implements the mDNS socket layer: dual-stack
// multicast UDP endpoints bound to port 5353, joined on a selected set of
// network interfaces, plus the datagram framing shared by the responder
// and browser packets.
package transport

import (
	"net"

	"github.com/miekg/dns"
)

// Port is the mDNS port number, per https://tools.ietf.org/html/rfc6762#section-3.
const Port = 5353

// MaxDatagramSize is the largest inbound datagram this package will read.
// mDNS messages are nominally limited to 9000 octets (jumbo-frame
// tolerant), see https://tools.ietf.org/html/rfc6762#section-17.
const MaxDatagramSize = 9000

// Endpoint is the origin or destination of a packet: a network interface
// plus a UDP address.
type Endpoint struct {
	InterfaceIndex int
	Address        *net.UDPAddr
}

// IsLegacy returns true if this endpoint belongs to a "legacy" querier
// that does not implement the full mDNS specification and expects a
// conventional unicast response.
//
// See https://tools.ietf.org/html/rfc6762#section-6.7.
func (ep Endpoint) IsLegacy() bool {
	return ep.Address.Port != Port
}

// Transport is a bound multicast UDP endpoint for one address family.
type Transport interface {
	// Listen opens the socket and joins the mDNS multicast group on the
	// interfaces selected by sel. If sel selects no interfaces in
	// particular, every up, multicast-capable, non-loopback interface of
	// the matching family is joined.
	Listen(sel Selector, loopback bool) error

	// Read blocks until the next datagram arrives.
	Read() (*InboundPacket, error)

	// Write sends a packet.
	Write(*OutboundPacket) error

	// Group returns the multicast group address for this transport.
	Group() *net.UDPAddr

	// Close closes the transport, unblocking any pending Read.
	Close() error
}

// SendTo sends m to dest via in's transport, on the interface in arrived
// on. It is a no-op, returning false, if m is empty.
func SendTo(in *InboundPacket, dest *net.UDPAddr, m *dns.Msg) (bool, error) {
	if len(m.Question) == 0 && len(m.Answer) == 0 && len(m.Ns) == 0 && len(m.Extra) == 0 {
		return false, nil
	}

	out, err := NewOutboundPacket(
		Endpoint{InterfaceIndex: in.Source.InterfaceIndex, Address: dest},
		m,
	)
	if err != nil {
		return false, err
	}
	defer out.Close()

	return true, in.Transport.Write(out)
}

// SendUnicast sends m back to the source of in.
func SendUnicast(in *InboundPacket, m *dns.Msg) (bool, error) {
	return SendTo(in, in.Source.Address, m)
}

// SendMulticast sends m to the mDNS group of the transport in arrived on.
func SendMulticast(in *InboundPacket, m *dns.Msg) (bool, error) {
	return SendTo(in, in.Transport.Group(), m)
}
