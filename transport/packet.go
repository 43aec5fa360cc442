package transport

import "github.com/miekg/dns"

// InboundPacket is a datagram received from a Transport.
type InboundPacket struct {
	Transport Transport
	Source    Endpoint
	Data      []byte
}

// Message decodes the packet's payload as a DNS message.
func (p *InboundPacket) Message() (*dns.Msg, error) {
	m := &dns.Msg{}
	return m, m.Unpack(p.Data)
}

// Close returns the packet's buffer to the pool. It must be called
// exactly once, after the packet is no longer needed.
func (p *InboundPacket) Close() {
	putBuffer(p.Data)
	p.Data = nil
}

// OutboundPacket is a datagram queued for send via a Transport.
type OutboundPacket struct {
	Destination Endpoint
	Data        []byte
}

// NewOutboundPacket marshals m into a packet addressed to dest.
func NewOutboundPacket(dest Endpoint, m *dns.Msg) (*OutboundPacket, error) {
	buf := getBuffer()

	d, err := m.PackBuffer(buf)
	if err != nil {
		putBuffer(buf)
		return nil, err
	}

	return &OutboundPacket{Destination: dest, Data: d}, nil
}

// Close returns the packet's buffer to the pool.
func (p *OutboundPacket) Close() {
	putBuffer(p.Data)
	p.Data = nil
}
