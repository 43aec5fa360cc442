package transport

import (
	"context"
	"net"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/searchlight-go/searchlight/errs"
	ipvx "golang.org/x/net/ipv6"
)

var (
	// IPv6Group is the mDNS multicast group for IPv6.
	//
	// See https://tools.ietf.org/html/rfc6762#section-3.
	IPv6Group = net.ParseIP("ff02::fb")

	// IPv6GroupAddress is IPv6Group paired with the mDNS port.
	IPv6GroupAddress = &net.UDPAddr{IP: IPv6Group, Port: Port}

	ipv6ListenAddress = &net.UDPAddr{IP: net.IPv6unspecified, Port: Port}
)

// IPv6Transport is an IPv6 mDNS multicast transport.
type IPv6Transport struct {
	Logger logging.Logger

	pc *ipvx.PacketConn
}

// Listen implements Transport.
func (t *IPv6Transport) Listen(sel Selector, loopback bool) error {
	ifaces, err := eligibleInterfaces(sel, false, true)
	if err != nil {
		return errs.NewSocketError("", "enumerate", err)
	}

	lc := net.ListenConfig{Control: controlReuseAddrPort}

	conn, err := lc.ListenPacket(context.Background(), "udp6", ipv6ListenAddress.String())
	if err != nil {
		logListenError(t.Logger, ipv6ListenAddress, err)
		return errs.NewSocketError("", "bind", err)
	}

	udpConn := conn.(*net.UDPConn)
	t.pc = ipvx.NewPacketConn(udpConn)

	if err := t.pc.SetControlMessage(ipvx.FlagInterface, true); err != nil {
		t.pc.Close()
		return errs.NewSocketError("", "set-control-message", err)
	}

	if err := t.pc.SetMulticastHopLimit(255); err != nil {
		t.pc.Close()
		return errs.NewSocketError("", "set-hop-limit", err)
	}

	if err := t.pc.SetMulticastLoopback(loopback); err != nil {
		t.pc.Close()
		return errs.NewSocketError("", "set-loopback", err)
	}

	if err := joinGroup(t.pc, IPv6Group, ifaces, t.Logger); err != nil {
		t.pc.Close()
		return errs.NewSocketError("", "join-group", err)
	}

	logListening(t.Logger, ipv6ListenAddress, len(ifaces))
	return nil
}

// Read implements Transport.
func (t *IPv6Transport) Read() (*InboundPacket, error) {
	buf := getBuffer()

	n, cm, src, err := t.pc.ReadFrom(buf)
	if err != nil {
		putBuffer(buf)
		logReadError(t.Logger, t.Group(), err)
		return nil, err
	}

	ifIndex := 0
	if cm != nil {
		ifIndex = cm.IfIndex
	}

	return &InboundPacket{
		Transport: t,
		Source:    Endpoint{InterfaceIndex: ifIndex, Address: src.(*net.UDPAddr)},
		Data:      buf[:n],
	}, nil
}

// Write implements Transport.
func (t *IPv6Transport) Write(p *OutboundPacket) error {
	_, err := t.pc.WriteTo(
		p.Data,
		&ipvx.ControlMessage{IfIndex: p.Destination.InterfaceIndex},
		p.Destination.Address,
	)
	if err != nil {
		logWriteError(t.Logger, p.Destination.Address, t.Group(), err)
	}

	return err
}

// Group implements Transport.
func (t *IPv6Transport) Group() *net.UDPAddr {
	return IPv6GroupAddress
}

// Close implements Transport.
func (t *IPv6Transport) Close() error {
	return t.pc.Close()
}
