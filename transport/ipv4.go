package transport

import (
	"context"
	"net"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/searchlight-go/searchlight/errs"
	ipvx "golang.org/x/net/ipv4"
)

var (
	// IPv4Group is the mDNS multicast group for IPv4.
	//
	// See https://tools.ietf.org/html/rfc6762#section-3.
	IPv4Group = net.ParseIP("224.0.0.251")

	// IPv4GroupAddress is IPv4Group paired with the mDNS port.
	IPv4GroupAddress = &net.UDPAddr{IP: IPv4Group, Port: Port}

	// ipv4ListenAddress binds wide rather than to the group address itself,
	// so interface membership is controlled precisely via JoinGroup.
	ipv4ListenAddress = &net.UDPAddr{IP: net.IPv4zero, Port: Port}
)

// IPv4Transport is an IPv4 mDNS multicast transport.
type IPv4Transport struct {
	Logger logging.Logger

	pc *ipvx.PacketConn
}

// Listen implements Transport.
func (t *IPv4Transport) Listen(sel Selector, loopback bool) error {
	ifaces, err := eligibleInterfaces(sel, true, false)
	if err != nil {
		return errs.NewSocketError("", "enumerate", err)
	}

	lc := net.ListenConfig{Control: controlReuseAddrPort}

	conn, err := lc.ListenPacket(context.Background(), "udp4", ipv4ListenAddress.String())
	if err != nil {
		logListenError(t.Logger, ipv4ListenAddress, err)
		return errs.NewSocketError("", "bind", err)
	}

	udpConn := conn.(*net.UDPConn)
	t.pc = ipvx.NewPacketConn(udpConn)

	if err := t.pc.SetControlMessage(ipvx.FlagInterface, true); err != nil {
		t.pc.Close()
		return errs.NewSocketError("", "set-control-message", err)
	}

	if err := t.pc.SetMulticastTTL(255); err != nil {
		t.pc.Close()
		return errs.NewSocketError("", "set-ttl", err)
	}

	if err := t.pc.SetMulticastLoopback(loopback); err != nil {
		t.pc.Close()
		return errs.NewSocketError("", "set-loopback", err)
	}

	if err := joinGroup(t.pc, IPv4Group, ifaces, t.Logger); err != nil {
		t.pc.Close()
		return errs.NewSocketError("", "join-group", err)
	}

	logListening(t.Logger, ipv4ListenAddress, len(ifaces))
	return nil
}

// Read implements Transport.
func (t *IPv4Transport) Read() (*InboundPacket, error) {
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
func (t *IPv4Transport) Write(p *OutboundPacket) error {
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
func (t *IPv4Transport) Group() *net.UDPAddr {
	return IPv4GroupAddress
}

// Close implements Transport.
func (t *IPv4Transport) Close() error {
	return t.pc.Close()
}
