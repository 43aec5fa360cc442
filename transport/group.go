package transport

import (
	"fmt"
	"net"

	"github.com/dogmatiq/dodeca/logging"
)

// packetConn contains the methods common to *ipv4.PacketConn and
// *ipv6.PacketConn that joinGroup needs.
type packetConn interface {
	JoinGroup(*net.Interface, net.Addr) error
}

// joinGroup joins the given multicast group on each of ifaces, logging
// and skipping any interface that fails to join. It returns an error only
// if every interface failed.
func joinGroup(pc packetConn, group net.IP, ifaces []net.Interface, logger logging.Logger) error {
	addr := &net.UDPAddr{IP: group}

	joined := 0
	for _, iface := range ifaces {
		iface := iface
		if err := pc.JoinGroup(&iface, addr); err != nil {
			logging.Log(logger, "unable to join multicast group %s on interface %q: %s", addr.IP, iface.Name, err)
			continue
		}

		joined++
	}

	if joined == 0 {
		return fmt.Errorf("unable to join multicast group %s on any of %d candidate interfaces", addr.IP, len(ifaces))
	}

	return nil
}
