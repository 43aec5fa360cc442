package transport

import (
	"errors"
	"net"
)

// eligibleInterfaces returns the interfaces from net.Interfaces() that
// satisfy sel and are up, multicast-capable and not loopback. wantsV4 and
// wantsV6 additionally skip interfaces that have addresses but none of a
// wanted family.
//
// This is searchlight's one concrete interface-enumeration implementation.
// The spec calls interface enumeration out as an external collaborator,
// so selection is threaded through Selector.Matches rather than hard-coded
// here, but no second backend exists for this module: nothing else in the
// browser or responder needs to swap it out.
func eligibleInterfaces(sel Selector, wantsV4, wantsV6 bool) ([]net.Interface, error) {
	all, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	const required = net.FlagUp | net.FlagMulticast

	var matches []net.Interface
	for _, iface := range all {
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		if iface.Flags&required != required {
			continue
		}

		if !sel.Matches(iface) {
			continue
		}

		if !hasFamily(iface, wantsV4, wantsV6) {
			continue
		}

		matches = append(matches, iface)
	}

	if len(matches) == 0 {
		return nil, errors.New("no eligible multicast interfaces found")
	}

	return matches, nil
}

func hasFamily(iface net.Interface, wantsV4, wantsV6 bool) bool {
	addrs, err := iface.Addrs()
	if err != nil || len(addrs) == 0 {
		// An interface with no addresses yet (e.g. DHCP still pending) is
		// still a valid multicast-group member; let JoinGroup decide.
		return true
	}

	var hasV4, hasV6 bool
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}

		if ipNet.IP.To4() != nil {
			hasV4 = true
		} else {
			hasV6 = true
		}
	}

	if wantsV4 && hasV4 {
		return true
	}

	if wantsV6 && hasV6 {
		return true
	}

	return false
}
