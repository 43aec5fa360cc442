package transport

import "net"

// Selector chooses which network interfaces a Transport joins the
// multicast group on.
//
// The zero value selects every up, multicast-capable, non-loopback
// interface of the transport's address family.
type Selector struct {
	// Indices, if non-empty, restricts selection to interfaces with a
	// matching index.
	Indices []int

	// Names, if non-empty, restricts selection to interfaces with a
	// matching name.
	Names []string
}

// AllInterfaces is the zero-value Selector, selecting every eligible
// interface.
var AllInterfaces = Selector{}

// IsAll returns true if sel does not restrict interface selection.
func (sel Selector) IsAll() bool {
	return len(sel.Indices) == 0 && len(sel.Names) == 0
}

// Matches returns true if iface satisfies sel.
func (sel Selector) Matches(iface net.Interface) bool {
	if sel.IsAll() {
		return true
	}

	for _, i := range sel.Indices {
		if i == iface.Index {
			return true
		}
	}

	for _, n := range sel.Names {
		if n == iface.Name {
			return true
		}
	}

	return false
}

// IPVersion selects which IP address families a Responder or Browser
// opens transports for.
type IPVersion int

const (
	// V4 restricts operation to IPv4.
	V4 IPVersion = iota
	// V6 restricts operation to IPv6.
	V6
	// Both operates over IPv4 and IPv6 simultaneously.
	Both
)

// WantsV4 returns true if v includes IPv4.
func (v IPVersion) WantsV4() bool {
	return v == V4 || v == Both
}

// WantsV6 returns true if v includes IPv6.
func (v IPVersion) WantsV6() bool {
	return v == V6 || v == Both
}
