package presence

import (
	"net"
	"time"

	"github.com/miekg/dns"
)

// minExpiry and maxExpiry clamp the TTL-derived expiry deadline computed
// for each identity, per searchlight's presence tracker design.
const (
	minExpiry = time.Second
	maxExpiry = 75 * time.Minute
)

// Key identifies one responder: a service type and the instance name
// advertised within it. The source address is deliberately excluded, as a
// responder may legitimately change IP without losing identity.
type Key struct {
	ServiceType string
	Instance    string
}

// Identity is a snapshot of everything known about one discovered
// responder at the moment an event was emitted.
type Identity struct {
	Key          Key
	Source       *net.UDPAddr
	FirstSeen    time.Time
	LastSeen     time.Time
	Expiry       time.Time
	LastResponse *dns.Msg
	SRV          *dns.SRV
	TXT          *dns.TXT
	Addresses    []net.IP
}

// trackedIdentity is the tracker's mutable bookkeeping for one Key. It is
// only ever touched from the browser's single worker goroutine, so it
// carries no synchronization of its own.
type trackedIdentity struct {
	key          Key
	source       *net.UDPAddr
	firstSeen    time.Time
	lastSeen     time.Time
	expiry       time.Time
	ttlBasis     time.Duration // the PTR/SRV TTL expiry was last derived from
	lastResponse *dns.Msg
	srv          *dns.SRV
	txt          *dns.TXT
	addresses    map[string]net.IP // keyed by ip.String(); order is non-material
}

func (t *trackedIdentity) snapshot() Identity {
	addrs := make([]net.IP, 0, len(t.addresses))
	for _, ip := range t.addresses {
		addrs = append(addrs, ip)
	}

	return Identity{
		Key:          t.key,
		Source:       t.source,
		FirstSeen:    t.firstSeen,
		LastSeen:     t.lastSeen,
		Expiry:       t.expiry,
		LastResponse: t.lastResponse,
		SRV:          t.srv,
		TXT:          t.txt,
		Addresses:    addrs,
	}
}

// clampExpiry bounds a TTL-derived duration to [minExpiry, maxExpiry].
func clampExpiry(d time.Duration) time.Duration {
	if d < minExpiry {
		return minExpiry
	}

	if d > maxExpiry {
		return maxExpiry
	}

	return d
}
