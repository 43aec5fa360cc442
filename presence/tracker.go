package presence

import (
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/searchlight-go/searchlight/dnssd"
)

// group is the set of candidate records gathered from one inbound message
// for a single instance owner name, before it is reconciled against the
// tracker's existing state.
type group struct {
	hasPTR  bool
	ptrTTL  uint32
	hasSRV  bool
	srvTTL  uint32
	srv     *dns.SRV
	txt     *dns.TXT
	addrSet map[string]net.IP
	msg     *dns.Msg
}

// Tracker is the presence tracker described in searchlight's browser
// design: it turns the raw PTR/SRV/TXT/A/AAAA records of successive
// inbound messages into a deduplicated set of discovered instances, and
// the Found/Updated/Lost events that describe changes to that set.
//
// A Tracker is only ever driven from the browser's single worker
// goroutine; it holds no lock of its own.
type Tracker struct {
	identities map[Key]*trackedIdentity
	heap       *expiryHeap
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		identities: make(map[Key]*trackedIdentity),
		heap:       newExpiryHeap(),
	}
}

// Ingest folds the records of one inbound message, sent by source at time
// now, into the tracker's state for serviceType, and returns the events
// that state change produced. It is safe to call with a message that
// carries no records relevant to serviceType; in that case it returns nil.
func (t *Tracker) Ingest(serviceType dnssd.ServiceType, msg *dns.Msg, source *net.UDPAddr, now time.Time) []Event {
	typeName := serviceType.String()

	records := make([]dns.RR, 0, len(msg.Answer)+len(msg.Ns)+len(msg.Extra))
	records = append(records, msg.Answer...)
	records = append(records, msg.Ns...)
	records = append(records, msg.Extra...)

	groups := groupByOwner(typeName, records)

	var events []Event
	for owner, g := range groups {
		if !g.hasPTR && !g.hasSRV {
			continue
		}

		g.msg = msg

		instance := strings.TrimSuffix(owner, "."+typeName)
		key := Key{ServiceType: typeName, Instance: instance}

		if ev, ok := t.reconcile(key, g, source, now); ok {
			events = append(events, ev)
		}
	}

	return events
}

// groupByOwner partitions records into per-instance-owner groups: PTR
// records naming typeName identify the owner names to look for, SRV
// records directly under typeName confirm them, and TXT/address records
// are attached to whichever owner, or SRV target, they belong to.
func groupByOwner(typeName string, records []dns.RR) map[string]*group {
	groups := make(map[string]*group)

	get := func(owner string) *group {
		g, ok := groups[owner]
		if !ok {
			g = &group{addrSet: make(map[string]net.IP)}
			groups[owner] = g
		}
		return g
	}

	for _, rr := range records {
		switch v := rr.(type) {
		case *dns.PTR:
			if !strings.EqualFold(v.Header().Name, typeName) {
				continue
			}
			g := get(v.Ptr)
			g.hasPTR = true
			g.ptrTTL = v.Header().Ttl

		case *dns.SRV:
			name := v.Header().Name
			if !strings.HasSuffix(strings.ToLower(name), "."+typeName) {
				continue
			}
			g := get(name)
			g.hasSRV = true
			g.srvTTL = v.Header().Ttl
			g.srv = v
		}
	}

	for _, rr := range records {
		txt, ok := rr.(*dns.TXT)
		if !ok {
			continue
		}
		if g, ok := groups[txt.Header().Name]; ok {
			g.txt = txt
		}
	}

	for owner, g := range groups {
		if g.srv == nil {
			continue
		}

		target := g.srv.Target
		for _, rr := range records {
			switch v := rr.(type) {
			case *dns.A:
				if strings.EqualFold(v.Header().Name, target) {
					g.addrSet[v.A.String()] = v.A
				}
			case *dns.AAAA:
				if strings.EqualFold(v.Header().Name, target) {
					g.addrSet[v.AAAA.String()] = v.AAAA
				}
			}
		}

		groups[owner] = g
	}

	return groups
}

// reconcile folds one owner's group into the tracker's state for key and
// returns the single event, if any, that resulted.
func (t *Tracker) reconcile(key Key, g *group, source *net.UDPAddr, now time.Time) (Event, bool) {
	existing, tracked := t.identities[key]
	goodbye := (g.hasPTR && g.ptrTTL == 0) || (g.hasSRV && g.srvTTL == 0)

	if goodbye {
		if !tracked {
			return Event{}, false
		}

		delete(t.identities, key)
		return Event{Kind: Lost, Identity: existing.snapshot()}, true
	}

	basis, hasBasis := ttlBasis(g)

	if !tracked {
		if !hasBasis {
			// A bare TXT or address record with no corroborating PTR/SRV
			// never reaches here (groupByOwner requires hasPTR || hasSRV
			// to produce a group key worth reconciling), but guard anyway.
			return Event{}, false
		}

		ti := &trackedIdentity{
			key:          key,
			source:       source,
			firstSeen:    now,
			lastSeen:     now,
			expiry:       now.Add(basis),
			ttlBasis:     basis,
			lastResponse: g.msg,
			srv:          g.srv,
			txt:          g.txt,
			addresses:    g.addrSet,
		}

		t.identities[key] = ti
		t.heap.schedule(key, ti.expiry)

		return Event{Kind: Found, Identity: ti.snapshot()}, true
	}

	changed := materialChange(existing, g)

	if hasBasis {
		existing.ttlBasis = basis
	}
	existing.source = source
	existing.lastSeen = now
	existing.expiry = now.Add(existing.ttlBasis)
	existing.lastResponse = g.msg

	if g.srv != nil {
		existing.srv = g.srv
	}
	if g.txt != nil {
		existing.txt = g.txt
	}
	if len(g.addrSet) > 0 {
		existing.addresses = g.addrSet
	}

	t.heap.schedule(key, existing.expiry)

	if !changed {
		return Event{}, false
	}

	return Event{Kind: Updated, Identity: existing.snapshot()}, true
}

// ttlBasis returns the expiry duration a group's PTR/SRV TTLs imply, using
// the smaller of the two when both are present, clamped to
// [minExpiry, maxExpiry]. The second return is false when the group
// carries neither TTL, which only happens for a group this message never
// actually names via PTR or SRV.
func ttlBasis(g *group) (time.Duration, bool) {
	var ttl uint32
	have := false

	if g.hasPTR {
		ttl = g.ptrTTL
		have = true
	}
	if g.hasSRV && (!have || g.srvTTL < ttl) {
		ttl = g.srvTTL
		have = true
	}

	if !have {
		return 0, false
	}

	return clampExpiry(time.Duration(ttl) * time.Second), true
}

// materialChange reports whether g carries information that differs from
// existing's current state, in any field g actually speaks to. A group
// that omits a field (e.g. a cache refresh PTR with no accompanying SRV)
// is never treated as clearing that field.
func materialChange(existing *trackedIdentity, g *group) bool {
	if g.srv != nil {
		if existing.srv == nil ||
			existing.srv.Target != g.srv.Target ||
			existing.srv.Port != g.srv.Port ||
			existing.srv.Priority != g.srv.Priority ||
			existing.srv.Weight != g.srv.Weight {
			return true
		}
	}

	if g.txt != nil {
		if existing.txt == nil || !equalTxt(existing.txt.Txt, g.txt.Txt) {
			return true
		}
	}

	if len(g.addrSet) > 0 && !equalAddresses(existing.addresses, g.addrSet) {
		return true
	}

	return false
}

func equalTxt(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// equalAddresses compares two address sets by membership only: a
// responder that re-sends its address records in a different order has
// not materially changed.
func equalAddresses(a, b map[string]net.IP) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// ExpireDue pops every identity whose deadline has passed at or before
// now, removes it, and returns a Lost event for each. Call it whenever
// NextDeadline indicates a deadline has arrived.
func (t *Tracker) ExpireDue(now time.Time) []Event {
	var events []Event

	for {
		entry, ok := t.heap.popDue(now)
		if !ok {
			break
		}

		ti, tracked := t.identities[entry.key]
		if !tracked {
			continue // superseded by a goodbye already processed
		}

		if !ti.expiry.Equal(entry.deadline) {
			continue // stale entry; a later refresh rescheduled this key
		}

		delete(t.identities, entry.key)
		events = append(events, Event{Kind: Lost, Identity: ti.snapshot()})
	}

	return events
}

// NextDeadline returns the earliest pending expiry deadline, if any. The
// browser uses it to size the timer it waits on between packets.
func (t *Tracker) NextDeadline() (time.Time, bool) {
	return t.heap.peekDeadline()
}

// KnownAnswers returns the PTR records the tracker can assert are still
// live for serviceType, for known-answer suppression in the browser's next
// query per https://tools.ietf.org/html/rfc6762#section-7.1. Per that
// section, an answer due to expire within half of its original TTL is
// omitted so a refresh is still solicited before it lapses.
func (t *Tracker) KnownAnswers(serviceType dnssd.ServiceType, now time.Time) []dns.RR {
	typeName := serviceType.String()

	var out []dns.RR
	for key, ti := range t.identities {
		if key.ServiceType != typeName {
			continue
		}

		remaining := ti.expiry.Sub(now)
		if remaining*2 < ti.ttlBasis {
			continue
		}

		out = append(out, &dns.PTR{
			Hdr: dns.RR_Header{
				Name:   typeName,
				Rrtype: dns.TypePTR,
				Class:  dns.ClassINET,
				Ttl:    uint32(remaining.Seconds()),
			},
			Ptr: key.Instance + "." + typeName,
		})
	}

	return out
}

// Snapshot returns every identity currently tracked for serviceType, in
// no particular order.
func (t *Tracker) Snapshot(serviceType dnssd.ServiceType) []Identity {
	typeName := serviceType.String()

	var out []Identity
	for key, ti := range t.identities {
		if key.ServiceType != typeName {
			continue
		}
		out = append(out, ti.snapshot())
	}

	return out
}
