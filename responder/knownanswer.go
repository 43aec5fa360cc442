package responder

import (
	"strings"

	"github.com/miekg/dns"
)

// suppressKnown removes every record from candidates that the querier
// already listed in known with an equal name/type/rdata and a remaining
// TTL at least half of ours — known-answer suppression, per
// https://tools.ietf.org/html/rfc6762#section-7.1.
func suppressKnown(candidates, known []dns.RR) []dns.RR {
	if len(known) == 0 || len(candidates) == 0 {
		return candidates
	}

	out := make([]dns.RR, 0, len(candidates))
	for _, rr := range candidates {
		if !isKnown(rr, known) {
			out = append(out, rr)
		}
	}
	return out
}

func isKnown(rr dns.RR, known []dns.RR) bool {
	for _, k := range known {
		if sameRecord(rr, k) && k.Header().Ttl*2 >= rr.Header().Ttl {
			return true
		}
	}
	return false
}

// sameRecord reports whether a and b name the same owner, type and rdata,
// ignoring TTL and class (the cache-flush bit may differ between a
// responder's candidate answer and the querier's cached copy).
func sameRecord(a, b dns.RR) bool {
	if a.Header().Rrtype != b.Header().Rrtype {
		return false
	}
	if !strings.EqualFold(a.Header().Name, b.Header().Name) {
		return false
	}

	switch av := a.(type) {
	case *dns.PTR:
		bv, ok := b.(*dns.PTR)
		return ok && strings.EqualFold(av.Ptr, bv.Ptr)

	case *dns.SRV:
		bv, ok := b.(*dns.SRV)
		return ok &&
			strings.EqualFold(av.Target, bv.Target) &&
			av.Port == bv.Port &&
			av.Priority == bv.Priority &&
			av.Weight == bv.Weight

	case *dns.TXT:
		bv, ok := b.(*dns.TXT)
		return ok && equalTxt(av.Txt, bv.Txt)

	case *dns.A:
		bv, ok := b.(*dns.A)
		return ok && av.A.Equal(bv.A)

	case *dns.AAAA:
		bv, ok := b.(*dns.AAAA)
		return ok && av.AAAA.Equal(bv.AAAA)

	default:
		return false
	}
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
