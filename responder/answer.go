package responder

import (
	"strings"

	"github.com/miekg/dns"
	"github.com/searchlight-go/searchlight/dnssd"
	"github.com/searchlight-go/searchlight/transport"
)

// sections holds the records a single question resolved to, before the
// cache-flush bit is applied: records directly matching the question go
// in Answer, records pulled in via DNS-SD linkage (an SRV/TXT alongside a
// PTR, an A/AAAA alongside an SRV) go in Additional.
//
// See https://tools.ietf.org/html/rfc6763#section-12.
type sections struct {
	Answer     []dns.RR
	Additional []dns.RR
}

func (s *sections) isEmpty() bool {
	return len(s.Answer) == 0 && len(s.Additional) == 0
}

// answer resolves one question's owner name and type against reg,
// following https://tools.ietf.org/html/rfc6762#section-6:
// step 1 of searchlight's responder design — exact name match against the
// PTR, SRV/TXT or host owner name, with DNS-SD linkage pulled into the
// additional section.
func (reg *registry) answer(qname string, qtype uint16) sections {
	name := strings.ToLower(qname)

	var out sections

	if ptrs, ok := reg.byPTR[name]; ok && wants(qtype, dns.TypePTR) {
		for _, r := range ptrs {
			recs := dnssd.BuildRecords(r, reg.ttl)
			out.Answer = append(out.Answer, recs.PTR)
			out.Additional = append(out.Additional, recs.SRV, recs.TXT)
			out.Additional = append(out.Additional, recs.Host...)
		}
	}

	if r, ok := reg.byInst[name]; ok {
		recs := dnssd.BuildRecords(r, reg.ttl)

		if wants(qtype, dns.TypeSRV) {
			out.Answer = append(out.Answer, recs.SRV)
			out.Additional = append(out.Additional, recs.Host...)
		}
		if wants(qtype, dns.TypeTXT) {
			out.Answer = append(out.Answer, recs.TXT)
		}
	}

	if rs, ok := reg.byHost[name]; ok {
		for _, r := range rs {
			recs := dnssd.BuildRecords(r, reg.ttl)
			for _, h := range recs.Host {
				if matchesHostType(h, qtype) {
					out.Answer = append(out.Answer, h)
				}
			}
		}
	}

	return out
}

// wants reports whether a question of qtype is satisfied by a candidate
// of rrtype, i.e. they're equal, or the question is a wildcard ANY query.
func wants(qtype, rrtype uint16) bool {
	return qtype == dns.TypeANY || qtype == rrtype
}

func matchesHostType(rr dns.RR, qtype uint16) bool {
	switch rr.(type) {
	case *dns.A:
		return wants(qtype, dns.TypeA)
	case *dns.AAAA:
		return wants(qtype, dns.TypeAAAA)
	default:
		return false
	}
}

// applyCacheFlush returns a copy of rr with the cache-flush bit set for
// every unique record type, and cleared for PTR, per the responder
// design's step 3.
func applyCacheFlush(rr dns.RR) dns.RR {
	if _, ok := rr.(*dns.PTR); ok {
		return transport.ClearUniqueRecord(rr)
	}

	return transport.SetUniqueRecord(rr)
}
