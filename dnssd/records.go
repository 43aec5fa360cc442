package dnssd

import (
	"net"
	"time"

	"github.com/miekg/dns"
)

// Records is the set of DNS-SD records published for one service
// instance: a PTR under the service type, an SRV and TXT under the
// instance name, and an A/AAAA per advertised address under the target
// host.
type Records struct {
	PTR  *dns.PTR
	SRV  *dns.SRV
	TXT  *dns.TXT
	Host []dns.RR // dns.A or dns.AAAA, one per r.Addresses
}

// BuildRecords constructs the wire records for r, with the given TTL
// applied uniformly, per https://tools.ietf.org/html/rfc6763#section-12.
// A zero or negative ttl is replaced by DefaultTTL seconds; use Goodbye to
// produce TTL=0 records.
func BuildRecords(r ServiceRegistration, ttl time.Duration) Records {
	secs := ttlSeconds(ttl)
	owner := r.InstanceFQDN()

	ptr := &dns.PTR{
		Hdr: dns.RR_Header{
			Name:   r.Type.String(),
			Rrtype: dns.TypePTR,
			Class:  dns.ClassINET,
			Ttl:    secs,
		},
		Ptr: owner,
	}

	srv := &dns.SRV{
		Hdr: dns.RR_Header{
			Name:   owner,
			Rrtype: dns.TypeSRV,
			Class:  dns.ClassINET,
			Ttl:    secs,
		},
		Priority: 0,
		Weight:   0,
		Port:     r.Port,
		Target:   r.Hostname,
	}

	txtPairs, _ := EncodeTextPairs(r.Text)
	txt := &dns.TXT{
		Hdr: dns.RR_Header{
			Name:   owner,
			Rrtype: dns.TypeTXT,
			Class:  dns.ClassINET,
			Ttl:    secs,
		},
		Txt: txtPairs,
	}

	host := make([]dns.RR, 0, len(r.Addresses))
	for _, ip := range r.Addresses {
		if v4 := ip.To4(); v4 != nil {
			host = append(host, &dns.A{
				Hdr: dns.RR_Header{
					Name:   r.Hostname,
					Rrtype: dns.TypeA,
					Class:  dns.ClassINET,
					Ttl:    secs,
				},
				A: v4,
			})
		} else {
			host = append(host, &dns.AAAA{
				Hdr: dns.RR_Header{
					Name:   r.Hostname,
					Rrtype: dns.TypeAAAA,
					Class:  dns.ClassINET,
					Ttl:    secs,
				},
				AAAA: ip,
			})
		}
	}

	return Records{PTR: ptr, SRV: srv, TXT: txt, Host: host}
}

// Goodbye returns a copy of rrs with their TTL set to zero, announcing
// that the records are no longer valid.
//
// See https://tools.ietf.org/html/rfc6762#section-10.1.
func Goodbye(rrs []dns.RR) []dns.RR {
	out := make([]dns.RR, len(rrs))
	for i, rr := range rrs {
		rr = dns.Copy(rr)
		rr.Header().Ttl = 0
		out[i] = rr
	}

	return out
}

// All returns every record of rs as a flat slice, in PTR, SRV, TXT, host
// order.
func (rs Records) All() []dns.RR {
	out := make([]dns.RR, 0, 3+len(rs.Host))
	out = append(out, rs.PTR, rs.SRV, rs.TXT)
	out = append(out, rs.Host...)
	return out
}

func ttlSeconds(ttl time.Duration) uint32 {
	if ttl <= 0 {
		ttl = DefaultTTL * time.Second
	}

	return uint32(ttl.Seconds())
}
