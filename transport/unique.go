package transport

import "github.com/miekg/dns"

// uniqueRecordBit is the high bit of the rrclass field, used in mDNS
// responses to mark a record as belonging to a "unique" (cache-flush)
// RRSet that should replace, rather than merge with, a peer's cache.
//
// See https://tools.ietf.org/html/rfc6762#section-18.13.
const uniqueRecordBit = 1 << 15

// IsUniqueRecord reports whether r carries the cache-flush bit, and
// returns a copy of r with the bit cleared so callers see the real class.
func IsUniqueRecord(r dns.RR) (bool, dns.RR) {
	if r.Header().Class&uniqueRecordBit == 0 {
		return false, r
	}

	r = dns.Copy(r)
	r.Header().Class &^= uniqueRecordBit
	return true, r
}

// SetUniqueRecord returns a copy of r with the cache-flush bit set.
func SetUniqueRecord(r dns.RR) dns.RR {
	r = dns.Copy(r)
	r.Header().Class |= uniqueRecordBit
	return r
}

// ClearUniqueRecord returns a copy of r with the cache-flush bit cleared.
func ClearUniqueRecord(r dns.RR) dns.RR {
	r = dns.Copy(r)
	r.Header().Class &^= uniqueRecordBit
	return r
}
