package responder

import (
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/searchlight-go/searchlight/dnssd"
)

// registry indexes a Responder's registrations for lookup by the three
// owner names a query can target: PTR (service type), SRV/TXT (instance),
// and host (A/AAAA). It is built once, before Run starts its transports,
// and never mutated afterward — flattened from the teacher's
// domain→service→instance map, since this spec has a single implicit
// domain ("local.").
type registry struct {
	ttl    time.Duration
	byPTR  map[string][]dnssd.ServiceRegistration
	byInst map[string]dnssd.ServiceRegistration
	byHost map[string][]dnssd.ServiceRegistration
}

func newRegistry(regs []dnssd.ServiceRegistration, ttl time.Duration) *registry {
	reg := &registry{
		ttl:    ttl,
		byPTR:  make(map[string][]dnssd.ServiceRegistration),
		byInst: make(map[string]dnssd.ServiceRegistration),
		byHost: make(map[string][]dnssd.ServiceRegistration),
	}

	for _, r := range regs {
		typeName := strings.ToLower(r.Type.String())
		reg.byPTR[typeName] = append(reg.byPTR[typeName], r)

		reg.byInst[strings.ToLower(r.InstanceFQDN())] = r

		host := strings.ToLower(r.Hostname)
		reg.byHost[host] = append(reg.byHost[host], r)
	}

	return reg
}

// allRecords returns the wire records for every registration, for
// announcements and goodbyes. Registrations of one service type keep
// their registration order; the order of the service types is not defined.
func (reg *registry) allRecords() []dns.RR {
	var out []dns.RR
	for _, rs := range reg.byPTR {
		for _, r := range rs {
			out = append(out, dnssd.BuildRecords(r, reg.ttl).All()...)
		}
	}
	return out
}

// isEmpty reports whether the registry holds no registrations at all.
func (reg *registry) isEmpty() bool {
	return len(reg.byInst) == 0
}

// instanceNames returns the lower-cased instance owner names (the SRV/TXT
// owner) of every registration, for probing.
func (reg *registry) instanceNames() map[string]struct{} {
	out := make(map[string]struct{}, len(reg.byInst))
	for name := range reg.byInst {
		out[name] = struct{}{}
	}
	return out
}
