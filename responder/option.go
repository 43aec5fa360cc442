package responder

import (
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/searchlight-go/searchlight/dnssd"
	"github.com/searchlight-go/searchlight/errs"
	"github.com/searchlight-go/searchlight/transport"
)

// Option configures a Responder built by New, adapted in style from the
// teacher's mdns/responder/option.go.
type Option func(*Responder) error

// WithService adds reg to the set of registrations this responder
// announces and answers for. It may be called more than once to
// advertise several instances from one Responder.
func WithService(reg dnssd.ServiceRegistration) Option {
	return func(r *Responder) error {
		if err := reg.Validate(); err != nil {
			return err
		}
		r.regs = append(r.regs, reg)
		return nil
	}
}

// WithLoopback sets whether the responder's sockets receive multicast
// traffic looped back from this host. It defaults to false.
func WithLoopback(enabled bool) Option {
	return func(r *Responder) error {
		r.loopback = enabled
		return nil
	}
}

// WithInterfaces restricts which network interfaces the responder joins
// the multicast group on. The zero value, transport.AllInterfaces, joins
// every eligible interface and is the default.
func WithInterfaces(sel transport.Selector) Option {
	return func(r *Responder) error {
		r.selector = sel
		return nil
	}
}

// WithIPVersion selects which IP address families the responder operates
// over. It defaults to transport.Both.
func WithIPVersion(v transport.IPVersion) Option {
	return func(r *Responder) error {
		r.ipVersion = v
		return nil
	}
}

// WithTTL overrides the TTL applied to every record type. It defaults to
// 120 seconds, per https://tools.ietf.org/html/rfc6762 §10.
func WithTTL(ttl time.Duration) Option {
	return func(r *Responder) error {
		if ttl <= 0 {
			return errs.NewConfigError("ttl", "must be positive")
		}
		r.ttl = ttl
		return nil
	}
}

// WithLogger sets the logger the responder reports debug and error events
// to. It defaults to logging.DiscardLogger{}.
func WithLogger(l logging.Logger) Option {
	return func(r *Responder) error {
		r.logger = l
		return nil
	}
}

// DisableProbing skips the startup probe phase, going straight to
// announcing. Probing is on by default in searchlight, a REDESIGN of
// spec.md's "optional" framing: a trusted-LAN library should still
// default to RFC-correct probing, so this is the opt-out.
func DisableProbing(r *Responder) error {
	r.probeDisabled = true
	return nil
}
