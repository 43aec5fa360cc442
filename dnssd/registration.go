package dnssd

import (
	"net"
	"strings"

	"github.com/searchlight-go/searchlight/errs"
	"github.com/searchlight-go/searchlight/internal/names"
)

// DefaultTTL is the TTL applied to a responder's records when the builder
// does not override it. See https://tools.ietf.org/html/rfc6762 (mDNS
// implementations SHOULD use 120s for most record types).
const DefaultTTL = 120

// ServiceRegistration is one service instance a Responder advertises.
//
// It is immutable once returned from ServiceBuilder.Build: Instance,
// Type, Port, Addresses, Text and Hostname never change for the lifetime
// of the registration.
type ServiceRegistration struct {
	Type      ServiceType
	Instance  string
	Port      uint16
	Addresses []net.IP
	Text      []TextPair
	Hostname  string
}

// InstanceFQDN returns the fully-qualified, escaped instance name under
// which SRV and TXT records for this registration are published, e.g.
// "My Printer._http._tcp.local.".
func (r ServiceRegistration) InstanceFQDN() string {
	return EscapeInstance(r.Instance) + "." + r.Type.String()
}

// Validate returns an error if the registration is not wire-safe.
func (r ServiceRegistration) Validate() error {
	if err := r.Type.Validate(); err != nil {
		return err
	}

	if r.Instance == "" {
		return errs.NewConfigError("instance", "instance name must not be empty")
	}

	if r.Port == 0 {
		return errs.NewConfigError("port", "port must be between 1 and 65535")
	}

	if len(r.Addresses) == 0 {
		return errs.NewConfigError("addresses", "at least one A/AAAA address is required")
	}

	if err := names.FQDN(r.Hostname).Validate(); err != nil {
		return errs.NewConfigError("hostname", err.Error())
	}

	for _, p := range r.Text {
		if _, err := p.Encode(); err != nil {
			return err
		}
	}

	return nil
}

// EscapeInstance escapes dots and backslashes in an instance name
// following the DNS presentation-format convention used for the
// <Instance> portion of a service instance name.
//
// See https://tools.ietf.org/html/rfc6763#section-4.3.
func EscapeInstance(instance string) string {
	var b strings.Builder
	b.Grow(len(instance) * 2)

	for i := 0; i < len(instance); i++ {
		c := instance[i]
		if c == '.' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}

	return b.String()
}
