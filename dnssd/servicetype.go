package dnssd

import (
	"fmt"
	"strings"

	"github.com/searchlight-go/searchlight/errs"
	"github.com/searchlight-go/searchlight/internal/names"
)

// ServiceType is a DNS-SD PTR name, such as "_http._tcp.local.".
//
// It is canonicalized to lower-case with a mandatory trailing dot. See
// https://tools.ietf.org/html/rfc6763#section-4.1.
type ServiceType string

// NewServiceType canonicalizes and validates s as a DNS-SD service type.
func NewServiceType(s string) (ServiceType, error) {
	t := ServiceType(names.Canonical(s))
	if err := t.Validate(); err != nil {
		return "", err
	}

	return t, nil
}

// Validate returns an error if t is not a well-formed DNS-SD service type.
func (t ServiceType) Validate() error {
	if err := names.FQDN(t).Validate(); err != nil {
		return errs.NewConfigError("service type", err.Error())
	}

	s := string(t)
	if !strings.HasSuffix(s, "._tcp.local.") && !strings.HasSuffix(s, "._udp.local.") {
		return errs.NewConfigError(
			"service type",
			fmt.Sprintf("%q must end in \"._tcp.local.\" or \"._udp.local.\"", s),
		)
	}

	labels := names.FQDN(t).Labels()
	if len(labels) < 3 || labels[0][0] != '_' {
		return errs.NewConfigError("service type", fmt.Sprintf("%q must begin with an underscore-prefixed service label", s))
	}

	return nil
}

// String returns the canonical wire representation of t.
func (t ServiceType) String() string {
	return string(t)
}

// InstanceEnumerationName returns the PTR name queried to browse instances
// of t, which is simply t itself.
//
// See https://tools.ietf.org/html/rfc6763#section-4.
func (t ServiceType) InstanceEnumerationName() string {
	return string(t)
}
