// Package names validates and canonicalizes the DNS names used throughout
// searchlight (service types, instance names, hostnames).
package names

import (
	"errors"
	"fmt"
	"strings"
)

// MaxWireLength is the maximum encoded length of a DNS name, per RFC 1035
// section 3.1.
const MaxWireLength = 255

// FQDN is a fully-qualified DNS name, always ending in a dot.
type FQDN string

// Validate returns an error if n is not a well-formed fully-qualified name.
func (n FQDN) Validate() error {
	if n == "" {
		return errors.New("fully-qualified name must not be empty")
	}

	if n[0] == '.' {
		return fmt.Errorf("fully-qualified name %q is invalid, unexpected leading dot", string(n))
	}

	if n[len(n)-1] != '.' {
		return fmt.Errorf("fully-qualified name %q is invalid, missing trailing dot", string(n))
	}

	if WireLength(string(n)) > MaxWireLength {
		return fmt.Errorf("fully-qualified name %q exceeds %d octets on the wire", string(n), MaxWireLength)
	}

	for _, label := range n.Labels() {
		if err := label.Validate(); err != nil {
			return fmt.Errorf("fully-qualified name %q is invalid: %w", string(n), err)
		}
	}

	return nil
}

// Labels splits n into its dot-separated labels, excluding the trailing
// empty root label.
func (n FQDN) Labels() []Label {
	s := strings.TrimSuffix(string(n), ".")
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ".")
	labels := make([]Label, len(parts))
	for i, p := range parts {
		labels[i] = Label(p)
	}

	return labels
}

// Canonical returns n lower-cased, with a guaranteed trailing dot.
func Canonical(n string) FQDN {
	n = strings.ToLower(strings.TrimSpace(n))
	if !strings.HasSuffix(n, ".") {
		n += "."
	}

	return FQDN(n)
}

// String returns n unchanged.
func (n FQDN) String() string {
	return string(n)
}

// WireLength estimates the on-the-wire length of a presentation-format DNS
// name: one length-prefix octet per label, plus the label bytes, plus the
// terminating root octet.
func WireLength(n string) int {
	n = strings.TrimSuffix(n, ".")
	if n == "" {
		return 1
	}

	total := 1 // root label
	for _, label := range strings.Split(n, ".") {
		total += 1 + len(label)
	}

	return total
}
