// Package errs defines the structured error taxonomy shared by the
// responder, browser and transport packages.
//
// Startup errors (ConfigError, SocketError, NameConflict ProtocolError)
// surface synchronously from a builder's Build() or a runner's Run(), or,
// for a runner started with Start(), from the returned handle's
// Shutdown(). Errors encountered deep inside the running loop are
// logged and discarded unless they are fatal, per the policy in
// searchlight's error handling design.
package errs

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid builder configuration, detected before
// any socket is opened.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Reason)
}

// NewConfigError returns a ConfigError for the given field.
func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}

// SocketError reports a failure to bind, join, or configure a multicast
// socket. It is always fatal at startup.
type SocketError struct {
	Interface string
	Op        string
	Err       error
}

func (e *SocketError) Error() string {
	if e.Interface == "" {
		return fmt.Sprintf("socket %s failed: %s", e.Op, e.Err)
	}

	return fmt.Sprintf("socket %s failed on interface %q: %s", e.Op, e.Interface, e.Err)
}

func (e *SocketError) Unwrap() error {
	return e.Err
}

// NewSocketError wraps err as a SocketError for the named interface and
// operation. iface may be empty when the error is not interface-specific.
func NewSocketError(iface, op string, err error) *SocketError {
	return &SocketError{Interface: iface, Op: op, Err: err}
}

// ProtocolErrorKind discriminates the causes of a ProtocolError.
type ProtocolErrorKind int

const (
	// Decode indicates a datagram could not be parsed as a DNS message.
	// Decode errors are never fatal; the datagram is simply dropped.
	Decode ProtocolErrorKind = iota

	// NameConflict indicates a probe query drew a response claiming
	// ownership of a name this responder is about to announce. It is
	// fatal at startup.
	NameConflict
)

func (k ProtocolErrorKind) String() string {
	switch k {
	case Decode:
		return "decode"
	case NameConflict:
		return "name conflict"
	default:
		return "unknown"
	}
}

// ProtocolError reports a problem interpreting or validating an mDNS
// message.
type ProtocolError struct {
	Kind ProtocolErrorKind
	Err  error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// NewProtocolError wraps err with the given kind.
func NewProtocolError(kind ProtocolErrorKind, err error) *ProtocolError {
	return &ProtocolError{Kind: kind, Err: err}
}

// LifecycleError wraps the first fatal cause observed during a run, as
// returned from Shutdown.
type LifecycleError struct {
	Cause error
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("shutdown: %s", e.Cause)
}

func (e *LifecycleError) Unwrap() error {
	return e.Cause
}

// NewLifecycleError wraps cause as a LifecycleError. It returns nil if
// cause is nil, so callers can write `return errs.NewLifecycleError(err)`
// unconditionally.
func NewLifecycleError(cause error) error {
	if cause == nil {
		return nil
	}

	return &LifecycleError{Cause: cause}
}

// IsNameConflict returns true if err is, or wraps, a ProtocolError of kind
// NameConflict.
func IsNameConflict(err error) bool {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.Kind == NameConflict
	}

	return false
}
