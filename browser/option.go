package browser

import (
	"github.com/dogmatiq/dodeca/logging"
	"github.com/searchlight-go/searchlight/dnssd"
	"github.com/searchlight-go/searchlight/transport"
)

// Option configures a Browser built by New.
type Option func(*Browser) error

// WithServiceType adds t to the set of service types this browser
// subscribes to. It may be called more than once to watch several types
// from one Browser.
func WithServiceType(t dnssd.ServiceType) Option {
	return func(b *Browser) error {
		if err := t.Validate(); err != nil {
			return err
		}
		b.types = append(b.types, t)
		return nil
	}
}

// WithLoopback sets whether the browser's sockets receive multicast
// traffic looped back from this host. It defaults to false.
func WithLoopback(enabled bool) Option {
	return func(b *Browser) error {
		b.loopback = enabled
		return nil
	}
}

// WithInterfaces restricts which network interfaces the browser joins the
// multicast group on. It defaults to transport.AllInterfaces.
func WithInterfaces(sel transport.Selector) Option {
	return func(b *Browser) error {
		b.selector = sel
		return nil
	}
}

// WithIPVersion selects which IP address families the browser queries
// over. It defaults to transport.Both.
func WithIPVersion(v transport.IPVersion) Option {
	return func(b *Browser) error {
		b.ipVersion = v
		return nil
	}
}

// WithMaxIgnoredPackets caps the number of consecutive inbound response
// packets matching none of this browser's subscribed service types before
// a warning is logged and the counter resets; it is purely a diagnostic
// signal of a misconfigured service type or a noisy segment; it never
// stops the browser. The default, 0, disables the check.
func WithMaxIgnoredPackets(n uint32) Option {
	return func(b *Browser) error {
		b.maxIgnored = n
		return nil
	}
}

// WithLogger sets the logger the browser reports debug and error events
// to. It defaults to logging.DiscardLogger{}.
func WithLogger(l logging.Logger) Option {
	return func(b *Browser) error {
		b.logger = l
		return nil
	}
}
