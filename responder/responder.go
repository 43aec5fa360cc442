// Package responder implements the mDNS/DNS-SD responder: it announces
// one or more service instances on the local network and answers queries
// for them, following the command-loop design of the teacher's
// mdns/responder package.
package responder

import (
	"context"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/searchlight-go/searchlight/dnssd"
	"github.com/searchlight-go/searchlight/errs"
	"github.com/searchlight-go/searchlight/internal/clock"
	"github.com/searchlight-go/searchlight/internal/lifecycle"
	"github.com/searchlight-go/searchlight/transport"
	"golang.org/x/sync/errgroup"
)

// command is a unit of work executed on the responder's single worker
// goroutine.
type command interface {
	Execute(ctx context.Context, r *Responder) error
}

// Responder announces one or more DNS-SD service instances and answers
// mDNS queries for them.
//
// A Responder is built with New and run with either Run (foreground) or
// Start (background). Exactly one goroutine ever touches its registry or
// command state; see internal/lifecycle for the shared shutdown contract.
type Responder struct {
	regs          []dnssd.ServiceRegistration
	ttl           time.Duration
	loopback      bool
	selector      transport.Selector
	ipVersion     transport.IPVersion
	logger        logging.Logger
	probeDisabled bool

	reg      *registry
	commands chan command
}

// New builds a Responder from opts. It returns an error if any option, or
// the resulting configuration, is invalid. No socket is opened until Run
// or Start is called.
func New(opts ...Option) (*Responder, error) {
	r := &Responder{
		ttl:       dnssd.DefaultTTL * time.Second,
		ipVersion: transport.Both,
		selector:  transport.AllInterfaces,
		logger:    logging.DiscardLogger{},
		commands:  make(chan command),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if len(r.regs) == 0 {
		return nil, errs.NewConfigError("service", "at least one WithService registration is required")
	}

	return r, nil
}

// Run opens the responder's sockets, probes (unless disabled), announces,
// then answers queries until ctx is canceled or a fatal error occurs. It
// blocks the caller; see Start for a background variant.
func (r *Responder) Run(ctx context.Context) error {
	if !r.ipVersion.WantsV4() && !r.ipVersion.WantsV6() {
		return errs.NewConfigError("ip version", "at least one of IPv4 or IPv6 must be enabled")
	}

	r.reg = newRegistry(r.regs, r.ttl)

	var transports []transport.Transport

	if r.ipVersion.WantsV4() {
		t := &transport.IPv4Transport{Logger: r.logger}
		if err := t.Listen(r.selector, r.loopback); err != nil {
			return err
		}
		defer t.Close()
		transports = append(transports, t)
	}

	if r.ipVersion.WantsV6() {
		t := &transport.IPv6Transport{Logger: r.logger}
		if err := t.Listen(r.selector, r.loopback); err != nil {
			return err
		}
		defer t.Close()
		transports = append(transports, t)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	for _, t := range transports {
		t := t
		g.Go(func() error {
			return r.receive(ctx, t)
		})
	}

	g.Go(func() error {
		return r.run(ctx, transports)
	})

	return lifecycle.Normalize(g.Wait())
}

// Start runs the responder on a background goroutine and returns a handle
// whose Shutdown(ctx) cancels it and waits for it to drain.
func (r *Responder) Start(ctx context.Context) *lifecycle.Loop {
	return lifecycle.Start(ctx, r.Run)
}

// run is the responder's single-goroutine main loop.
func (r *Responder) run(ctx context.Context, transports []transport.Transport) error {
	// https://tools.ietf.org/html/rfc6762#section-8.1
	//
	// When ready to send its probe queries, a host should first wait for a
	// short random delay, uniformly distributed in [0, 250ms], to guard
	// against synchronized probing from several hosts powered on together.
	if err := clock.Sleep(ctx, clock.Jitter(250*time.Millisecond)); err != nil {
		return err
	}

	if !r.probeDisabled {
		if err := r.probe(ctx, transports); err != nil {
			return err
		}
	}

	if err := r.announce(ctx, transports); err != nil {
		return err
	}
	defer r.goodbye(transports)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-r.commands:
			if err := c.Execute(ctx, r); err != nil {
				return err
			}
		}
	}
}

// receive reads and decodes packets from t, dispatching each onto the
// command channel as a handleQuery or handleResponse.
func (r *Responder) receive(ctx context.Context, t transport.Transport) error {
	go func() {
		<-ctx.Done()
		_ = t.Close() // unblock a pending Read
	}()

	for {
		in, err := t.Read()
		if err != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return errs.NewSocketError("", "read", err)
			}
		}

		m, err := in.Message()
		if err != nil {
			logging.Debug(r.logger, "error parsing mDNS message: %s", err)
			in.Close()
			continue
		}

		var c command
		if m.Response {
			c = &handleResponse{Packet: in, Message: m}
		} else {
			c = &handleQuery{Packet: in, Message: m}
		}

		select {
		case <-ctx.Done():
			in.Close()
			return ctx.Err()
		case r.commands <- c:
		}
	}
}
