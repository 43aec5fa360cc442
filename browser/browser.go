// Package browser implements the mDNS/DNS-SD browser: it issues
// continuous queries for one or more service types and maintains a
// deduplicated, live view of the instances discovered, delivered through
// a Callback — following the command-loop design of the teacher's
// mdns/responder package, generalized to the browser's query/expiry
// scheduling.
package browser

import (
	"context"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/searchlight-go/searchlight/dnssd"
	"github.com/searchlight-go/searchlight/errs"
	"github.com/searchlight-go/searchlight/internal/lifecycle"
	"github.com/searchlight-go/searchlight/presence"
	"github.com/searchlight-go/searchlight/transport"
	"golang.org/x/sync/errgroup"
)

// Callback is invoked synchronously for every Found/Updated/Lost event
// the browser's presence tracker emits. It must return promptly; a
// caller needing to do more bridges to its own queue, per
// presence.EventFunc's contract. Returning true requests the browser
// stop — Run returns nil once the callback has been given the chance to
// observe the event.
type Callback func(presence.Event) (stop bool)

// command is a unit of work executed on the browser's single worker
// goroutine. Unlike responder's command, it can itself request a stop,
// since a Callback-requested stop must unwind from inside one.
type command interface {
	execute(ctx context.Context, b *Browser) (stop bool, err error)
}

// Browser subscribes to one or more DNS-SD service types and reports
// discovered instances as they appear, change, and disappear.
//
// A Browser is built with New and run with either Run (foreground) or
// Start (background). Exactly one goroutine ever touches its tracker or
// subscriptions.
type Browser struct {
	types      []dnssd.ServiceType
	loopback   bool
	selector   transport.Selector
	ipVersion  transport.IPVersion
	maxIgnored uint32
	logger     logging.Logger

	tracker       *presence.Tracker
	subscriptions []*subscription
	commands      chan command
	callback      Callback
	ignoredRun    uint32
}

// New builds a Browser from opts. It returns an error if any option, or
// the resulting configuration, is invalid. No socket is opened until Run
// or Start is called.
func New(opts ...Option) (*Browser, error) {
	b := &Browser{
		ipVersion: transport.Both,
		selector:  transport.AllInterfaces,
		logger:    logging.DiscardLogger{},
		tracker:   presence.NewTracker(),
		commands:  make(chan command),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	if len(b.types) == 0 {
		return nil, errs.NewConfigError("service type", "at least one WithServiceType is required")
	}

	return b, nil
}

// Run opens the browser's sockets and issues continuous queries for its
// subscribed service types, delivering events to cb, until ctx is
// canceled, cb requests a stop, or a fatal error occurs. It blocks the
// caller; see Start for a background variant.
func (b *Browser) Run(ctx context.Context, cb Callback) error {
	if cb == nil {
		return errs.NewConfigError("callback", "a non-nil Callback is required")
	}
	if !b.ipVersion.WantsV4() && !b.ipVersion.WantsV6() {
		return errs.NewConfigError("ip version", "at least one of IPv4 or IPv6 must be enabled")
	}

	b.callback = cb

	var transports []transport.Transport

	if b.ipVersion.WantsV4() {
		t := &transport.IPv4Transport{Logger: b.logger}
		if err := t.Listen(b.selector, b.loopback); err != nil {
			return err
		}
		defer t.Close()
		transports = append(transports, t)
	}

	if b.ipVersion.WantsV6() {
		t := &transport.IPv6Transport{Logger: b.logger}
		if err := t.Listen(b.selector, b.loopback); err != nil {
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
			return b.receive(ctx, t)
		})
	}

	g.Go(func() error {
		err := b.run(ctx, transports)
		if err == nil {
			// A Callback-requested stop returns nil, which errgroup does
			// not treat as a reason to cancel; unblock the receivers too.
			cancel()
		}
		return err
	})

	return lifecycle.Normalize(g.Wait())
}

// Start runs the browser on a background goroutine and returns a handle
// whose Shutdown(ctx) cancels it and waits for it to drain.
func (b *Browser) Start(ctx context.Context, cb Callback) *lifecycle.Loop {
	return lifecycle.Start(ctx, func(ctx context.Context) error {
		return b.Run(ctx, cb)
	})
}

// run is the browser's single-goroutine main loop: it wakes for whichever
// comes first among a subscription's next query, the tracker's next
// expiry deadline, or an inbound message.
func (b *Browser) run(ctx context.Context, transports []transport.Transport) error {
	now := time.Now()

	b.subscriptions = make([]*subscription, len(b.types))
	for i, t := range b.types {
		b.subscriptions[i] = newSubscription(t, now)
	}

	for {
		timer := time.NewTimer(b.timeToNextDeadline(time.Now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case <-timer.C:
			if stop, err := b.fireDue(transports); err != nil || stop {
				return err
			}

		case c := <-b.commands:
			timer.Stop()
			stop, err := c.execute(ctx, b)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}
	}
}

// fireDue expires any identities past their deadline and sends any
// subscription's due query, in that order, so a query's known-answer
// section never lists an identity fireDue is about to drop.
func (b *Browser) fireDue(transports []transport.Transport) (bool, error) {
	now := time.Now()

	for _, ev := range b.tracker.ExpireDue(now) {
		if b.callback(ev) {
			return true, nil
		}
	}

	for _, s := range b.subscriptions {
		if s.due(now) {
			b.sendQuery(transports, s, now)
			s.scheduleNext(now)
		}
	}

	return false, nil
}

// timeToNextDeadline returns the duration until the earliest of every
// subscription's next query and the tracker's next expiry.
func (b *Browser) timeToNextDeadline(now time.Time) time.Duration {
	deadline := b.subscriptions[0].nextQuery
	for _, s := range b.subscriptions[1:] {
		if s.nextQuery.Before(deadline) {
			deadline = s.nextQuery
		}
	}

	if d, ok := b.tracker.NextDeadline(); ok && d.Before(deadline) {
		deadline = d
	}

	d := deadline.Sub(now)
	if d < 0 {
		d = 0
	}
	return d
}

// receive reads and decodes response packets from t, dispatching each
// onto the command channel. Queries are not this package's concern and
// are dropped without even reaching the command channel.
func (b *Browser) receive(ctx context.Context, t transport.Transport) error {
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
			logging.Debug(b.logger, "error parsing mDNS message: %s", err)
			in.Close()
			continue
		}

		if !m.Response {
			in.Close()
			continue
		}

		c := &handleMessage{Packet: in, Message: m}

		select {
		case <-ctx.Done():
			in.Close()
			return ctx.Err()
		case b.commands <- c:
		}
	}
}

// Snapshot returns every instance currently tracked for serviceType. It
// is safe to call only from within the Callback, since the tracker is
// otherwise owned by the run loop's single goroutine.
func (b *Browser) Snapshot(serviceType dnssd.ServiceType) []presence.Identity {
	return b.tracker.Snapshot(serviceType)
}
