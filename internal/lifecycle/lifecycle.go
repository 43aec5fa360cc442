// Package lifecycle factors the foreground/background run and
// cooperative-shutdown plumbing shared by responder.Responder and
// browser.Browser: a cancelable context, a completion channel, and a
// shutdown that is safe to call more than once.
package lifecycle

import (
	"context"
	"sync"

	"github.com/searchlight-go/searchlight/errs"
)

// RunFunc is the body of a foreground run loop. It must return promptly
// after ctx is canceled.
type RunFunc func(ctx context.Context) error

// Loop tracks one background invocation of a RunFunc, started via Start.
type Loop struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	result error
}

// Start runs fn on a new goroutine, derived from ctx, and returns a Loop
// that can be used to shut it down.
func Start(ctx context.Context, fn RunFunc) *Loop {
	ctx, cancel := context.WithCancel(ctx)

	l := &Loop{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(l.done)
		l.result = Normalize(fn(ctx))
	}()

	return l
}

// Normalize maps a run loop's context.Canceled return value to nil, since
// cancellation triggered by Shutdown is a successful, requested stop, not
// a failure.
func Normalize(err error) error {
	if err == context.Canceled {
		return nil
	}

	return err
}

// Shutdown signals the loop to stop and waits for it to drain, bounded by
// ctx. It is idempotent: a second call does nothing and returns nil.
func (l *Loop) Shutdown(ctx context.Context) error {
	var result error

	l.once.Do(func() {
		l.cancel()

		select {
		case <-l.done:
			result = errs.NewLifecycleError(l.result)
		case <-ctx.Done():
			result = errs.NewLifecycleError(ctx.Err())
		}
	})

	return result
}

// Done returns a channel that is closed once the loop's RunFunc has
// returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
