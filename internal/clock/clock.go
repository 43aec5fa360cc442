// Package clock provides the small context-aware sleep and jitter helpers
// shared by the responder and browser run loops.
package clock

import (
	"context"
	"math/rand"
	"time"
)

// Jitter returns a random duration in [0, d).
func Jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(d)))
}

// Sleep blocks for d, or until ctx is canceled, whichever comes first. It
// returns ctx.Err() if canceled before d elapses, nil otherwise.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
