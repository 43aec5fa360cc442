package browser

import (
	"time"

	"github.com/searchlight-go/searchlight/dnssd"
	"github.com/searchlight-go/searchlight/internal/backoff"
)

// initialQueryInterval and maxQueryInterval are T0 and the cap from the
// browser's continuous-query schedule.
//
// See https://tools.ietf.org/html/rfc6762#section-5.2.
const (
	initialQueryInterval = time.Second
	maxQueryInterval     = 60 * time.Second
)

// subscription is one service type the caller asked to watch: its
// continuous-query schedule, kept local to this package rather than
// factored out since internal/backoff is its only real piece of state and
// this is its only caller.
type subscription struct {
	serviceType dnssd.ServiceType
	backoff     *backoff.Doubling
	nextQuery   time.Time
	gotResponse bool
}

func newSubscription(t dnssd.ServiceType, now time.Time) *subscription {
	return &subscription{
		serviceType: t,
		backoff:     backoff.New(initialQueryInterval, maxQueryInterval),
		nextQuery:   now,
	}
}

// due reports whether this subscription's next query is due at or before
// now.
func (s *subscription) due(now time.Time) bool {
	return !now.Before(s.nextQuery)
}

// scheduleNext advances nextQuery by the subscription's current backoff
// interval, doubling it for next time.
func (s *subscription) scheduleNext(now time.Time) {
	s.nextQuery = now.Add(s.backoff.Next())
}

// onResponse resets the backoff interval back to T0 the first time this
// subscription observes a matching response; later responses don't affect
// the schedule further.
//
// See https://tools.ietf.org/html/rfc6762#section-5.2.
func (s *subscription) onResponse() {
	if !s.gotResponse {
		s.gotResponse = true
		s.backoff.Reset()
	}
}
