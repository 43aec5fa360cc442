// Package backoff implements the doubling-with-cap interval used by the
// browser's continuous query schedule.
//
// See https://tools.ietf.org/html/rfc6762#section-5.2.
package backoff

import "time"

// Doubling tracks an interval that doubles on each call to Next, up to a
// cap, and can be reset back to its initial value.
type Doubling struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

// New returns a Doubling starting at initial and capped at max.
func New(initial, max time.Duration) *Doubling {
	return &Doubling{initial: initial, max: max, current: initial}
}

// Next returns the current interval and doubles it (up to the cap) for
// the following call.
func (d *Doubling) Next() time.Duration {
	interval := d.current

	d.current *= 2
	if d.current > d.max {
		d.current = d.max
	}

	return interval
}

// Reset restores the interval to its initial value.
func (d *Doubling) Reset() {
	d.current = d.initial
}
