// Package metrics provides a small counting/timing harness that
// eventrules.Metrics and callrules.Metrics record observations through,
// decoupling the rule pipelines from any particular metrics backend.
package metrics

import "time"

// Counter is satisfied by most metrics client libraries' counter type
// (a single no-arg increment).
type Counter interface {
	Inc()
}

// Timer is satisfied by most metrics client libraries' histogram/timer
// type (observe one duration).
type Timer interface {
	Observe(time.Duration)
}

// Harness records one observation per event or call: a hit against count,
// and - when errCount is non-nil and the observation carried an error - a
// hit against errCount. If timed is true, clock is set and a Timer is
// attached via WithTimer, it also times the gap between successive Observe
// calls.
type Harness struct {
	count    Counter
	errCount Counter
	timer    Timer
	clock    func() time.Time
	timed    bool
	last     time.Time
}

// NewHarness builds a Harness. clock and timer may be nil if timed is
// false.
func NewHarness(count, errCount Counter, timed bool, clock func() time.Time) *Harness {
	return &Harness{count: count, errCount: errCount, timed: timed, clock: clock}
}

// WithTimer attaches a Timer that receives the gap between successive
// Observe calls, when timed was requested at construction.
func (h *Harness) WithTimer(t Timer) *Harness {
	h.timer = t
	return h
}

// Observe records one event/call, optionally as an error.
func (h *Harness) Observe(err error) {
	if h == nil {
		return
	}
	if h.count != nil {
		h.count.Inc()
	}
	if err != nil && h.errCount != nil {
		h.errCount.Inc()
	}
	if h.timed && h.clock != nil && h.timer != nil {
		now := h.clock()
		if !h.last.IsZero() {
			h.timer.Observe(now.Sub(h.last))
		}
		h.last = now
	}
}
