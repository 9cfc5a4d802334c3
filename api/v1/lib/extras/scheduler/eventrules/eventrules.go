// Package eventrules composes cross-cutting behavior (logging, metrics,
// filtering) around scheduler event dispatch. The controller wraps its own
// event dispatch table in a Rules chain (currently a Metrics rule); the
// package does not depend on the controller and can wrap any
// events.Handler.
package eventrules

import (
	"context"

	"github.com/mesos/mesos-go/api/v1/lib/extras/metrics"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler/events"
)

// Chain is what a Rule calls to continue processing; it is the tail of the
// pipeline a Rule was spliced into.
type Chain func(ctx context.Context, e *scheduler.Event, err error) (context.Context, *scheduler.Event, error)

// Rule is one link in an event-processing pipeline: inspect/transform
// (ctx, e, err), then decide whether and how to invoke the rest of the
// chain.
type Rule func(ctx context.Context, e *scheduler.Event, err error, chain Chain) (context.Context, *scheduler.Event, error)

// Unless returns a no-op Rule (pure pass-through) when cond is true,
// otherwise r unchanged. Grounded on the pattern `x.Unless(viper.GetBool(...))`
// used to toggle verbose logging at runtime.
func (r Rule) Unless(cond bool) Rule {
	if cond {
		return func(ctx context.Context, e *scheduler.Event, err error, ch Chain) (context.Context, *scheduler.Event, error) {
			return ch(ctx, e, err)
		}
	}
	return r
}

// DropOnError short-circuits the chain once err becomes non-nil, skipping
// every rule after r but still returning the (ctx, e, err) already in
// hand.
func (r Rule) DropOnError() Rule {
	return func(ctx context.Context, e *scheduler.Event, err error, ch Chain) (context.Context, *scheduler.Event, error) {
		ctx, e, err = r(ctx, e, err, identity)
		if err != nil {
			return ctx, e, err
		}
		return ch(ctx, e, err)
	}
}

func identity(ctx context.Context, e *scheduler.Event, err error) (context.Context, *scheduler.Event, error) {
	return ctx, e, err
}

// Rules is an ordered pipeline of Rule values.
type Rules []Rule

// New builds a Rules pipeline, skipping nil entries so optional rules can
// be composed conditionally without an intervening `if`.
func New(rules ...Rule) Rules {
	out := make(Rules, 0, len(rules))
	for _, r := range rules {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Eval runs the pipeline starting from (ctx, e, err), invoking tail once
// every rule has run (or immediately if the pipeline is empty).
func (rs Rules) Eval(ctx context.Context, e *scheduler.Event, err error, tail Chain) (context.Context, *scheduler.Event, error) {
	if len(rs) == 0 {
		if tail == nil {
			return ctx, e, err
		}
		return tail(ctx, e, err)
	}
	head, rest := rs[0], rs[1:]
	return head(ctx, e, err, func(ctx context.Context, e *scheduler.Event, err error) (context.Context, *scheduler.Event, error) {
		return rest.Eval(ctx, e, err, tail)
	})
}

// Handle terminates the pipeline with h: every event that reaches the end
// of the chain without error is handed to h.
func (rs Rules) Handle(h events.Handler) events.HandlerFunc {
	return func(ctx context.Context, e *scheduler.Event) error {
		_, _, err := rs.Eval(ctx, e, nil, func(ctx context.Context, e *scheduler.Event, err error) (context.Context, *scheduler.Event, error) {
			if err == nil && h != nil {
				err = h.HandleEvent(ctx, e)
			}
			return ctx, e, err
		})
		return err
	}
}

// HandleF adapts a plain events.HandlerFunc into a terminal Rule step: run
// f only if no earlier rule set an error, then continue the chain with
// whatever error f returned.
func HandleF(f events.HandlerFunc) Rule {
	return func(ctx context.Context, e *scheduler.Event, err error, ch Chain) (context.Context, *scheduler.Event, error) {
		if err == nil {
			err = f(ctx, e)
		}
		return ch(ctx, e, err)
	}
}

// Metrics records one observation per event via harness, then continues
// the chain unconditionally.
func Metrics(harness *metrics.Harness, predicate func(*scheduler.Event) bool) Rule {
	return func(ctx context.Context, e *scheduler.Event, err error, ch Chain) (context.Context, *scheduler.Event, error) {
		if predicate == nil || predicate(e) {
			harness.Observe(err)
		}
		return ch(ctx, e, err)
	}
}
