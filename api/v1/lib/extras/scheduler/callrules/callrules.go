// Package callrules composes cross-cutting behavior (logging, metrics)
// around outbound scheduler calls, mirroring eventrules on the inbound
// side.
package callrules

import (
	"context"

	mesos "github.com/mesos/mesos-go/api/v1/lib"
	"github.com/mesos/mesos-go/api/v1/lib/extras/metrics"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler/calls"
)

// Chain is what a Rule calls to continue processing.
type Chain func(ctx context.Context, c *scheduler.Call, r mesos.Response, err error) (context.Context, *scheduler.Call, mesos.Response, error)

// Rule is one link in a call-processing pipeline.
type Rule func(ctx context.Context, c *scheduler.Call, r mesos.Response, err error, chain Chain) (context.Context, *scheduler.Call, mesos.Response, error)

// Rules is an ordered pipeline of Rule values. Its Caller method turns it
// into a calls.Caller by wrapping an inner Caller as the terminal step.
type Rules []Rule

// New builds a Rules pipeline, skipping nil entries.
func New(rules ...Rule) Rules {
	out := make(Rules, 0, len(rules))
	for _, r := range rules {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (rs Rules) eval(ctx context.Context, c *scheduler.Call, r mesos.Response, err error, tail Chain) (context.Context, *scheduler.Call, mesos.Response, error) {
	if len(rs) == 0 {
		return tail(ctx, c, r, err)
	}
	head, rest := rs[0], rs[1:]
	return head(ctx, c, r, err, func(ctx context.Context, c *scheduler.Call, r mesos.Response, err error) (context.Context, *scheduler.Call, mesos.Response, error) {
		return rest.eval(ctx, c, r, err, tail)
	})
}

// Caller wraps an inner calls.Caller so every outbound call flows through
// the rule pipeline before being sent.
func (rs Rules) Caller(inner calls.Caller) calls.Caller {
	return callerFunc(func(call *scheduler.Call) (mesos.Response, error) {
		_, _, resp, err := rs.eval(context.Background(), call, nil, nil, func(ctx context.Context, c *scheduler.Call, r mesos.Response, err error) (context.Context, *scheduler.Call, mesos.Response, error) {
			resp, err := inner.Call(c)
			return ctx, c, resp, err
		})
		return resp, err
	})
}

type callerFunc func(*scheduler.Call) (mesos.Response, error)

func (f callerFunc) Call(c *scheduler.Call) (mesos.Response, error) { return f(c) }

// Metrics records one observation per call, then continues unconditionally.
func Metrics(harness *metrics.Harness, predicate func(*scheduler.Call) bool) Rule {
	return func(ctx context.Context, c *scheduler.Call, r mesos.Response, err error, ch Chain) (context.Context, *scheduler.Call, mesos.Response, error) {
		if predicate == nil || predicate(c) {
			harness.Observe(err)
		}
		return ch(ctx, c, r, err)
	}
}
