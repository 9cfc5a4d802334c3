package eventrules

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesos/mesos-go/api/v1/lib/scheduler"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler/events"
)

func recordingRule(order *[]string, name string) Rule {
	return func(ctx context.Context, e *scheduler.Event, err error, ch Chain) (context.Context, *scheduler.Event, error) {
		*order = append(*order, name)
		return ch(ctx, e, err)
	}
}

func TestRulesEvalRunsInOrder(t *testing.T) {
	var order []string
	rs := New(recordingRule(&order, "first"), recordingRule(&order, "second"))

	_, _, err := rs.Eval(context.Background(), &scheduler.Event{}, nil, func(ctx context.Context, e *scheduler.Event, err error) (context.Context, *scheduler.Event, error) {
		order = append(order, "tail")
		return ctx, e, err
	})
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "tail"}, order)
}

func TestDropOnErrorShortCircuits(t *testing.T) {
	boom := errors.New("boom")
	failing := Rule(func(ctx context.Context, e *scheduler.Event, err error, ch Chain) (context.Context, *scheduler.Event, error) {
		return ctx, e, boom
	}).DropOnError()

	var reached bool
	rs := New(failing, func(ctx context.Context, e *scheduler.Event, err error, ch Chain) (context.Context, *scheduler.Event, error) {
		reached = true
		return ch(ctx, e, err)
	})

	_, _, err := rs.Eval(context.Background(), &scheduler.Event{}, nil, nil)
	require.Equal(t, boom, err)
	require.False(t, reached)
}

func TestUnlessSkipsRuleWhenTrue(t *testing.T) {
	var ran bool
	r := Rule(func(ctx context.Context, e *scheduler.Event, err error, ch Chain) (context.Context, *scheduler.Event, error) {
		ran = true
		return ch(ctx, e, err)
	}).Unless(true)

	_, _, err := New(r).Eval(context.Background(), &scheduler.Event{}, nil, nil)
	require.NoError(t, err)
	require.False(t, ran)
}

func TestHandleInvokesHandlerOnSuccess(t *testing.T) {
	var handled *scheduler.Event
	h := events.HandlerFunc(func(ctx context.Context, e *scheduler.Event) error {
		handled = e
		return nil
	})

	ev := &scheduler.Event{Type: scheduler.Event_HEARTBEAT}
	err := New().Handle(h)(context.Background(), ev)
	require.NoError(t, err)
	require.Same(t, ev, handled)
}
