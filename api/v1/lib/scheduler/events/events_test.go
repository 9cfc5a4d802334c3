package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesos/mesos-go/api/v1/lib/scheduler"
)

func TestHandlersRoutesByType(t *testing.T) {
	var gotOffers, gotFallback bool
	hs := NewHandlers(map[scheduler.Event_Type]Handler{
		scheduler.Event_OFFERS: HandlerFunc(func(ctx context.Context, e *scheduler.Event) error {
			gotOffers = true
			return nil
		}),
	})
	hs.NotFound = HandlerFunc(func(ctx context.Context, e *scheduler.Event) error {
		gotFallback = true
		return nil
	})

	require.NoError(t, hs.HandleEvent(context.Background(), &scheduler.Event{Type: scheduler.Event_OFFERS}))
	require.True(t, gotOffers)

	require.NoError(t, hs.HandleEvent(context.Background(), &scheduler.Event{Type: scheduler.Event_HEARTBEAT}))
	require.True(t, gotFallback)
}

func TestHandlersDefaultsToNoopWithoutNotFound(t *testing.T) {
	hs := NewHandlers(map[scheduler.Event_Type]Handler{})
	require.NoError(t, hs.HandleEvent(context.Background(), &scheduler.Event{Type: scheduler.Event_ERROR}))
}
