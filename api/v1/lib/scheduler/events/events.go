// Package events defines the dispatch contract for decoded scheduler
// events: a Handler processes one event, and Handlers routes by Event_Type.
package events

import (
	"context"

	"github.com/mesos/mesos-go/api/v1/lib/scheduler"
)

// Handler processes a single scheduler event.
type Handler interface {
	HandleEvent(ctx context.Context, e *scheduler.Event) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, e *scheduler.Event) error

func (f HandlerFunc) HandleEvent(ctx context.Context, e *scheduler.Event) error {
	return f(ctx, e)
}

// Handlers routes events to a per-Event_Type handler, falling back to
// NotFound (a no-op by default) for anything unmapped.
type Handlers struct {
	m        map[scheduler.Event_Type]Handler
	NotFound Handler
}

// HandleEvent implements Handler.
func (hs Handlers) HandleEvent(ctx context.Context, e *scheduler.Event) error {
	if h, ok := hs.m[e.Type]; ok {
		return h.HandleEvent(ctx, e)
	}
	if hs.NotFound != nil {
		return hs.NotFound.HandleEvent(ctx, e)
	}
	return nil
}

// NewHandlers builds a Handlers from a map literal, the usual call shape
// being `events.NewHandlers(map[scheduler.Event_Type]events.Handler{...})`.
func NewHandlers(m map[scheduler.Event_Type]Handler) Handlers {
	return Handlers{m: m}
}
