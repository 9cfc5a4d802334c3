package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNotifierFiresThenStopsOnDone(t *testing.T) {
	done := make(chan struct{})
	ch := Notifier(time.Millisecond, 4*time.Millisecond, done)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a backoff tick")
	}

	close(done)

	select {
	case _, open := <-ch:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("expected channel to close after done")
	}
}

func TestNotifierCapsAtMax(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	// Capped at 2ms, 20 ticks take about 40ms; uncapped doubling from 1ms
	// would need over a second before the eleventh tick.
	ch := Notifier(time.Millisecond, 2*time.Millisecond, done)
	deadline := time.After(time.Second)
	for i := 0; i < 20; i++ {
		select {
		case <-ch:
		case <-deadline:
			t.Fatal("expected backoff ticks to stay capped at max")
		}
	}
}
