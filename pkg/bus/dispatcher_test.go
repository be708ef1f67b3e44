package bus_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasskit/glasskit/pkg/bus"
)

type recordingSink struct {
	mu   sync.Mutex
	seen []string
}

func (s *recordingSink) OnEvent(env bus.Envelope[string]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = append(s.seen, env.Payload)
}

func (s *recordingSink) payloads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.seen...)
}

func TestDispatcherDrains(t *testing.T) {
	t.Parallel()

	b := setupBus(t, "events")
	pub := bus.NewPublisher(b, "events")
	ctx, cancel := context.WithCancel(context.Background())

	total := 20
	for i := 0; i < total; i++ {
		require.NoError(t, pub.Publish(ctx, "tick", "payload"))
	}

	var mu sync.Mutex
	handled := 0
	sink := &recordingSink{}
	d := bus.NewDispatcher(b, "events",
		bus.DispatcherWorkers[string](4),
		bus.DispatcherSinks[string](sink, nil), // nil sinks are skipped
	)

	done := make(chan error, 1)
	go func() {
		done <- d.Run(ctx, func(_ context.Context, _ bus.Envelope[string]) error {
			mu.Lock()
			handled++
			finished := handled == total
			mu.Unlock()
			if finished {
				cancel()
			}
			return nil
		})
	}()

	err := <-done
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, total, handled)
	assert.Len(t, sink.payloads(), total)
}

func TestDispatcherHandlerError(t *testing.T) {
	t.Parallel()

	b := setupBus(t, "events")
	require.NoError(t, bus.NewPublisher(b, "events").Publish(context.Background(), "tick", "boom"))

	d := bus.NewDispatcher(b, "events", bus.DispatcherWorkers[string](2))
	err := d.Run(context.Background(), func(_ context.Context, _ bus.Envelope[string]) error {
		return assert.AnError
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDispatcherMissingChannel(t *testing.T) {
	t.Parallel()

	b := bus.New[string]()
	d := bus.NewDispatcher(b, "missing")

	err := d.Run(context.Background(), func(_ context.Context, _ bus.Envelope[string]) error {
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, bus.ErrChannelNotFound)
}

func TestDispatcherStopsOnCancel(t *testing.T) {
	t.Parallel()

	b := setupBus(t, "events")
	d := bus.NewDispatcher(b, "events")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := d.Run(ctx, func(_ context.Context, _ bus.Envelope[string]) error {
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
