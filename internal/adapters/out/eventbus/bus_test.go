package eventbus_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"workshop/internal/adapters/out/eventbus"
	"workshop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type collector struct {
	mu  sync.Mutex
	ids []int64
}

func (c *collector) handle(_ context.Context, evt order.TransitionEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = append(c.ids, evt.OrderID)
}

func (c *collector) seen() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int64(nil), c.ids...)
}

func evt(id int64) order.TransitionEvent {
	return order.TransitionEvent{OrderID: id, From: order.New, To: order.Accepted}
}

func TestBus(t *testing.T) {
	t.Run("should deliver events to every subscriber in publish order", func(t *testing.T) {
		bus := eventbus.NewBus(8, discard)
		first, second := &collector{}, &collector{}
		bus.Subscribe(first.handle)
		bus.Subscribe(second.handle)

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() { done <- bus.Run(ctx) }()

		bus.Publish(ctx, evt(1))
		bus.Publish(ctx, evt(2))
		bus.Publish(ctx, evt(3))

		assert.Eventually(t, func() bool { return len(second.seen()) == 3 }, time.Second, 5*time.Millisecond)
		cancel()
		require.NoError(t, <-done)

		assert.Equal(t, []int64{1, 2, 3}, first.seen())
		assert.Equal(t, []int64{1, 2, 3}, second.seen())
	})

	t.Run("should drop events instead of blocking when the buffer is full", func(t *testing.T) {
		bus := eventbus.NewBus(1, discard)
		c := &collector{}
		bus.Subscribe(c.handle)

		bus.Publish(t.Context(), evt(1))
		bus.Publish(t.Context(), evt(2))

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		require.NoError(t, bus.Run(ctx))

		assert.Equal(t, []int64{1}, c.seen())
	})

	t.Run("should drain buffered events on shutdown", func(t *testing.T) {
		bus := eventbus.NewBus(4, discard)
		c := &collector{}
		bus.Subscribe(c.handle)
		bus.Publish(t.Context(), evt(5))
		bus.Publish(t.Context(), evt(6))

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		require.NoError(t, bus.Run(ctx))

		assert.ElementsMatch(t, []int64{5, 6}, c.seen())
	})

	t.Run("should keep dispatching after a handler panics", func(t *testing.T) {
		bus := eventbus.NewBus(4, discard)
		c := &collector{}
		bus.Subscribe(func(context.Context, order.TransitionEvent) { panic("boom") })
		bus.Subscribe(c.handle)
		bus.Publish(t.Context(), evt(9))

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		require.NoError(t, bus.Run(ctx))

		assert.Equal(t, []int64{9}, c.seen())
	})
}
