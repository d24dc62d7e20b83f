// Package eventbus delivers committed order transition events to in-process
// subscribers on a single background goroutine.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"workshop/internal/core/domain/model/order"
)

const DefaultBufferSize = 256

// Handler consumes one transition event.
type Handler func(ctx context.Context, evt order.TransitionEvent)

// Bus is a buffered, non-blocking TransitionPublisher. Events are handed to
// subscribers in publish order. When the buffer is full the event is dropped
// and logged, so a slow subscriber never stalls a command.
type Bus struct {
	events   chan order.TransitionEvent
	mu       sync.RWMutex
	handlers []Handler
	logger   *slog.Logger
}

func NewBus(bufferSize int, logger *slog.Logger) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Bus{
		events: make(chan order.TransitionEvent, bufferSize),
		logger: logger.With("component", "event_bus"),
	}
}

// Subscribe registers a handler. Handlers added after Run started only see
// events dispatched from then on.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish enqueues evt without blocking.
func (b *Bus) Publish(ctx context.Context, evt order.TransitionEvent) {
	select {
	case b.events <- evt:
	default:
		b.logger.WarnContext(ctx, "event buffer full, dropping event",
			"order_id", evt.OrderID,
			"from", evt.From.String(),
			"to", evt.To.String(),
		)
	}
}

// Run dispatches events until ctx is cancelled, then drains what is already
// buffered and returns nil.
func (b *Bus) Run(ctx context.Context) error {
	b.logger.InfoContext(ctx, "event bus started")
	for {
		select {
		case evt := <-b.events:
			b.dispatch(ctx, evt)
		case <-ctx.Done():
			b.drain()
			b.logger.Info("event bus stopped")
			return nil
		}
	}
}

func (b *Bus) drain() {
	ctx := context.Background()
	for {
		select {
		case evt := <-b.events:
			b.dispatch(ctx, evt)
		default:
			return
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, evt order.TransitionEvent) {
	b.mu.RLock()
	handlers := b.handlers
	b.mu.RUnlock()

	for _, h := range handlers {
		b.safeCall(ctx, h, evt)
	}
}

func (b *Bus) safeCall(ctx context.Context, h Handler, evt order.TransitionEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "event handler panicked",
				"order_id", evt.OrderID,
				"panic", r,
			)
		}
	}()
	h(ctx, evt)
}
