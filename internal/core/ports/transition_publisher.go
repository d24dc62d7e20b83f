package ports

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

// TransitionPublisher hands committed transition events to subscribers.
// Publish never blocks the caller on subscriber work.
type TransitionPublisher interface {
	Publish(ctx context.Context, evt order.TransitionEvent)
}
