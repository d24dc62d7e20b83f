package notifications

import (
	"context"
	"log/slog"

	"workshop/internal/core/domain/model/order"
)

// AuditLog returns a transition subscriber that writes one structured line
// per event.
func AuditLog(logger *slog.Logger) func(context.Context, order.TransitionEvent) {
	logger = logger.With("component", "audit")
	return func(ctx context.Context, evt order.TransitionEvent) {
		logger.InfoContext(ctx, "order transition",
			"order_id", evt.OrderID,
			"from", evt.From.String(),
			"to", evt.To.String(),
			"actor_id", evt.Actor.ID,
			"actor_role", evt.Actor.Role.String(),
			"at", evt.OccurredAt,
		)
	}
}
