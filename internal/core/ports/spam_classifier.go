package ports

import (
	"context"

	"workshop/internal/core/domain/model/order"
)

// SpamClassifier judges a confirmed draft. Only the verdict is consumed.
type SpamClassifier interface {
	IsSpam(ctx context.Context, userID int64, details order.Details) bool
}
