package ports

import (
	"context"
)

// AdminDirectory is the source of administrator identities. It is consulted
// on every mutating administrative operation.
type AdminDirectory interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	AdminIDs(ctx context.Context) ([]int64, error)
}
