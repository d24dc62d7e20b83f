package ports

import (
	"context"

	"workshop/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for chat users.
type UserRepository interface {
	// Upsert inserts the user or refreshes the display name of a known one.
	// Blocked and administrator flags of an existing row are preserved.
	Upsert(ctx context.Context, u *user.User) error

	// Get retrieves a user by chat identifier.
	Get(ctx context.Context, id int64) (*user.User, error)

	// ListRecipients returns every user that is not blocked.
	ListRecipients(ctx context.Context) ([]*user.User, error)

	// ListAdmins returns users flagged as administrators.
	ListAdmins(ctx context.Context) ([]*user.User, error)
}
