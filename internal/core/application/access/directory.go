// Package access answers who the workshop administrators are.
package access

import (
	"context"
	"slices"

	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

var _ ports.AdminDirectory = (*Directory)(nil)

// Directory merges the statically configured administrator ids with users
// flagged as administrators in the database.
type Directory struct {
	static []int64
	users  ports.UserRepository
}

func NewDirectory(staticIDs []int64, users ports.UserRepository) *Directory {
	ids := slices.Clone(staticIDs)
	slices.Sort(ids)
	return &Directory{static: slices.Compact(ids), users: users}
}

func (d *Directory) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if _, found := slices.BinarySearch(d.static, userID); found {
		return true, nil
	}
	ids, err := d.AdminIDs(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, userID), nil
}

// AdminIDs returns every administrator id, sorted and without duplicates.
func (d *Directory) AdminIDs(ctx context.Context) ([]int64, error) {
	admins, err := d.users.ListAdmins(ctx)
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("list admins", err)
	}
	ids := slices.Clone(d.static)
	for _, u := range admins {
		ids = append(ids, u.ID())
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}
