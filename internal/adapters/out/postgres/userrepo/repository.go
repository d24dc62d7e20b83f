package userrepo

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/user"
	"workshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Upsert inserts the user or refreshes the display name of a known one.
// Blocked and admin flags are owned by operators and never overwritten here.
func (r *GormUserRepository) Upsert(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "updated_at"}),
	}).Create(&dto).Error
	if err != nil {
		return errs.NewPersistenceErrorWithCause("upsert user", err)
	}
	return nil
}

// Get retrieves a user by chat identifier.
func (r *GormUserRepository) Get(ctx context.Context, id int64) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id)
		}
		return nil, errs.NewPersistenceErrorWithCause("select user", err)
	}
	return toDomain(dto)
}

// ListRecipients returns every user that is not blocked.
func (r *GormUserRepository) ListRecipients(ctx context.Context) ([]*user.User, error) {
	return r.find(r.db.WithContext(ctx).Where("blocked = ?", false).Order("id ASC"), "list recipients")
}

// ListAdmins returns users flagged as administrators.
func (r *GormUserRepository) ListAdmins(ctx context.Context) ([]*user.User, error) {
	return r.find(r.db.WithContext(ctx).Where("admin = ?", true).Order("id ASC"), "list admins")
}

func (r *GormUserRepository) find(db *gorm.DB, operation string) ([]*user.User, error) {
	var dtos []UserDTO
	if err := db.Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceErrorWithCause(operation, err)
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
