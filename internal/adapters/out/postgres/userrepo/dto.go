// Package userrepo persists chat users in the users table.
package userrepo

import (
	"time"

	"workshop/internal/core/domain/model/user"
)

// UserDTO is the row layout of the users table. The identifier is the chat
// user id and is never generated.
type UserDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	DisplayName string `gorm:"type:varchar(255)"`
	Phone       string `gorm:"type:varchar(64)"`
	Blocked     bool   `gorm:"not null;default:false"`
	Admin       bool   `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID(),
		DisplayName: u.DisplayName(),
		Phone:       u.Phone(),
		Blocked:     u.IsBlocked(),
		Admin:       u.IsAdmin(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	return user.RestoreUser(dto.ID, dto.DisplayName, dto.Phone, dto.Blocked, dto.Admin)
}
