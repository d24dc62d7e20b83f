// Package user holds the chat user known to the workshop: a client, an
// administrator, or both.
package user

import (
	"errors"
	"fmt"
	"strings"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is created on first contact and refreshed on every later one.
// The blocked flag stops order creation and broadcast delivery but keeps
// historical orders visible.
type User struct {
	id          int64
	displayName string
	phone       string
	blocked     bool
	admin       bool
	guard       guard.ConstructorGuard
}

func NewUser(id int64, displayName string) (*User, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("userId", fmt.Errorf("%d is not a valid user id", id))
	}
	return &User{
		id:          id,
		displayName: strings.TrimSpace(displayName),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreUser rebuilds a persisted user.
func RestoreUser(id int64, displayName, phone string, blocked, admin bool) (*User, error) {
	u, err := NewUser(id, displayName)
	if err != nil {
		return nil, err
	}
	u.phone = phone
	u.blocked = blocked
	u.admin = admin
	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() int64 {
	return u.id
}

func (u *User) DisplayName() string {
	return u.displayName
}

func (u *User) Phone() string {
	return u.phone
}

func (u *User) IsBlocked() bool {
	return u.blocked
}

func (u *User) IsAdmin() bool {
	return u.admin
}

// CanPlaceOrders reports whether the user may start or confirm an intake.
func (u *User) CanPlaceOrders() bool {
	return !u.blocked
}

// CanReceiveBroadcasts reports whether bulk messages are delivered to the user.
func (u *User) CanReceiveBroadcasts() bool {
	return !u.blocked
}
