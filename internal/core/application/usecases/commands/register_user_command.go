package commands

import (
	"context"
	"errors"
	"strings"

	"workshop/internal/core/domain/model/user"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/guard"
)

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
)

// RegisterUserCommand records the sender of an inbound update.
type RegisterUserCommand struct {
	userID      int64
	displayName string

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(userID int64, displayName string) (RegisterUserCommand, error) {
	if err := validateUserID("userId", userID); err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		userID:      userID,
		displayName: strings.TrimSpace(displayName),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() int64 {
	return c.userID
}

func (c RegisterUserCommand) DisplayName() string {
	return c.displayName
}

// RegisterUserCommandHandler upserts the user and returns the stored row,
// so callers see the blocked and administrator flags.
type RegisterUserCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewRegisterUserCommandHandler(uowFactory ports.UnitOfWorkFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{uowFactory: uowFactory}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	u, err := user.NewUser(cmd.UserID(), cmd.DisplayName())
	if err != nil {
		return nil, err
	}

	users := h.uowFactory.Create().UserRepository()
	if err = users.Upsert(ctx, u); err != nil {
		return nil, err
	}

	return users.Get(ctx, cmd.UserID())
}
