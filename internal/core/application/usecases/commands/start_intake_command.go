package commands

import (
	"context"
	"errors"
	"strings"

	"workshop/internal/core/domain/model/intake"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrStartIntakeCommandIsNotConstructed = errors.New(
		"StartIntakeCommand must be created via NewStartIntakeCommand constructor",
	)
)

// StartIntakeCommand opens the order wizard for a user.
type StartIntakeCommand struct {
	userID      int64
	displayName string

	guard guard.ConstructorGuard
}

func NewStartIntakeCommand(userID int64, displayName string) (StartIntakeCommand, error) {
	if err := validateUserID("userId", userID); err != nil {
		return StartIntakeCommand{}, err
	}

	return StartIntakeCommand{
		userID:      userID,
		displayName: strings.TrimSpace(displayName),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c StartIntakeCommand) Validate() error {
	return c.guard.Validate(ErrStartIntakeCommandIsNotConstructed)
}

func (c StartIntakeCommand) UserID() int64 {
	return c.userID
}

func (c StartIntakeCommand) DisplayName() string {
	return c.displayName
}

// StartIntakeCommandHandler creates a fresh wizard session. A session that
// is still open is replaced without confirmation; nothing of it was
// persisted.
type StartIntakeCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	sessions   ports.IntakeSessionStore
	clock      kernel.Clock
}

func NewStartIntakeCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	sessions ports.IntakeSessionStore,
	clock kernel.Clock,
) StartIntakeCommandHandler {
	return StartIntakeCommandHandler{uowFactory: uowFactory, sessions: sessions, clock: clock}
}

// Handle fails with errs.ForbiddenError for blocked users.
func (h StartIntakeCommandHandler) Handle(ctx context.Context, cmd StartIntakeCommand) (*intake.Session, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	u, err := h.uowFactory.Create().UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}
	if !u.CanPlaceOrders() {
		return nil, errs.NewForbiddenError(cmd.UserID(), "place orders")
	}

	session, err := intake.NewSession(cmd.UserID(), cmd.DisplayName(), h.clock.Now())
	if err != nil {
		return nil, err
	}
	h.sessions.Save(session)

	return session, nil
}
