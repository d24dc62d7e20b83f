package commands

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/intake"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrAdvanceIntakeCommandIsNotConstructed = errors.New(
		"AdvanceIntakeCommand must be created via NewAdvanceIntakeCommand constructor",
	)
)

// AdvanceIntakeCommand feeds one client input to the open wizard.
type AdvanceIntakeCommand struct {
	userID int64
	input  intake.Input

	guard guard.ConstructorGuard
}

func NewAdvanceIntakeCommand(userID int64, input intake.Input) (AdvanceIntakeCommand, error) {
	var kindErr error
	if input.Kind < intake.InputSelection || input.Kind > intake.InputCancel {
		kindErr = errs.NewValueIsInvalidError("input")
	}
	if err := errors.Join(validateUserID("userId", userID), kindErr); err != nil {
		return AdvanceIntakeCommand{}, err
	}

	return AdvanceIntakeCommand{
		userID: userID,
		input:  input,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceIntakeCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceIntakeCommandIsNotConstructed)
}

func (c AdvanceIntakeCommand) UserID() int64 {
	return c.userID
}

func (c AdvanceIntakeCommand) Input() intake.Input {
	return c.input
}

// IntakeOutcome is the wizard state after an input. Order is set only when
// the input confirmed the draft.
type IntakeOutcome struct {
	Session *intake.Session
	Order   *order.Order
}

// AdvanceIntakeCommandHandler drives the wizard.
//
// Nothing is persisted before confirmation. On confirmation the order is
// created first and the session is closed only after the create succeeded,
// so a failed create leaves the client at the confirmation step. Cancelled
// and completed sessions are removed from the store.
type AdvanceIntakeCommandHandler struct {
	sessions ports.IntakeSessionStore
	creator  OrderCreator
}

func NewAdvanceIntakeCommandHandler(sessions ports.IntakeSessionStore, creator OrderCreator) AdvanceIntakeCommandHandler {
	return AdvanceIntakeCommandHandler{sessions: sessions, creator: creator}
}

// Handle returns errs.ObjectNotFoundError when the user has no open session.
func (h AdvanceIntakeCommandHandler) Handle(ctx context.Context, cmd AdvanceIntakeCommand) (IntakeOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return IntakeOutcome{}, err
	}

	session, ok := h.sessions.Load(cmd.UserID())
	if !ok {
		return IntakeOutcome{}, errs.NewObjectNotFoundError("intakeSession", cmd.UserID())
	}
	outcome := IntakeOutcome{Session: session}

	if cmd.Input().Kind == intake.InputConfirm && session.CanConfirm() {
		create, err := NewCreateOrderCommand(cmd.UserID(), session.Draft())
		if err != nil {
			return outcome, err
		}
		created, err := h.creator.Handle(ctx, create)
		if err != nil {
			return outcome, err
		}
		if err = session.Apply(cmd.Input()); err != nil {
			return outcome, err
		}
		h.sessions.Delete(cmd.UserID())
		outcome.Order = created
		return outcome, nil
	}

	if err := session.Apply(cmd.Input()); err != nil {
		return outcome, err
	}
	if session.Step().IsTerminal() {
		h.sessions.Delete(cmd.UserID())
	}
	return outcome, nil
}
