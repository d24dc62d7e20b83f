// Package commands contains business operations that modify system state.
// Every command follows the same pattern: a constructor validates the input,
// the handler authorizes the actor, re-reads the aggregate inside a unit of
// work and persists the change before commit.
package commands

import (
	"context"
	"errors"

	"workshop/internal/core/application/notifications"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

// Collaborators shared by several handlers.
type (
	// AdminNotifier fans a message out to every administrator.
	AdminNotifier interface {
		NotifyAdmins(ctx context.Context, text string, keyboard ports.Keyboard) notifications.DeliveryReport
	}

	// StatusChanger applies a status transition on behalf of an actor.
	StatusChanger interface {
		Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (TransitionOutcome, error)
	}

	// OrderCreator persists a confirmed intake draft.
	OrderCreator interface {
		Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error)
	}
)

// requireAdmin fails with errs.ForbiddenError unless actorID is an administrator.
func requireAdmin(ctx context.Context, admins ports.AdminDirectory, actorID int64, action string) error {
	ok, err := admins.IsAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewForbiddenError(actorID, action)
	}
	return nil
}

// validateOrderID rejects non-positive identifiers.
func validateOrderID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId", errors.New("must be positive"))
	}
	return nil
}

// validateUserID rejects non-positive chat identifiers.
func validateUserID(param string, id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(param, errors.New("must be positive"))
	}
	return nil
}
