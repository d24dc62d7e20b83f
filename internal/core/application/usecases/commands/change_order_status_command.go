package commands

import (
	"context"
	"errors"
	"fmt"

	"workshop/internal/core/domain/model/adminslot"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand requests a transition of an order to target.
// The caller never supplies the current status; it is re-read from storage.
type ChangeOrderStatusCommand struct {
	orderID int64
	target  order.Status
	actor   order.Actor

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(orderID int64, target order.Status, actor order.Actor) (ChangeOrderStatusCommand, error) {
	var actorErr error
	if actor.Role != order.RoleAdmin && actor.Role != order.RoleClient {
		actorErr = errs.NewValueIsInvalidErrorWithCause("actor", fmt.Errorf("role %s cannot change orders", actor.Role))
	} else if actor.ID <= 0 {
		actorErr = errs.NewValueIsInvalidErrorWithCause("actor", errors.New("actor id must be positive"))
	}

	if err := errors.Join(validateOrderID(orderID), target.Validate(), actorErr); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		target:  target,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() int64 {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c ChangeOrderStatusCommand) Actor() order.Actor {
	return c.actor
}

// TransitionOutcome describes the result of a status request.
//
// Event is set when a transition was committed. Pending is set when the
// transition waits for administrator input (entering Accepted); Displaced
// is the input the administrator was asked for before, now discarded.
type TransitionOutcome struct {
	Order     *order.Order
	Event     *order.TransitionEvent
	Pending   adminslot.Slot
	Displaced adminslot.Slot
}

// Committed reports whether the order status changed.
func (o TransitionOutcome) Committed() bool {
	return o.Event != nil
}

// ChangeOrderStatusCommandHandler is the status transition engine.
//
// Administrators may request any edge of the transition graph; clients may
// only cancel their own orders. The row is re-read with a lock and written
// with a compare-and-swap on the re-read status, so a concurrent change
// surfaces as errs.ConflictError instead of being overwritten.
//
// Entering Accepted does not change the order here. It opens the
// ready-date input for the administrator; SubmitReadyDate completes it.
type ChangeOrderStatusCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	admins     ports.AdminDirectory
	slots      ports.AdminSlotStore
	clock      kernel.Clock
}

func NewChangeOrderStatusCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	admins ports.AdminDirectory,
	slots ports.AdminSlotStore,
	clock kernel.Clock,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		admins:     admins,
		slots:      slots,
		clock:      clock,
	}
}

// Handle returns:
//   - errs.ForbiddenError when the actor may not request the transition
//   - errs.ObjectNotFoundError for unknown orders and for orders of other clients
//   - errs.ConflictError when the current status has no edge to the target
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (TransitionOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionOutcome{}, err
	}

	actor := cmd.Actor()
	if err := h.authorize(ctx, cmd); err != nil {
		return TransitionOutcome{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionOutcome{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return TransitionOutcome{}, err
	}
	if actor.Role == order.RoleClient && !o.BelongsTo(actor.ID) {
		return TransitionOutcome{}, errs.NewObjectNotFoundError("orderId", cmd.OrderID())
	}

	from := o.Status()
	if cmd.Target() == order.Accepted {
		if !from.CanTransitionTo(order.Accepted) {
			return TransitionOutcome{}, errs.NewConflictError("order", o.ID(), from.String(), cmd.Target().String())
		}
		pending := adminslot.AwaitingReadyDate(o.ID())
		displaced := h.slots.Replace(actor.ID, pending)
		return TransitionOutcome{Order: o, Pending: pending, Displaced: displaced}, nil
	}

	if err = o.ChangeStatus(cmd.Target(), actor, h.clock.Now()); err != nil {
		return TransitionOutcome{}, err
	}
	evt, _ := o.LastEvent()

	if err = repo.UpdateStatus(ctx, o, from); err != nil {
		return TransitionOutcome{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionOutcome{}, err
	}

	return TransitionOutcome{Order: o, Event: &evt}, nil
}

func (h ChangeOrderStatusCommandHandler) authorize(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	actor := cmd.Actor()
	if actor.Role == order.RoleClient {
		if cmd.Target() != order.Cancelled {
			return errs.NewForbiddenError(actor.ID, "move orders to "+cmd.Target().String())
		}
		return nil
	}
	return requireAdmin(ctx, h.admins, actor.ID, "change order status")
}
