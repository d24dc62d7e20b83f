package commands

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/action"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

// ReminderResponse is the client's answer to a stale-order reminder.
type ReminderResponse int

const (
	ReminderAlreadyDelivered ReminderResponse = iota + 1
	ReminderBringLater
	ReminderCancel
)

func (r ReminderResponse) String() string {
	switch r {
	case ReminderAlreadyDelivered:
		return "already_delivered"
	case ReminderBringLater:
		return "bring_later"
	case ReminderCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

var (
	ErrRespondToReminderCommandIsNotConstructed = errors.New(
		"RespondToReminderCommand must be created via NewRespondToReminderCommand constructor",
	)
)

type RespondToReminderCommand struct {
	client   order.Actor
	orderID  int64
	response ReminderResponse

	guard guard.ConstructorGuard
}

func NewRespondToReminderCommand(
	clientID int64,
	clientName string,
	orderID int64,
	response ReminderResponse,
) (RespondToReminderCommand, error) {
	var responseErr error
	if response < ReminderAlreadyDelivered || response > ReminderCancel {
		responseErr = errs.NewValueIsInvalidError("response")
	}

	if err := errors.Join(validateUserID("clientId", clientID), validateOrderID(orderID), responseErr); err != nil {
		return RespondToReminderCommand{}, err
	}

	return RespondToReminderCommand{
		client:   order.ClientActor(clientID, clientName),
		orderID:  orderID,
		response: response,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RespondToReminderCommand) Validate() error {
	return c.guard.Validate(ErrRespondToReminderCommandIsNotConstructed)
}

func (c RespondToReminderCommand) Client() order.Actor {
	return c.client
}

func (c RespondToReminderCommand) OrderID() int64 {
	return c.orderID
}

func (c RespondToReminderCommand) Response() ReminderResponse {
	return c.response
}

// RespondToReminderCommandHandler applies a reminder answer:
//   - already delivered asks every administrator to check the order
//   - bring later re-arms the reminder; the cooldown starts again now
//   - cancel cancels the order through the transition engine
type RespondToReminderCommandHandler struct {
	uowFactory  ports.UnitOfWorkFactory
	transitions StatusChanger
	notifier    AdminNotifier
	clock       kernel.Clock
}

func NewRespondToReminderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	transitions StatusChanger,
	notifier AdminNotifier,
	clock kernel.Clock,
) RespondToReminderCommandHandler {
	return RespondToReminderCommandHandler{
		uowFactory:  uowFactory,
		transitions: transitions,
		notifier:    notifier,
		clock:       clock,
	}
}

// Handle returns errs.ObjectNotFoundError for orders of other clients.
func (h RespondToReminderCommandHandler) Handle(ctx context.Context, cmd RespondToReminderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	repo := h.uowFactory.Create().OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.BelongsTo(cmd.Client().ID) {
		return nil, errs.NewObjectNotFoundError("orderId", cmd.OrderID())
	}

	switch cmd.Response() {
	case ReminderAlreadyDelivered:
		h.notifier.NotifyAdmins(ctx, services.AlreadyDeliveredAlert(o), ports.Keyboard{{
			{Text: "Open " + o.Number(), Action: action.OrderDetail(o.ID()).Encode()},
		}})
		return o, nil

	case ReminderBringLater:
		if err = o.DeferReminder(h.clock.Now()); err != nil {
			return nil, err
		}
		if err = repo.UpdateReminderState(ctx, o); err != nil {
			return nil, err
		}
		return o, nil

	default:
		change, err := NewChangeOrderStatusCommand(o.ID(), order.Cancelled, cmd.Client())
		if err != nil {
			return nil, err
		}
		outcome, err := h.transitions.Handle(ctx, change)
		if err != nil {
			return nil, err
		}
		return outcome.Order, nil
	}
}
