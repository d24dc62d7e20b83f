package commands

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/intake"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand persists a confirmed intake draft as a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(userID, session.Draft())
//	if err != nil {
//	    return fmt.Errorf("invalid draft: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID  int64
	service order.ServiceCategory
	details order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the owner and the service category.
// Client name rules are enforced by the aggregate.
func NewCreateOrderCommand(userID int64, draft intake.Draft) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setService(draft.Service),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.details = draft.Details()

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) UserID() int64 {
	return c.userID
}

func (c CreateOrderCommand) Service() order.ServiceCategory {
	return c.service
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c *CreateOrderCommand) setUserID(userID int64) error {
	if err := validateUserID("userId", userID); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setService(service order.ServiceCategory) error {
	if err := service.Validate(); err != nil {
		return err
	}
	c.service = service
	return nil
}

// CreateOrderCommandHandler stores the order in status New, or Spam when the
// classifier flags the draft. The creation event is published by the unit
// of work after commit; spam orders produce no administrator alert.
type CreateOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	spam       ports.SpamClassifier
	clock      kernel.Clock
}

func NewCreateOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	spam ports.SpamClassifier,
	clock kernel.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{uowFactory: uowFactory, spam: spam, clock: clock}
}

// Handle fails with errs.ForbiddenError for blocked users.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.UserID(), cmd.Service(), cmd.Details(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	u, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}
	if !u.CanPlaceOrders() {
		return nil, errs.NewForbiddenError(cmd.UserID(), "place orders")
	}

	if h.spam.IsSpam(ctx, cmd.UserID(), cmd.Details()) {
		if err = o.MarkSpam(); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
