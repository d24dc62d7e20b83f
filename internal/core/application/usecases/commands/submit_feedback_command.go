package commands

import (
	"context"
	"errors"
	"fmt"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrSubmitFeedbackCommandIsNotConstructed = errors.New(
		"SubmitFeedbackCommand must be created via NewSubmitFeedbackCommand constructor",
	)
)

// SubmitFeedbackCommand carries a client rating of an issued order.
type SubmitFeedbackCommand struct {
	clientID int64
	orderID  int64
	rating   int

	guard guard.ConstructorGuard
}

func NewSubmitFeedbackCommand(clientID, orderID int64, rating int) (SubmitFeedbackCommand, error) {
	var ratingErr error
	if rating < MinRating || rating > MaxRating {
		ratingErr = errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}

	if err := errors.Join(validateUserID("clientId", clientID), validateOrderID(orderID), ratingErr); err != nil {
		return SubmitFeedbackCommand{}, err
	}

	return SubmitFeedbackCommand{
		clientID: clientID,
		orderID:  orderID,
		rating:   rating,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrSubmitFeedbackCommandIsNotConstructed)
}

func (c SubmitFeedbackCommand) ClientID() int64 {
	return c.clientID
}

func (c SubmitFeedbackCommand) OrderID() int64 {
	return c.orderID
}

func (c SubmitFeedbackCommand) Rating() int {
	return c.rating
}

// SubmitFeedbackCommandHandler forwards the rating to administrators. Only
// issued orders whose feedback was requested accept a rating.
type SubmitFeedbackCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	notifier   AdminNotifier
}

func NewSubmitFeedbackCommandHandler(uowFactory ports.UnitOfWorkFactory, notifier AdminNotifier) SubmitFeedbackCommandHandler {
	return SubmitFeedbackCommandHandler{uowFactory: uowFactory, notifier: notifier}
}

func (h SubmitFeedbackCommandHandler) Handle(ctx context.Context, cmd SubmitFeedbackCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !o.BelongsTo(cmd.ClientID()) {
		return errs.NewObjectNotFoundError("orderId", cmd.OrderID())
	}
	if o.Status() != order.Issued || !o.FeedbackRequested() {
		return errs.NewValueIsInvalidErrorWithCause("rating",
			fmt.Errorf("feedback was not requested for order %s", o.Number()))
	}

	h.notifier.NotifyAdmins(ctx, services.FeedbackReceived(o, cmd.Rating()), nil)
	return nil
}
