package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"workshop/internal/core/domain/model/adminslot"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

const MaxReadyDateLength = 100

var (
	ErrSubmitReadyDateCommandIsNotConstructed = errors.New(
		"SubmitReadyDateCommand must be created via NewSubmitReadyDateCommand constructor",
	)
)

// SubmitReadyDateCommand completes the first phase of acceptance. The ready
// date is free text stored verbatim; skipped commands carry no text.
type SubmitReadyDateCommand struct {
	orderID   int64
	admin     order.Actor
	readyDate string
	skipped   bool

	guard guard.ConstructorGuard
}

func NewSubmitReadyDateCommand(orderID int64, admin order.Actor, readyDate string, skipped bool) (SubmitReadyDateCommand, error) {
	var textErr error
	switch {
	case skipped:
		readyDate = ""
	case strings.TrimSpace(readyDate) == "":
		textErr = errs.NewValueIsRequiredError("readyDate")
	case utf8.RuneCountInString(readyDate) > MaxReadyDateLength:
		textErr = errs.NewValueIsOutOfRangeError("readyDate", utf8.RuneCountInString(readyDate), 1, MaxReadyDateLength)
	}

	if err := errors.Join(validateOrderID(orderID), validateUserID("adminId", admin.ID), textErr); err != nil {
		return SubmitReadyDateCommand{}, err
	}

	return SubmitReadyDateCommand{
		orderID:   orderID,
		admin:     order.AdminActor(admin.ID, admin.Name),
		readyDate: readyDate,
		skipped:   skipped,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitReadyDateCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReadyDateCommandIsNotConstructed)
}

func (c SubmitReadyDateCommand) OrderID() int64 {
	return c.orderID
}

func (c SubmitReadyDateCommand) Admin() order.Actor {
	return c.admin
}

func (c SubmitReadyDateCommand) ReadyDate() string {
	return c.readyDate
}

func (c SubmitReadyDateCommand) Skipped() bool {
	return c.skipped
}

// SubmitReadyDateCommandHandler flips the order to Accepted, stamps
// acceptedAt and stores the ready date in one transaction, then asks the
// administrator for the optional master comment.
type SubmitReadyDateCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	admins     ports.AdminDirectory
	slots      ports.AdminSlotStore
	clock      kernel.Clock
}

func NewSubmitReadyDateCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	admins ports.AdminDirectory,
	slots ports.AdminSlotStore,
	clock kernel.Clock,
) SubmitReadyDateCommandHandler {
	return SubmitReadyDateCommandHandler{
		uowFactory: uowFactory,
		admins:     admins,
		slots:      slots,
		clock:      clock,
	}
}

// Handle fails with errs.ValueIsInvalidError when the administrator was not
// asked for a ready date of this order. On errs.ConflictError the pending
// input is dropped, since the order can no longer be accepted.
func (h SubmitReadyDateCommandHandler) Handle(ctx context.Context, cmd SubmitReadyDateCommand) (TransitionOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionOutcome{}, err
	}

	admin := cmd.Admin()
	if err := requireAdmin(ctx, h.admins, admin.ID, "accept orders"); err != nil {
		return TransitionOutcome{}, err
	}

	awaited := adminslot.AwaitingReadyDate(cmd.OrderID())
	if !h.slots.Current(admin.ID).Awaits(adminslot.KindReadyDate, cmd.OrderID()) {
		return TransitionOutcome{}, errNotAwaited("readyDate", cmd.OrderID())
	}

	o, evt, err := h.accept(ctx, cmd)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) || errors.Is(err, errs.ErrObjectNotFound) {
			h.slots.CompareAndSwap(admin.ID, awaited, adminslot.None())
		}
		return TransitionOutcome{}, err
	}

	next := adminslot.AwaitingMasterComment(cmd.OrderID())
	if !h.slots.CompareAndSwap(admin.ID, awaited, next) {
		next = adminslot.None()
	}

	return TransitionOutcome{Order: o, Event: &evt, Pending: next}, nil
}

func (h SubmitReadyDateCommandHandler) accept(
	ctx context.Context,
	cmd SubmitReadyDateCommand,
) (*order.Order, order.TransitionEvent, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.TransitionEvent{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, order.TransitionEvent{}, err
	}

	from := o.Status()
	if err = o.Accept(cmd.Admin(), cmd.ReadyDate(), h.clock.Now()); err != nil {
		return nil, order.TransitionEvent{}, err
	}
	evt, _ := o.LastEvent()

	if err = repo.UpdateStatus(ctx, o, from); err != nil {
		return nil, order.TransitionEvent{}, err
	}
	if err = repo.UpdateAcceptanceDetails(ctx, o); err != nil {
		return nil, order.TransitionEvent{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.TransitionEvent{}, err
	}

	return o, evt, nil
}

func errNotAwaited(param string, orderID int64) error {
	return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("no %s is awaited for order #%d", param, orderID))
}
