package commands

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"workshop/internal/core/domain/model/adminslot"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

const MaxMasterCommentLength = 1000

var (
	ErrSubmitMasterCommentCommandIsNotConstructed = errors.New(
		"SubmitMasterCommentCommand must be created via NewSubmitMasterCommentCommand constructor",
	)
)

// SubmitMasterCommentCommand completes the optional second phase of acceptance.
type SubmitMasterCommentCommand struct {
	orderID int64
	adminID int64
	comment string
	skipped bool

	guard guard.ConstructorGuard
}

func NewSubmitMasterCommentCommand(orderID, adminID int64, comment string, skipped bool) (SubmitMasterCommentCommand, error) {
	comment = strings.TrimSpace(comment)

	var textErr error
	switch {
	case skipped:
		comment = ""
	case comment == "":
		textErr = errs.NewValueIsRequiredError("masterComment")
	case utf8.RuneCountInString(comment) > MaxMasterCommentLength:
		textErr = errs.NewValueIsOutOfRangeError("masterComment", utf8.RuneCountInString(comment), 1, MaxMasterCommentLength)
	}

	if err := errors.Join(validateOrderID(orderID), validateUserID("adminId", adminID), textErr); err != nil {
		return SubmitMasterCommentCommand{}, err
	}

	return SubmitMasterCommentCommand{
		orderID: orderID,
		adminID: adminID,
		comment: comment,
		skipped: skipped,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitMasterCommentCommand) Validate() error {
	return c.guard.Validate(ErrSubmitMasterCommentCommandIsNotConstructed)
}

func (c SubmitMasterCommentCommand) OrderID() int64 {
	return c.orderID
}

func (c SubmitMasterCommentCommand) AdminID() int64 {
	return c.adminID
}

func (c SubmitMasterCommentCommand) Comment() string {
	return c.comment
}

func (c SubmitMasterCommentCommand) Skipped() bool {
	return c.skipped
}

type SubmitMasterCommentCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	admins     ports.AdminDirectory
	slots      ports.AdminSlotStore
}

func NewSubmitMasterCommentCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	admins ports.AdminDirectory,
	slots ports.AdminSlotStore,
) SubmitMasterCommentCommandHandler {
	return SubmitMasterCommentCommandHandler{uowFactory: uowFactory, admins: admins, slots: slots}
}

// Handle stores the comment and closes the acceptance sub-flow. A skipped
// comment only closes it.
func (h SubmitMasterCommentCommandHandler) Handle(ctx context.Context, cmd SubmitMasterCommentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx, h.admins, cmd.AdminID(), "comment orders"); err != nil {
		return nil, err
	}

	awaited := adminslot.AwaitingMasterComment(cmd.OrderID())
	if !h.slots.Current(cmd.AdminID()).Awaits(adminslot.KindMasterComment, cmd.OrderID()) {
		return nil, errNotAwaited("masterComment", cmd.OrderID())
	}

	if cmd.Skipped() {
		h.slots.CompareAndSwap(cmd.AdminID(), awaited, adminslot.None())
		return h.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	}

	o, err := h.store(ctx, cmd)
	if err != nil {
		return nil, err
	}
	h.slots.CompareAndSwap(cmd.AdminID(), awaited, adminslot.None())

	return o, nil
}

func (h SubmitMasterCommentCommandHandler) store(ctx context.Context, cmd SubmitMasterCommentCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = o.SetMasterComment(cmd.Comment()); err != nil {
		return nil, err
	}
	if err = repo.UpdateAcceptanceDetails(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
