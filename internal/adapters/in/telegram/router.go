package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/action"
	"workshop/internal/core/domain/model/adminslot"
	"workshop/internal/core/domain/model/intake"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

// Acknowledger answers callback queries.
type Acknowledger interface {
	Acknowledge(ctx context.Context, queryID, text string)
}

// Handlers are the use cases the router dispatches to.
type Handlers struct {
	RegisterUser        commands.RegisterUserCommandHandler
	StartIntake         commands.StartIntakeCommandHandler
	AdvanceIntake       commands.AdvanceIntakeCommandHandler
	ChangeOrderStatus   commands.ChangeOrderStatusCommandHandler
	SubmitReadyDate     commands.SubmitReadyDateCommandHandler
	SubmitMasterComment commands.SubmitMasterCommentCommandHandler
	RespondToReminder   commands.RespondToReminderCommandHandler
	SubmitFeedback      commands.SubmitFeedbackCommandHandler
	Broadcast           *commands.BroadcastCommandHandler

	ListOrders    queries.ListOrdersQueryHandler
	SearchOrders  queries.SearchOrdersQueryHandler
	GetOrder      queries.GetOrderQueryHandler
	GetUserOrders queries.GetUserOrdersQueryHandler
}

// Router maps inbound chat updates to use cases and replies with the result.
// Updates of one user must be routed sequentially; different users may be
// routed concurrently.
type Router struct {
	messenger ports.Messenger
	acks      Acknowledger
	admins    ports.AdminDirectory
	slots     ports.AdminSlotStore
	h         Handlers
	logger    *slog.Logger

	broadcasts sync.WaitGroup
}

func NewRouter(
	messenger ports.Messenger,
	acks Acknowledger,
	admins ports.AdminDirectory,
	slots ports.AdminSlotStore,
	handlers Handlers,
	logger *slog.Logger,
) *Router {
	return &Router{
		messenger: messenger,
		acks:      acks,
		admins:    admins,
		slots:     slots,
		h:         handlers,
		logger:    logger.With("component", "telegram_router"),
	}
}

// Wait blocks until every broadcast started by the router has finished.
func (r *Router) Wait() {
	r.broadcasts.Wait()
}

// Route handles one inbound update.
func (r *Router) Route(ctx context.Context, in Inbound) {
	r.register(ctx, in)

	switch {
	case in.IsCallback():
		r.acks.Acknowledge(ctx, in.CallbackID, "")
		r.routeCallback(ctx, in)
	case in.IsCommand():
		r.routeCommand(ctx, in)
	default:
		r.routeInput(ctx, in)
	}
}

func (r *Router) register(ctx context.Context, in Inbound) {
	cmd, err := commands.NewRegisterUserCommand(in.UserID, in.DisplayName)
	if err != nil {
		r.logger.WarnContext(ctx, "invalid user in update", "user_id", in.UserID, "error", err)
		return
	}
	if _, err = r.h.RegisterUser.Handle(ctx, cmd); err != nil {
		r.logger.WarnContext(ctx, "failed to register user", "user_id", in.UserID, "error", err)
	}
}

func (r *Router) routeCommand(ctx context.Context, in Inbound) {
	switch in.Command {
	case "start", "help":
		text, keyboard := welcomeView(in.DisplayName, r.isAdmin(ctx, in.UserID))
		r.reply(ctx, in, text, keyboard)
	case "order", "new":
		r.startIntake(ctx, in)
	case "my":
		r.userOrders(ctx, in)
	case "cancel":
		r.cancelInput(ctx, in)
	case "skip":
		r.skipInput(ctx, in)
	case "orders":
		r.listOrders(ctx, in, in.Args, 0)
	case "status":
		r.statusCommand(ctx, in)
	case "search":
		r.searchCommand(ctx, in)
	case "broadcast":
		r.broadcastCommand(ctx, in)
	default:
		r.reply(ctx, in, "Unknown command. Send /start to see the menu.", nil)
	}
}

func (r *Router) routeInput(ctx context.Context, in Inbound) {
	if slot := r.slots.Current(in.UserID); !slot.IsEmpty() {
		r.slotInput(ctx, in, slot)
		return
	}

	input := intake.Text(in.Text)
	if in.PhotoRef != "" {
		input = intake.Photo(in.PhotoRef)
	}
	r.advanceIntake(ctx, in, input)
}

//nolint:gocyclo,cyclop // flat dispatch over the closed action set
func (r *Router) routeCallback(ctx context.Context, in Inbound) {
	a, err := action.Parse(in.CallbackData)
	if err != nil {
		r.logger.DebugContext(ctx, "unknown callback", "user_id", in.UserID, "data", in.CallbackData)
		r.reply(ctx, in, "This button is no longer valid.", nil)
		return
	}

	switch a.Verb() {
	case action.VerbNewOrder:
		r.startIntake(ctx, in)
	case action.VerbMyOrders:
		r.userOrders(ctx, in)
	case action.VerbSelectService:
		r.advanceIntake(ctx, in, intake.Selection(a.Arg(0)))
	case action.VerbSkipStep:
		r.advanceIntake(ctx, in, intake.Skip())
	case action.VerbConfirmOrder:
		r.advanceIntake(ctx, in, intake.Confirm())
	case action.VerbCancelIntake:
		r.advanceIntake(ctx, in, intake.Cancel())

	case action.VerbListOrders:
		page, err := a.Int(1)
		if err != nil {
			r.fail(ctx, in, err)
			return
		}
		r.listOrders(ctx, in, a.Arg(0), page)
	case action.VerbOrderDetail:
		r.withOrderID(ctx, in, a, r.orderDetail)
	case action.VerbSetStatus:
		r.withOrderID(ctx, in, a, func(ctx context.Context, in Inbound, id int64) {
			target, err := a.Status(1)
			if err != nil {
				r.fail(ctx, in, err)
				return
			}
			r.changeStatus(ctx, in, id, target)
		})
	case action.VerbSkipReadyDate:
		r.withOrderID(ctx, in, a, func(ctx context.Context, in Inbound, id int64) {
			r.submitReadyDate(ctx, in, id, "", true)
		})
	case action.VerbSkipComment:
		r.withOrderID(ctx, in, a, func(ctx context.Context, in Inbound, id int64) {
			r.submitMasterComment(ctx, in, id, "", true)
		})
	case action.VerbSearch:
		by, err := a.SearchBy()
		if err != nil {
			r.fail(ctx, in, err)
			return
		}
		r.openSlot(ctx, in, adminslot.AwaitingSearchQuery(by), searchPrompt(by))
	case action.VerbBroadcast:
		r.openSlot(ctx, in, adminslot.AwaitingBroadcastText(), "Send the broadcast text. /cancel to abort.")

	case action.VerbAlreadyDelivered:
		r.withOrderID(ctx, in, a, func(ctx context.Context, in Inbound, id int64) {
			r.respondToReminder(ctx, in, id, commands.ReminderAlreadyDelivered)
		})
	case action.VerbBringLater:
		r.withOrderID(ctx, in, a, func(ctx context.Context, in Inbound, id int64) {
			r.respondToReminder(ctx, in, id, commands.ReminderBringLater)
		})
	case action.VerbClientCancel:
		r.withOrderID(ctx, in, a, func(ctx context.Context, in Inbound, id int64) {
			r.respondToReminder(ctx, in, id, commands.ReminderCancel)
		})
	case action.VerbRate:
		r.withOrderID(ctx, in, a, func(ctx context.Context, in Inbound, id int64) {
			rating, err := a.Int(1)
			if err != nil {
				r.fail(ctx, in, err)
				return
			}
			r.submitFeedback(ctx, in, id, rating)
		})
	}
}

func (r *Router) withOrderID(ctx context.Context, in Inbound, a action.Action, fn func(context.Context, Inbound, int64)) {
	id, err := a.OrderID()
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	fn(ctx, in, id)
}

// Client side.

func (r *Router) startIntake(ctx context.Context, in Inbound) {
	cmd, err := commands.NewStartIntakeCommand(in.UserID, in.DisplayName)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	session, err := r.h.StartIntake.Handle(ctx, cmd)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	text, keyboard := intakeView(session)
	r.reply(ctx, in, text, keyboard)
}

func (r *Router) advanceIntake(ctx context.Context, in Inbound, input intake.Input) {
	cmd, err := commands.NewAdvanceIntakeCommand(in.UserID, input)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}

	outcome, err := r.h.AdvanceIntake.Handle(ctx, cmd)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) && notFound.ParamName == "intakeSession" {
			text, keyboard := welcomeView(in.DisplayName, false)
			r.reply(ctx, in, text, keyboard)
			return
		}
		r.fail(ctx, in, err)
		if outcome.Session != nil && !outcome.Session.Step().IsTerminal() {
			text, keyboard := intakeView(outcome.Session)
			r.reply(ctx, in, text, keyboard)
		}
		return
	}

	if outcome.Order != nil {
		r.reply(ctx, in, services.OrderCreatedReceipt(outcome.Order), ports.Keyboard{
			{button("📋 My orders", action.MyOrders())},
		})
		return
	}
	text, keyboard := intakeView(outcome.Session)
	r.reply(ctx, in, text, keyboard)
}

func (r *Router) userOrders(ctx context.Context, in Inbound) {
	query, err := queries.NewGetUserOrdersQuery(in.UserID)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	orders, err := r.h.GetUserOrders.Handle(ctx, query)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	text, keyboard := userOrdersView(orders)
	r.reply(ctx, in, text, keyboard)
}

func (r *Router) respondToReminder(ctx context.Context, in Inbound, orderID int64, response commands.ReminderResponse) {
	cmd, err := commands.NewRespondToReminderCommand(in.UserID, in.DisplayName, orderID, response)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	if _, err = r.h.RespondToReminder.Handle(ctx, cmd); err != nil {
		r.fail(ctx, in, err)
		return
	}

	switch response {
	case commands.ReminderAlreadyDelivered:
		r.reply(ctx, in, "Thank you! We will check and confirm shortly.", nil)
	case commands.ReminderBringLater:
		r.reply(ctx, in, "No problem, we will wait for you.", nil)
	case commands.ReminderCancel:
		// the cancellation notice comes from the transition event
	}
}

func (r *Router) submitFeedback(ctx context.Context, in Inbound, orderID int64, rating int) {
	cmd, err := commands.NewSubmitFeedbackCommand(in.UserID, orderID, rating)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	if err = r.h.SubmitFeedback.Handle(ctx, cmd); err != nil {
		r.fail(ctx, in, err)
		return
	}
	r.reply(ctx, in, "Thank you for your feedback! 💜", nil)
}

// Administrator side.

func (r *Router) listOrders(ctx context.Context, in Inbound, filterID string, page int) {
	if !r.requireAdmin(ctx, in) {
		return
	}
	filter, err := queries.ParseStatusFilter(strings.TrimSpace(filterID))
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	result, err := r.h.ListOrders.Handle(ctx, queries.NewListOrdersQuery(filter, page))
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	text, keyboard := orderPageView(result)
	r.reply(ctx, in, text, keyboard)
}

func (r *Router) orderDetail(ctx context.Context, in Inbound, orderID int64) {
	if !r.requireAdmin(ctx, in) {
		return
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	detail, err := r.h.GetOrder.Handle(ctx, query)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	text, keyboard := orderDetailView(detail)
	r.reply(ctx, in, text, keyboard)
}

func (r *Router) statusCommand(ctx context.Context, in Inbound) {
	fields := strings.Fields(in.Args)
	if len(fields) != 2 {
		r.reply(ctx, in, "Usage: /status <number> <status>", nil)
		return
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(fields[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		r.fail(ctx, in, errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%q is not an order id", fields[0])))
		return
	}
	target, err := order.ParseStatus(fields[1])
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	r.changeStatus(ctx, in, id, target)
}

func (r *Router) changeStatus(ctx context.Context, in Inbound, orderID int64, target order.Status) {
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, order.AdminActor(in.UserID, in.DisplayName))
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	outcome, err := r.h.ChangeOrderStatus.Handle(ctx, cmd)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}

	r.reportDisplaced(ctx, in, outcome.Displaced)
	if outcome.Pending.Kind() == adminslot.KindReadyDate {
		text, keyboard := readyDatePrompt(orderID)
		r.reply(ctx, in, text, keyboard)
	}
	// the dispatcher confirms committed transitions to the acting admin
}

func (r *Router) submitReadyDate(ctx context.Context, in Inbound, orderID int64, readyDate string, skipped bool) {
	cmd, err := commands.NewSubmitReadyDateCommand(orderID, order.AdminActor(in.UserID, in.DisplayName), readyDate, skipped)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	outcome, err := r.h.SubmitReadyDate.Handle(ctx, cmd)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	if outcome.Pending.Kind() == adminslot.KindMasterComment {
		text, keyboard := masterCommentPrompt(orderID)
		r.reply(ctx, in, text, keyboard)
	}
}

func (r *Router) submitMasterComment(ctx context.Context, in Inbound, orderID int64, comment string, skipped bool) {
	cmd, err := commands.NewSubmitMasterCommentCommand(orderID, in.UserID, comment, skipped)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	o, err := r.h.SubmitMasterComment.Handle(ctx, cmd)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	r.orderDetail(ctx, in, o.ID())
}

func (r *Router) searchCommand(ctx context.Context, in Inbound) {
	mode, text, _ := strings.Cut(in.Args, " ")
	by := adminslot.SearchByName
	if mode == adminslot.SearchByID.String() {
		by = adminslot.SearchByID
	} else if mode != adminslot.SearchByName.String() {
		text = in.Args
		if strings.HasPrefix(text, "#") {
			by = adminslot.SearchByID
		}
	}

	if strings.TrimSpace(text) == "" {
		r.openSlot(ctx, in, adminslot.AwaitingSearchQuery(by), searchPrompt(by))
		return
	}
	if !r.requireAdmin(ctx, in) {
		return
	}
	r.search(ctx, in, by, text)
}

func (r *Router) search(ctx context.Context, in Inbound, by adminslot.SearchBy, text string) {
	query, err := queries.NewSearchOrdersQuery(by, text)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	found, err := r.h.SearchOrders.Handle(ctx, query)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	reply, keyboard := searchResultsView(found)
	r.reply(ctx, in, reply, keyboard)
}

func (r *Router) broadcastCommand(ctx context.Context, in Inbound) {
	if in.Args == "" {
		r.openSlot(ctx, in, adminslot.AwaitingBroadcastText(), "Send the broadcast text. /cancel to abort.")
		return
	}
	r.startBroadcast(ctx, in, in.Args)
}

// startBroadcast validates synchronously and delivers in the background so
// the admin's chat stays responsive. Progress is reported by the handler.
func (r *Router) startBroadcast(ctx context.Context, in Inbound, text string) {
	cmd, err := commands.NewBroadcastCommand(in.UserID, text)
	if err != nil {
		r.fail(ctx, in, err)
		return
	}
	if r.h.Broadcast.Running(in.UserID) {
		r.reply(ctx, in, "A broadcast is already running.", nil)
		return
	}

	runCtx := context.WithoutCancel(ctx)
	r.broadcasts.Add(1)
	go func() {
		defer r.broadcasts.Done()
		result, err := r.h.Broadcast.Handle(runCtx, cmd)
		if err != nil {
			r.fail(runCtx, in, err)
			return
		}
		r.logger.InfoContext(runCtx, "broadcast finished",
			"run_id", result.RunID.String(),
			"admin_id", in.UserID,
			"sent", result.Sent,
			"failed", result.Failed,
		)
	}()
}

func (r *Router) openSlot(ctx context.Context, in Inbound, slot adminslot.Slot, prompt string) {
	if !r.requireAdmin(ctx, in) {
		return
	}
	displaced := r.slots.Replace(in.UserID, slot)
	r.reportDisplaced(ctx, in, displaced)
	r.reply(ctx, in, prompt, nil)
}

func (r *Router) slotInput(ctx context.Context, in Inbound, slot adminslot.Slot) {
	if in.Text == "" {
		r.reply(ctx, in, "Please send text.", nil)
		return
	}

	switch slot.Kind() {
	case adminslot.KindReadyDate:
		r.submitReadyDate(ctx, in, slot.OrderID(), in.Text, false)
	case adminslot.KindMasterComment:
		r.submitMasterComment(ctx, in, slot.OrderID(), in.Text, false)
	case adminslot.KindBroadcastText:
		if r.slots.CompareAndSwap(in.UserID, slot, adminslot.None()) {
			r.startBroadcast(ctx, in, in.Text)
		}
	case adminslot.KindSearchQuery:
		if r.slots.CompareAndSwap(in.UserID, slot, adminslot.None()) {
			r.search(ctx, in, slot.SearchBy(), in.Text)
		}
	case adminslot.KindNone:
	}
}

func (r *Router) cancelInput(ctx context.Context, in Inbound) {
	if slot := r.slots.Current(in.UserID); !slot.IsEmpty() {
		if r.slots.CompareAndSwap(in.UserID, slot, adminslot.None()) {
			r.reply(ctx, in, services.DisplacedInput(slotTitle(slot)), nil)
		}
		return
	}
	r.advanceIntake(ctx, in, intake.Cancel())
}

func (r *Router) skipInput(ctx context.Context, in Inbound) {
	slot := r.slots.Current(in.UserID)
	switch slot.Kind() {
	case adminslot.KindReadyDate:
		r.submitReadyDate(ctx, in, slot.OrderID(), "", true)
	case adminslot.KindMasterComment:
		r.submitMasterComment(ctx, in, slot.OrderID(), "", true)
	case adminslot.KindNone, adminslot.KindBroadcastText, adminslot.KindSearchQuery:
		r.advanceIntake(ctx, in, intake.Skip())
	}
}

func (r *Router) reportDisplaced(ctx context.Context, in Inbound, displaced adminslot.Slot) {
	if displaced.IsEmpty() {
		return
	}
	r.reply(ctx, in, services.DisplacedInput(slotTitle(displaced)), nil)
}

func (r *Router) isAdmin(ctx context.Context, userID int64) bool {
	ok, err := r.admins.IsAdmin(ctx, userID)
	if err != nil {
		r.logger.WarnContext(ctx, "admin lookup failed", "user_id", userID, "error", err)
		return false
	}
	return ok
}

func (r *Router) requireAdmin(ctx context.Context, in Inbound) bool {
	if r.isAdmin(ctx, in.UserID) {
		return true
	}
	r.fail(ctx, in, errs.NewForbiddenError(in.UserID, "administrate"))
	return false
}

func (r *Router) fail(ctx context.Context, in Inbound, err error) {
	text, known := errorText(err)
	if !known {
		r.logger.ErrorContext(ctx, "update failed", "user_id", in.UserID, "error", err)
	} else {
		r.logger.DebugContext(ctx, "update rejected", "user_id", in.UserID, "error", err)
	}
	r.reply(ctx, in, text, nil)
}

func (r *Router) reply(ctx context.Context, in Inbound, text string, keyboard ports.Keyboard) {
	if text == "" {
		return
	}
	if _, err := r.messenger.Send(ctx, ports.OutgoingMessage{ChatID: in.ChatID, Text: text, Keyboard: keyboard}); err != nil {
		r.logger.WarnContext(ctx, "reply failed", "chat_id", in.ChatID, "error", err)
	}
}
