// Package notifications turns committed order transitions into chat
// messages. Delivery is best-effort: failures are logged and counted and
// never reach the code that changed the order.
package notifications

import (
	"context"
	"log/slog"

	"workshop/internal/core/domain/model/action"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
)

// DeliveryReport counts the outcome of a fan-out.
type DeliveryReport struct {
	Sent   int
	Failed int
}

// Dispatcher maps transition events to client and administrator messages.
type Dispatcher struct {
	messenger ports.Messenger
	admins    ports.AdminDirectory
	logger    *slog.Logger
}

func NewDispatcher(messenger ports.Messenger, admins ports.AdminDirectory, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		messenger: messenger,
		admins:    admins,
		logger:    logger.With("component", "notification-dispatcher"),
	}
}

// Handle is subscribed to the transition stream.
//
//   - creation of a New order alerts administrators
//   - a transition sends the client template of the target status, if any
//   - a transition made by an administrator is confirmed to that administrator
//   - a transition made by a client or the scheduler is reported to
//     administrators, who did not see it happen
func (d *Dispatcher) Handle(ctx context.Context, evt order.TransitionEvent) {
	if evt.IsCreation() {
		if evt.To == order.New {
			d.NotifyAdmins(ctx, services.NewOrderAlert(evt), ports.Keyboard{{
				{Text: "Open " + services.OrderNumber(evt.OrderID), Action: action.OrderDetail(evt.OrderID).Encode()},
			}})
		}
		return
	}

	d.notifyClient(ctx, evt)

	if evt.Actor.Role == order.RoleAdmin {
		d.confirmToActor(ctx, evt)
		return
	}
	d.NotifyAdmins(ctx, services.AdminConfirmation(evt), nil)
}

func (d *Dispatcher) confirmToActor(ctx context.Context, evt order.TransitionEvent) {
	msg := ports.OutgoingMessage{
		ChatID: evt.Actor.ID,
		Text:   services.AdminConfirmation(evt),
		Keyboard: ports.Keyboard{{
			{Text: "Open " + services.OrderNumber(evt.OrderID), Action: action.OrderDetail(evt.OrderID).Encode()},
		}},
	}
	if _, err := d.messenger.Send(ctx, msg); err != nil {
		d.logger.WarnContext(ctx, "admin confirmation failed",
			"order_id", evt.OrderID, "chat_id", evt.Actor.ID, "status", evt.To.String(), "error", err)
	}
}

func (d *Dispatcher) notifyClient(ctx context.Context, evt order.TransitionEvent) {
	text, ok := services.ClientStatusMessage(evt)
	if !ok {
		return
	}
	_, err := d.messenger.Send(ctx, ports.OutgoingMessage{ChatID: evt.ClientID, Text: text})
	if err != nil {
		d.logger.WarnContext(ctx, "client notification failed",
			"order_id", evt.OrderID, "chat_id", evt.ClientID, "status", evt.To.String(), "error", err)
		return
	}
	d.logger.DebugContext(ctx, "client notified", "order_id", evt.OrderID, "status", evt.To.String())
}

// NotifyAdmins sends text to every administrator. Individual failures are
// logged and counted.
func (d *Dispatcher) NotifyAdmins(ctx context.Context, text string, keyboard ports.Keyboard) DeliveryReport {
	var report DeliveryReport

	ids, err := d.admins.AdminIDs(ctx)
	if err != nil {
		d.logger.ErrorContext(ctx, "cannot resolve administrators", "error", err)
		return report
	}

	for _, id := range ids {
		if _, err := d.messenger.Send(ctx, ports.OutgoingMessage{ChatID: id, Text: text, Keyboard: keyboard}); err != nil {
			report.Failed++
			d.logger.WarnContext(ctx, "admin notification failed", "chat_id", id, "error", err)
			continue
		}
		report.Sent++
	}
	return report
}
