package services

import (
	"fmt"
	"strings"
	"time"

	"workshop/internal/core/domain/model/order"
)

const dateLayout = "02.01"

var statusEmoji = map[order.Status]string{
	order.New:        "🆕",
	order.Accepted:   "✅",
	order.InProgress: "🔄",
	order.Completed:  "✔️",
	order.Issued:     "📦",
	order.Cancelled:  "❌",
	order.Spam:       "🚫",
}

var statusTitles = map[order.Status]string{
	order.New:        "New",
	order.Accepted:   "Accepted",
	order.InProgress: "In progress",
	order.Completed:  "Ready for pick-up",
	order.Issued:     "Issued",
	order.Cancelled:  "Cancelled",
	order.Spam:       "Spam",
}

// StatusLabel renders a status with its emoji, e.g. "🔄 In progress".
func StatusLabel(s order.Status) string {
	title, ok := statusTitles[s]
	if !ok {
		return "❓ " + s.String()
	}
	return statusEmoji[s] + " " + title
}

// OrderNumber renders "#<id>".
func OrderNumber(id int64) string {
	return fmt.Sprintf("#%d", id)
}

// ClientStatusMessage returns the text sent to the client after a
// transition. Accepted intentionally has no client message; the second
// return value is false for statuses without a template.
func ClientStatusMessage(evt order.TransitionEvent) (string, bool) {
	name := evt.ClientName
	number := OrderNumber(evt.OrderID)

	//nolint:exhaustive // accepted, new and spam send nothing
	switch evt.To {
	case order.InProgress:
		return fmt.Sprintf("%s, your order %s is now in progress. 🧵\n"+
			"We will message you here as soon as it is ready.", name, number), true
	case order.Completed:
		return fmt.Sprintf("%s, your order %s is ready for pick-up! ✨\n\n"+
			"Please name the order number when you come.\n"+
			"Mon-Thu 10:00-19:50, Fri 10:00-19:00, Sat 10:00-17:00, Sun closed.", name, number), true
	case order.Issued:
		return fmt.Sprintf("%s, thank you for choosing us! 💜\nOrder %s has been handed over.", name, number), true
	case order.Cancelled:
		return fmt.Sprintf("Order %s has been cancelled.\nIf you have questions, just write here.", number), true
	default:
		return "", false
	}
}

// AdminConfirmation is shown to administrators after a transition,
// independently of whether the client could be notified.
func AdminConfirmation(evt order.TransitionEvent) string {
	return fmt.Sprintf("Order %s: %s → %s by %s",
		OrderNumber(evt.OrderID), StatusLabel(evt.From), StatusLabel(evt.To), evt.Actor.DisplayName())
}

// NewOrderAlert tells administrators that a client confirmed an order.
func NewOrderAlert(evt order.TransitionEvent) string {
	return fmt.Sprintf("🆕 New order %s from %s.", OrderNumber(evt.OrderID), evt.ClientName)
}

// OrderCreatedReceipt is the client's confirmation at the end of the wizard.
func OrderCreatedReceipt(o *order.Order) string {
	return fmt.Sprintf("Thank you, %s! Your order %s (%s) has been registered.\n"+
		"Bring the item to the workshop and we will take it from there.",
		o.ClientName(), o.Number(), o.Service().Title())
}

// ReminderMessage asks the client about an order that has stayed new.
func ReminderMessage(o *order.Order) string {
	return fmt.Sprintf("%s, you registered order %s (%s) on %s but we have not received the item yet.\n"+
		"Have you already brought it?",
		o.ClientName(), o.Number(), o.Service().Title(), o.CreatedAt().Format(dateLayout))
}

// FeedbackPrompt asks the client to rate an issued order.
func FeedbackPrompt(o *order.Order) string {
	return fmt.Sprintf("%s, how did we do with order %s? Please rate us from 1 to 5.", o.ClientName(), o.Number())
}

// FeedbackReceived forwards a rating to administrators.
func FeedbackReceived(o *order.Order, rating int) string {
	return fmt.Sprintf("%s Order %s was rated %d/5 by %s.", strings.Repeat("⭐", rating), o.Number(), rating, o.ClientName())
}

// AlreadyDeliveredAlert tells administrators that a reminded client says
// the item is already at the workshop.
func AlreadyDeliveredAlert(o *order.Order) string {
	return fmt.Sprintf("📬 %s says the item for order %s is already at the workshop. Please check and accept it.",
		o.ClientName(), o.Number())
}

// StuckOrdersReport lists orders accepted too long ago.
func StuckOrdersReport(orders []*order.Order, age time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ Orders accepted more than %d days ago:\n", int(age.Hours()/24))
	for _, o := range orders {
		accepted := "?"
		if at := o.AcceptedAt(); at != nil {
			accepted = at.Format(dateLayout)
		}
		ready := o.ReadyDate()
		if ready == "" {
			ready = "not set"
		}
		fmt.Fprintf(&b, "\n%s %s, accepted %s, ready: %s", o.Number(), o.ClientName(), accepted, ready)
	}
	return b.String()
}

// DisplacedInput tells an administrator that a pending input was dropped.
func DisplacedInput(what string) string {
	return fmt.Sprintf("The pending %s input was cancelled.", what)
}

func BroadcastStarted(total int) string {
	return fmt.Sprintf("📣 Broadcast started: %d recipients.", total)
}

func BroadcastProgress(sent, failed, total int) string {
	return fmt.Sprintf("📣 Sent: %d / %d, failed: %d", sent, total, failed)
}

func BroadcastSummary(sent, failed int) string {
	return fmt.Sprintf("✅ Broadcast finished.\nSent: %d\nFailed: %d", sent, failed)
}
