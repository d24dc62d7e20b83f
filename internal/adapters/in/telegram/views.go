package telegram

import (
	"errors"
	"fmt"
	"strings"

	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/action"
	"workshop/internal/core/domain/model/adminslot"
	"workshop/internal/core/domain/model/intake"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

const listDateLayout = "02.01"

var listFilters = [][]string{
	{queries.FilterAll, order.New.String(), order.Accepted.String()},
	{order.InProgress.String(), order.Completed.String(), order.Issued.String()},
}

func button(text string, a action.Action) ports.Button {
	return ports.Button{Text: text, Action: a.Encode()}
}

func welcomeView(name string, isAdmin bool) (string, ports.Keyboard) {
	text := fmt.Sprintf("Hello, %s! This is the repair and tailoring workshop.\n"+
		"Register an order here and we will keep you posted on its status.", name)
	keyboard := ports.Keyboard{
		{button("🧵 New order", action.NewOrder()), button("📋 My orders", action.MyOrders())},
	}
	if isAdmin {
		keyboard = append(keyboard, adminMenu()...)
	}
	return text, keyboard
}

func adminMenu() ports.Keyboard {
	return ports.Keyboard{
		{button("🗂 Orders", action.ListOrders(queries.FilterAll, 0))},
		{button("🔎 By number", action.Search(adminslot.SearchByID)), button("🔎 By name", action.Search(adminslot.SearchByName))},
		{button("📣 Broadcast", action.StartBroadcast())},
	}
}

func intakeView(s *intake.Session) (string, ports.Keyboard) {
	controls := ports.Keyboard{{button("⏭ Skip", action.SkipStep()), button("✖️ Cancel", action.CancelIntake())}}

	switch s.Step() {
	case intake.StepSelectService:
		keyboard := make(ports.Keyboard, 0, 5)
		var row []ports.Button
		for _, c := range order.ServiceCategories() {
			row = append(row, button(c.Title(), action.SelectService(c)))
			if len(row) == 2 {
				keyboard = append(keyboard, row)
				row = nil
			}
		}
		if len(row) > 0 {
			keyboard = append(keyboard, row)
		}
		keyboard = append(keyboard, []ports.Button{button("✖️ Cancel", action.CancelIntake())})
		return "What do you need help with?", keyboard
	case intake.StepSendPhoto:
		return "Send a photo of the item, or skip this step.", controls
	case intake.StepEnterDescription:
		return "Describe what needs to be done.", controls
	case intake.StepEnterName:
		return "How should we address you? Skip to use your profile name.", controls
	case intake.StepEnterPhone:
		return "Leave a phone number so the master can reach you.", controls
	case intake.StepConfirm:
		return draftSummary(s.Draft()), ports.Keyboard{
			{button("✅ Confirm", action.ConfirmOrder()), button("✖️ Cancel", action.CancelIntake())},
		}
	case intake.StepCancelled:
		return "Order registration cancelled.", ports.Keyboard{{button("🧵 New order", action.NewOrder())}}
	default:
		return "", nil
	}
}

func draftSummary(d intake.Draft) string {
	var b strings.Builder
	b.WriteString("Please check your order:\n")
	fmt.Fprintf(&b, "\nService: %s", d.Service.Title())
	fmt.Fprintf(&b, "\nDescription: %s", orDash(d.Description))
	fmt.Fprintf(&b, "\nPhoto: %s", yesNo(d.PhotoRef != ""))
	fmt.Fprintf(&b, "\nName: %s", orDash(d.ClientName))
	fmt.Fprintf(&b, "\nPhone: %s", orDash(d.ClientPhone))
	return b.String()
}

func orderPageView(p queries.OrderPage) (string, ports.Keyboard) {
	var b strings.Builder
	fmt.Fprintf(&b, "Orders (%s): %d", filterTitle(p.Filter), p.Total)
	if p.PageCount > 1 {
		fmt.Fprintf(&b, ", page %d of %d", p.Page+1, p.PageCount)
	}
	if len(p.Orders) == 0 {
		b.WriteString("\n\nNo orders.")
	}

	keyboard := make(ports.Keyboard, 0, len(p.Orders)+4)
	for _, o := range p.Orders {
		keyboard = append(keyboard, []ports.Button{button(summaryLine(o), action.OrderDetail(o.ID))})
	}

	var nav []ports.Button
	if p.HasPrev() {
		nav = append(nav, button("⬅️", action.ListOrders(p.Filter, p.Page-1)))
	}
	if p.HasNext() {
		nav = append(nav, button("➡️", action.ListOrders(p.Filter, p.Page+1)))
	}
	if len(nav) > 0 {
		keyboard = append(keyboard, nav)
	}

	for _, filters := range listFilters {
		row := make([]ports.Button, 0, len(filters))
		for _, f := range filters {
			row = append(row, button(filterTitle(f), action.ListOrders(f, 0)))
		}
		keyboard = append(keyboard, row)
	}
	return b.String(), keyboard
}

func orderDetailView(d queries.OrderDetail) (string, ports.Keyboard) {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s · %s\n", d.Number, statusLabel(d.Status))
	fmt.Fprintf(&b, "\nService: %s", d.Service.Title())
	fmt.Fprintf(&b, "\nClient: %s", d.ClientName)
	if d.RegularClient {
		fmt.Fprintf(&b, " (regular, %d orders)", d.ClientOrderCount)
	}
	fmt.Fprintf(&b, "\nPhone: %s", orDash(d.ClientPhone))
	fmt.Fprintf(&b, "\nDescription: %s", orDash(d.Description))
	fmt.Fprintf(&b, "\nCreated: %s", d.CreatedAt.Format("02.01.2006 15:04"))
	if d.AcceptedAt != nil {
		fmt.Fprintf(&b, "\nAccepted: %s", d.AcceptedAt.Format("02.01.2006"))
	}
	if d.ReadyDate != "" {
		fmt.Fprintf(&b, "\nReady by: %s", d.ReadyDate)
	}
	if d.MasterComment != "" {
		fmt.Fprintf(&b, "\nMaster comment: %s", d.MasterComment)
	}

	keyboard := make(ports.Keyboard, 0, len(d.AllowedTargets)+1)
	for _, target := range d.AllowedTargets {
		s, err := order.ParseStatus(target)
		if err != nil {
			continue
		}
		keyboard = append(keyboard, []ports.Button{button("→ "+services.StatusLabel(s), action.SetStatus(d.ID, s))})
	}
	keyboard = append(keyboard, []ports.Button{button("🗂 Back to orders", action.ListOrders(queries.FilterAll, 0))})
	return b.String(), keyboard
}

func searchResultsView(found []queries.OrderSummary) (string, ports.Keyboard) {
	if len(found) == 0 {
		return "Nothing found.", ports.Keyboard{{button("🗂 Orders", action.ListOrders(queries.FilterAll, 0))}}
	}
	keyboard := make(ports.Keyboard, 0, len(found))
	for _, o := range found {
		keyboard = append(keyboard, []ports.Button{button(summaryLine(o), action.OrderDetail(o.ID))})
	}
	return fmt.Sprintf("Found %d order(s):", len(found)), keyboard
}

func userOrdersView(orders []queries.OrderSummary) (string, ports.Keyboard) {
	if len(orders) == 0 {
		return "You have no orders yet.", ports.Keyboard{{button("🧵 New order", action.NewOrder())}}
	}
	var b strings.Builder
	b.WriteString("Your latest orders:\n")
	for _, o := range orders {
		fmt.Fprintf(&b, "\n%s · %s · %s · %s",
			o.Number, o.CreatedAt.Format(listDateLayout), o.Service.Title(), statusLabel(o.Status))
	}
	return b.String(), nil
}

func readyDatePrompt(orderID int64) (string, ports.Keyboard) {
	return fmt.Sprintf("Order %s: when will it be ready? Send a date, e.g. 31.01.", services.OrderNumber(orderID)),
		ports.Keyboard{{button("⏭ Skip", action.SkipReadyDate(orderID))}}
}

func masterCommentPrompt(orderID int64) (string, ports.Keyboard) {
	return fmt.Sprintf("Order %s: add a comment for the master.", services.OrderNumber(orderID)),
		ports.Keyboard{{button("⏭ Skip", action.SkipComment(orderID))}}
}

func searchPrompt(by adminslot.SearchBy) string {
	if by == adminslot.SearchByID {
		return "Send the order number, e.g. #42."
	}
	return "Send the client name or a part of it."
}

func slotTitle(s adminslot.Slot) string {
	switch s.Kind() {
	case adminslot.KindReadyDate:
		return "ready date for " + services.OrderNumber(s.OrderID())
	case adminslot.KindMasterComment:
		return "master comment for " + services.OrderNumber(s.OrderID())
	case adminslot.KindBroadcastText:
		return "broadcast text"
	case adminslot.KindSearchQuery:
		return "search query"
	default:
		return s.String()
	}
}

// errorText maps an error to the message shown to the user. Unknown errors
// get a generic text; the caller logs them.
func errorText(err error) (string, bool) {
	switch {
	case errors.Is(err, errs.ErrForbidden):
		return "You are not allowed to do that.", true
	case errors.Is(err, errs.ErrObjectNotFound):
		return "Order not found.", true
	case errors.Is(err, errs.ErrConflict):
		return "The order has changed in the meantime. Please open it again.", true
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return "That does not look right, please try again.", true
	case errors.Is(err, intake.ErrSessionClosed):
		return "This order form is already closed.", true
	default:
		return "Something went wrong. Please try again later.", false
	}
}

func summaryLine(o queries.OrderSummary) string {
	return fmt.Sprintf("%s · %s · %s · %s", o.Number, o.CreatedAt.Format(listDateLayout), o.ClientName, statusLabel(o.Status))
}

func statusLabel(id string) string {
	s, err := order.ParseStatus(id)
	if err != nil {
		return id
	}
	return services.StatusLabel(s)
}

func filterTitle(id string) string {
	if id == queries.FilterAll || id == "" {
		return "All"
	}
	return statusLabel(id)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
