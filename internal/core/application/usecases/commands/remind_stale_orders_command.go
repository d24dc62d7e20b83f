package commands

import (
	"context"
	"errors"
	"log/slog"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/guard"
)

var (
	ErrRemindStaleOrdersCommandIsNotConstructed = errors.New(
		"RemindStaleOrdersCommand must be created via NewRemindStaleOrdersCommand constructor",
	)
)

// RemindStaleOrdersCommand triggers the stale-new reminder sweep.
type RemindStaleOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewRemindStaleOrdersCommand() RemindStaleOrdersCommand {
	return RemindStaleOrdersCommand{guard: guard.NewConstructorGuard()}
}

func (c RemindStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRemindStaleOrdersCommandIsNotConstructed)
}

// RemindStaleOrdersCommandHandler asks clients whether they brought the
// item of an order that stayed New longer than the reminder age.
//
// An order is reminded when clientReminded is false and its previous
// reminder, if any, is older than the cooldown. Sending the reminder sets
// clientReminded and stamps lastReminderDate.
type RemindStaleOrdersCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	messenger  ports.Messenger
	clock      kernel.Clock
	opts       SweepOptions
	logger     *slog.Logger
}

func NewRemindStaleOrdersCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	messenger ports.Messenger,
	clock kernel.Clock,
	opts SweepOptions,
	logger *slog.Logger,
) RemindStaleOrdersCommandHandler {
	return RemindStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		messenger:  messenger,
		clock:      clock,
		opts:       opts,
		logger:     logger.With("component", "reminder-sweep"),
	}
}

func (h RemindStaleOrdersCommandHandler) Handle(ctx context.Context, cmd RemindStaleOrdersCommand) (SweepResult, error) {
	result := SweepResult{Sweep: "stale_new"}
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	now := h.clock.Now()
	repo := h.uowFactory.Create().OrderRepository()
	candidates, err := repo.ListStaleNew(ctx, now.Add(-h.opts.ReminderAge), now.Add(-h.opts.ReminderCooldown))
	if err != nil {
		return result, err
	}

	for _, o := range candidates {
		if !o.IsDueForReminder(now, h.opts.ReminderAge, h.opts.ReminderCooldown) {
			continue
		}
		result.Candidates++

		_, err = h.messenger.Send(ctx, ports.OutgoingMessage{
			ChatID:   o.UserID(),
			Text:     services.ReminderMessage(o),
			Keyboard: reminderKeyboard(o.ID()),
		})
		if err != nil {
			result.Failed++
			h.logger.WarnContext(ctx, "reminder failed", "order_id", o.ID(), "chat_id", o.UserID(), "error", err)
			continue
		}
		result.Sent++

		if err = o.MarkReminded(now); err == nil {
			err = repo.UpdateReminderState(ctx, o)
		}
		if err != nil {
			h.logger.ErrorContext(ctx, "cannot store reminder state", "order_id", o.ID(), "error", err)
		}
	}

	return result, nil
}
