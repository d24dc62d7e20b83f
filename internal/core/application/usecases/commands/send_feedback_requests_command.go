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
	ErrSendFeedbackRequestsCommandIsNotConstructed = errors.New(
		"SendFeedbackRequestsCommand must be created via NewSendFeedbackRequestsCommand constructor",
	)
)

// SendFeedbackRequestsCommand triggers the feedback sweep.
type SendFeedbackRequestsCommand struct {
	guard guard.ConstructorGuard
}

func NewSendFeedbackRequestsCommand() SendFeedbackRequestsCommand {
	return SendFeedbackRequestsCommand{guard: guard.NewConstructorGuard()}
}

func (c SendFeedbackRequestsCommand) Validate() error {
	return c.guard.Validate(ErrSendFeedbackRequestsCommandIsNotConstructed)
}

// SendFeedbackRequestsCommandHandler prompts clients of issued orders for a
// rating once the feedback delay has passed. The flag is set only after the
// prompt went out, so a failed send is retried on the next sweep and a
// delivered prompt is never repeated.
type SendFeedbackRequestsCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	messenger  ports.Messenger
	clock      kernel.Clock
	opts       SweepOptions
	logger     *slog.Logger
}

func NewSendFeedbackRequestsCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	messenger ports.Messenger,
	clock kernel.Clock,
	opts SweepOptions,
	logger *slog.Logger,
) SendFeedbackRequestsCommandHandler {
	return SendFeedbackRequestsCommandHandler{
		uowFactory: uowFactory,
		messenger:  messenger,
		clock:      clock,
		opts:       opts,
		logger:     logger.With("component", "feedback-sweep"),
	}
}

// Handle only fails when the candidate list cannot be read. Per-order
// failures are logged and counted.
func (h SendFeedbackRequestsCommandHandler) Handle(ctx context.Context, cmd SendFeedbackRequestsCommand) (SweepResult, error) {
	result := SweepResult{Sweep: "feedback"}
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	now := h.clock.Now()
	repo := h.uowFactory.Create().OrderRepository()
	candidates, err := repo.ListPendingFeedback(ctx, now.Add(-h.opts.FeedbackDelay))
	if err != nil {
		return result, err
	}

	for _, o := range candidates {
		if !o.IsDueForFeedback(now, h.opts.FeedbackDelay) {
			continue
		}
		result.Candidates++

		_, err = h.messenger.Send(ctx, ports.OutgoingMessage{
			ChatID:   o.UserID(),
			Text:     services.FeedbackPrompt(o),
			Keyboard: ratingKeyboard(o.ID()),
		})
		if err != nil {
			result.Failed++
			h.logger.WarnContext(ctx, "feedback prompt failed", "order_id", o.ID(), "chat_id", o.UserID(), "error", err)
			continue
		}
		result.Sent++

		if err = o.MarkFeedbackRequested(); err == nil {
			err = repo.UpdateFeedbackState(ctx, o)
		}
		if err != nil {
			h.logger.ErrorContext(ctx, "cannot store feedback flag", "order_id", o.ID(), "error", err)
		}
	}

	return result, nil
}
