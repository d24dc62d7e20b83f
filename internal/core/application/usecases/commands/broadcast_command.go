package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

const MaxBroadcastLength = 4096

var (
	ErrBroadcastCommandIsNotConstructed = errors.New(
		"BroadcastCommand must be created via NewBroadcastCommand constructor",
	)
	ErrBroadcastInFlight = errors.New("a broadcast is already running")
)

type BroadcastCommand struct {
	adminID int64
	text    string

	guard guard.ConstructorGuard
}

func NewBroadcastCommand(adminID int64, text string) (BroadcastCommand, error) {
	text = strings.TrimSpace(text)

	var textErr error
	switch {
	case text == "":
		textErr = errs.NewValueIsRequiredError("text")
	case utf8.RuneCountInString(text) > MaxBroadcastLength:
		textErr = errs.NewValueIsOutOfRangeError("text", utf8.RuneCountInString(text), 1, MaxBroadcastLength)
	}

	if err := errors.Join(validateUserID("adminId", adminID), textErr); err != nil {
		return BroadcastCommand{}, err
	}

	return BroadcastCommand{
		adminID: adminID,
		text:    text,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c BroadcastCommand) Validate() error {
	return c.guard.Validate(ErrBroadcastCommandIsNotConstructed)
}

func (c BroadcastCommand) AdminID() int64 {
	return c.adminID
}

func (c BroadcastCommand) Text() string {
	return c.text
}

// BroadcastResult is reported to the initiator and logged.
type BroadcastResult struct {
	RunID  uuid.UUID
	Total  int
	Sent   int
	Failed int
}

// BroadcastOptions tunes throttling and progress reporting.
type BroadcastOptions struct {
	// Delay is the minimum interval between two sends. Zero disables throttling.
	Delay time.Duration
	// ProgressEvery is the number of attempts between progress edits.
	// Zero disables progress edits.
	ProgressEvery int
}

// BroadcastCommandHandler sends one text to every non-blocked user.
//
// Recipients are snapshotted once. Sends are sequential and throttled; a
// failed send is counted and never stops the run. The initiator gets a
// start message that is edited with progress, and a final summary even if
// every send failed. Once started, a run ignores cancellation of the
// caller's context. An administrator has at most one run in flight.
type BroadcastCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	admins     ports.AdminDirectory
	messenger  ports.Messenger
	opts       BroadcastOptions
	logger     *slog.Logger

	inFlight sync.Map
}

func NewBroadcastCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	admins ports.AdminDirectory,
	messenger ports.Messenger,
	opts BroadcastOptions,
	logger *slog.Logger,
) *BroadcastCommandHandler {
	return &BroadcastCommandHandler{
		uowFactory: uowFactory,
		admins:     admins,
		messenger:  messenger,
		opts:       opts,
		logger:     logger.With("component", "broadcast"),
	}
}

// Handle blocks until the run is finished. It fails before sending anything
// with errs.ForbiddenError for non-administrators and errs.ConflictError
// when the administrator already has a run in flight.
func (h *BroadcastCommandHandler) Handle(ctx context.Context, cmd BroadcastCommand) (BroadcastResult, error) {
	if err := cmd.Validate(); err != nil {
		return BroadcastResult{}, err
	}
	if err := requireAdmin(ctx, h.admins, cmd.AdminID(), "broadcast"); err != nil {
		return BroadcastResult{}, err
	}

	runID := uuid.New()
	if _, busy := h.inFlight.LoadOrStore(cmd.AdminID(), runID); busy {
		return BroadcastResult{}, errs.NewConflictErrorWithCause("broadcast", cmd.AdminID(), "running", "started", ErrBroadcastInFlight)
	}
	defer h.inFlight.Delete(cmd.AdminID())

	recipients, err := h.uowFactory.Create().UserRepository().ListRecipients(ctx)
	if err != nil {
		return BroadcastResult{}, err
	}

	ctx = context.WithoutCancel(ctx)
	result := BroadcastResult{RunID: runID, Total: len(recipients)}
	logger := h.logger.With("run_id", runID.String(), "admin_id", cmd.AdminID())
	logger.InfoContext(ctx, "broadcast started", "recipients", result.Total)

	status, err := h.messenger.Send(ctx, ports.OutgoingMessage{
		ChatID: cmd.AdminID(),
		Text:   services.BroadcastStarted(result.Total),
	})
	hasStatus := err == nil
	if err != nil {
		logger.WarnContext(ctx, "broadcast status message failed", "error", err)
	}

	limiter := h.limiter()
	for i, recipient := range recipients {
		if err = limiter.Wait(ctx); err != nil {
			logger.WarnContext(ctx, "broadcast throttle failed", "error", err)
		}

		if _, err = h.messenger.Send(ctx, ports.OutgoingMessage{ChatID: recipient.ID(), Text: cmd.Text()}); err != nil {
			result.Failed++
			logger.WarnContext(ctx, "broadcast delivery failed", "chat_id", recipient.ID(), "error", err)
		} else {
			result.Sent++
		}

		attempts := i + 1
		if hasStatus && h.opts.ProgressEvery > 0 && attempts%h.opts.ProgressEvery == 0 && attempts < result.Total {
			text := services.BroadcastProgress(result.Sent, result.Failed, result.Total)
			if err = h.messenger.Edit(ctx, status, text, nil); err != nil {
				logger.WarnContext(ctx, "broadcast progress update failed", "error", err)
			}
		}
	}

	if _, err = h.messenger.Send(ctx, ports.OutgoingMessage{
		ChatID: cmd.AdminID(),
		Text:   services.BroadcastSummary(result.Sent, result.Failed),
	}); err != nil {
		logger.WarnContext(ctx, "broadcast summary failed", "error", err)
	}

	logger.InfoContext(ctx, "broadcast finished", "sent", result.Sent, "failed", result.Failed)
	return result, nil
}

// Running reports whether the administrator has a run in flight.
func (h *BroadcastCommandHandler) Running(adminID int64) bool {
	_, ok := h.inFlight.Load(adminID)
	return ok
}

func (h *BroadcastCommandHandler) limiter() *rate.Limiter {
	if h.opts.Delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(h.opts.Delay), 1)
}
