package commands

import (
	"context"
	"errors"
	"log/slog"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/services"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/guard"
)

var (
	ErrReportStuckOrdersCommandIsNotConstructed = errors.New(
		"ReportStuckOrdersCommand must be created via NewReportStuckOrdersCommand constructor",
	)
)

// ReportStuckOrdersCommand triggers the stuck-accepted sweep.
type ReportStuckOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewReportStuckOrdersCommand() ReportStuckOrdersCommand {
	return ReportStuckOrdersCommand{guard: guard.NewConstructorGuard()}
}

func (c ReportStuckOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReportStuckOrdersCommandIsNotConstructed)
}

// ReportStuckOrdersCommandHandler lists orders that stayed Accepted longer
// than the configured age to administrators. It never changes an order.
type ReportStuckOrdersCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	notifier   AdminNotifier
	clock      kernel.Clock
	opts       SweepOptions
	logger     *slog.Logger
}

func NewReportStuckOrdersCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	notifier AdminNotifier,
	clock kernel.Clock,
	opts SweepOptions,
	logger *slog.Logger,
) ReportStuckOrdersCommandHandler {
	return ReportStuckOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
		opts:       opts,
		logger:     logger.With("component", "stuck-orders-sweep"),
	}
}

func (h ReportStuckOrdersCommandHandler) Handle(ctx context.Context, cmd ReportStuckOrdersCommand) (SweepResult, error) {
	result := SweepResult{Sweep: "stuck_accepted"}
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	now := h.clock.Now()
	candidates, err := h.uowFactory.Create().OrderRepository().ListAcceptedBefore(ctx, now.Add(-h.opts.StuckAcceptedAge))
	if err != nil {
		return result, err
	}

	stuck := make([]*order.Order, 0, len(candidates))
	for _, o := range candidates {
		if o.IsStuckAccepted(now, h.opts.StuckAcceptedAge) {
			stuck = append(stuck, o)
		}
	}
	result.Candidates = len(stuck)
	if len(stuck) == 0 {
		return result, nil
	}

	report := h.notifier.NotifyAdmins(ctx, services.StuckOrdersReport(stuck, h.opts.StuckAcceptedAge), nil)
	result.Sent = report.Sent
	result.Failed = report.Failed
	if report.Sent == 0 {
		h.logger.WarnContext(ctx, "stuck orders report reached no administrator", "orders", len(stuck))
	}

	return result, nil
}
