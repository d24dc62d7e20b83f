package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers     = 8
	defaultQueueSize   = 32
	longPollTimeoutSec = 30
)

// UpdateSource is the long-polling side of the bot API.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Dispatcher handles one decoded update.
type Dispatcher interface {
	Route(ctx context.Context, in Inbound)
}

// Listener pulls updates and fans them out to a fixed set of workers.
// Updates of the same user always land on the same worker, so one user's
// updates are handled in arrival order while different users proceed in
// parallel.
type Listener struct {
	source     UpdateSource
	dispatcher Dispatcher
	workers    int
	logger     *slog.Logger
}

func NewListener(source UpdateSource, dispatcher Dispatcher, workers int, logger *slog.Logger) *Listener {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Listener{
		source:     source,
		dispatcher: dispatcher,
		workers:    workers,
		logger:     logger.With("component", "telegram_listener"),
	}
}

// Run blocks until ctx is cancelled or the update channel closes. Updates
// already queued are handled before Run returns.
func (l *Listener) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = longPollTimeoutSec
	updates := l.source.GetUpdatesChan(cfg)

	queues := make([]chan Inbound, l.workers)
	var g errgroup.Group
	for i := range queues {
		queue := make(chan Inbound, defaultQueueSize)
		queues[i] = queue
		g.Go(func() error {
			// queued updates outlive the poll context
			routeCtx := context.WithoutCancel(ctx)
			for in := range queue {
				l.dispatcher.Route(routeCtx, in)
			}
			return nil
		})
	}

	l.logger.InfoContext(ctx, "listening for updates", "workers", l.workers)
	l.pump(ctx, updates, queues)

	l.source.StopReceivingUpdates()
	for _, queue := range queues {
		close(queue)
	}
	err := g.Wait()
	l.logger.InfoContext(ctx, "listener stopped")
	return err
}

func (l *Listener) pump(ctx context.Context, updates tgbotapi.UpdatesChannel, queues []chan Inbound) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			in, ok := FromUpdate(update)
			if !ok {
				l.logger.DebugContext(ctx, "skipping unsupported update", "update_id", update.UpdateID)
				continue
			}
			queue := queues[partition(in.UserID, len(queues))]
			select {
			case queue <- in:
			case <-ctx.Done():
				return
			}
		}
	}
}

func partition(userID int64, n int) int {
	if userID < 0 {
		userID = -userID
	}
	return int(userID % int64(n))
}
