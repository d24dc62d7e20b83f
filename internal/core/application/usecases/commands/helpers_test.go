package commands_test

import (
	"context"
	"testing"
	"time"

	"workshop/internal/adapters/out/memory"
	"workshop/internal/core/application/notifications"
	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/core/ports/mocks"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	now      = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	admin    = order.AdminActor(900, "Olga")
	clientID = int64(100)
	orderID  = int64(7)
)

type fixture struct {
	uow       *mocks.UnitOfWork
	factory   mocks.UnitOfWorkFactory
	admins    *mocks.AdminDirectory
	messenger *mocks.Messenger
	slots     *memory.AdminSlotStore
	clock     *kernel.ManualClock
	notifier  *recordingNotifier
}

func newFixture() *fixture {
	uow := mocks.NewUnitOfWork()
	return &fixture{
		uow:       uow,
		factory:   mocks.UnitOfWorkFactory{UoW: uow},
		admins:    &mocks.AdminDirectory{},
		messenger: &mocks.Messenger{},
		slots:     memory.NewAdminSlotStore(),
		clock:     kernel.NewManualClock(now),
		notifier:  &recordingNotifier{},
	}
}

// expectTx allows a full begin/commit/rollback cycle.
func (f *fixture) expectTx() {
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
}

func (f *fixture) allowAdmin(id int64) {
	f.admins.On("IsAdmin", mock.Anything, id).Return(true, nil)
}

// orderIn builds a persisted order of clientID in the given status.
func orderIn(t *testing.T, status order.Status, mutate ...func(*order.Snapshot)) *order.Order {
	t.Helper()

	s := order.Snapshot{
		ID:         orderID,
		UserID:     clientID,
		Status:     status,
		Service:    order.ServiceCoat,
		ClientName: "Ivan",
		CreatedAt:  now.Add(-96 * time.Hour),
	}
	switch status {
	case order.Accepted, order.InProgress, order.Completed, order.Issued:
		accepted := now.Add(-48 * time.Hour)
		s.AcceptedAt = &accepted
	}
	if status == order.Issued {
		issued := now.Add(-30 * time.Hour)
		s.IssuedAt = &issued
	}
	for _, m := range mutate {
		m(&s)
	}

	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}

func sentTo(chatID int64) any {
	return mock.MatchedBy(func(msg ports.OutgoingMessage) bool {
		return msg.ChatID == chatID
	})
}

type recordingNotifier struct {
	texts  []string
	report notifications.DeliveryReport
}

func (n *recordingNotifier) NotifyAdmins(_ context.Context, text string, _ ports.Keyboard) notifications.DeliveryReport {
	n.texts = append(n.texts, text)
	return n.report
}

type statusChangerFunc func(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (commands.TransitionOutcome, error)

func (f statusChangerFunc) Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (commands.TransitionOutcome, error) {
	return f(ctx, cmd)
}

type orderCreatorFunc func(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)

func (f orderCreatorFunc) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	return f(ctx, cmd)
}
