package notifications_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"workshop/internal/core/application/notifications"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/core/ports/mocks"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	discard  = slog.New(slog.NewTextHandler(io.Discard, nil))
	occurred = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
)

func event(from, to order.Status, actor order.Actor) order.TransitionEvent {
	return order.TransitionEvent{
		OrderID:    12,
		From:       from,
		To:         to,
		Actor:      actor,
		ClientID:   100,
		ClientName: "Ivan",
		OccurredAt: occurred,
	}
}

func sentTo(chatID int64) any {
	return mock.MatchedBy(func(msg ports.OutgoingMessage) bool { return msg.ChatID == chatID })
}

func TestDispatcher_Handle(t *testing.T) {
	admin := order.AdminActor(900, "Olga")

	t.Run("should send client template and confirm to the acting admin", func(t *testing.T) {
		messenger := &mocks.Messenger{}
		admins := &mocks.AdminDirectory{}
		messenger.On("Send", mock.Anything, sentTo(100)).Return(ports.MessageRef{ChatID: 100, MessageID: 1}, nil).Once()
		messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg ports.OutgoingMessage) bool {
			return msg.ChatID == 900 && msg.Text == "Order #12: ✅ Accepted → 🔄 In progress by Olga"
		})).Return(ports.MessageRef{ChatID: 900, MessageID: 2}, nil).Once()
		d := notifications.NewDispatcher(messenger, admins, discard)

		d.Handle(t.Context(), event(order.Accepted, order.InProgress, admin))

		messenger.AssertExpectations(t)
		admins.AssertNotCalled(t, "AdminIDs", mock.Anything)
	})

	t.Run("should confirm acceptance to the admin only", func(t *testing.T) {
		messenger := &mocks.Messenger{}
		admins := &mocks.AdminDirectory{}
		messenger.On("Send", mock.Anything, sentTo(900)).Return(ports.MessageRef{}, nil).Once()
		d := notifications.NewDispatcher(messenger, admins, discard)

		d.Handle(t.Context(), event(order.New, order.Accepted, admin))

		messenger.AssertExpectations(t)
		messenger.AssertNotCalled(t, "Send", mock.Anything, sentTo(100))
	})

	t.Run("should confirm to the admin when the client cannot be reached", func(t *testing.T) {
		messenger := &mocks.Messenger{}
		messenger.On("Send", mock.Anything, sentTo(100)).
			Return(ports.MessageRef{}, errs.NewDeliveryError(int64(100), errors.New("blocked by user"))).Once()
		messenger.On("Send", mock.Anything, sentTo(900)).Return(ports.MessageRef{}, nil).Once()
		d := notifications.NewDispatcher(messenger, &mocks.AdminDirectory{}, discard)

		d.Handle(t.Context(), event(order.InProgress, order.Completed, admin))

		messenger.AssertExpectations(t)
	})

	t.Run("should log and swallow delivery failure", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		messenger := &mocks.Messenger{}
		messenger.On("Send", mock.Anything, sentTo(100)).
			Return(ports.MessageRef{}, errs.NewDeliveryError(int64(100), errors.New("blocked by user"))).Once()
		messenger.On("Send", mock.Anything, sentTo(900)).Return(ports.MessageRef{}, nil).Once()
		d := notifications.NewDispatcher(messenger, &mocks.AdminDirectory{}, logger)

		assert.NotPanics(t, func() {
			d.Handle(t.Context(), event(order.Completed, order.Issued, admin))
		})

		messenger.AssertExpectations(t)
		assert.Contains(t, logs.String(), "client notification failed")
		assert.Contains(t, logs.String(), "order_id=12")
	})

	t.Run("should alert admins about a new order", func(t *testing.T) {
		messenger := &mocks.Messenger{}
		admins := &mocks.AdminDirectory{}
		admins.On("AdminIDs", mock.Anything).Return([]int64{1, 2}, nil)
		messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg ports.OutgoingMessage) bool {
			return msg.Text == "🆕 New order #12 from Ivan." && len(msg.Keyboard) == 1
		})).Return(ports.MessageRef{}, nil).Twice()
		d := notifications.NewDispatcher(messenger, admins, discard)

		d.Handle(t.Context(), event(order.Unknown, order.New, order.ClientActor(100, "Ivan")))

		messenger.AssertExpectations(t)
	})

	t.Run("should stay silent for spam creation", func(t *testing.T) {
		messenger := &mocks.Messenger{}
		admins := &mocks.AdminDirectory{}
		d := notifications.NewDispatcher(messenger, admins, discard)

		d.Handle(t.Context(), event(order.Unknown, order.Spam, order.ClientActor(100, "Ivan")))

		messenger.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		admins.AssertNotCalled(t, "AdminIDs", mock.Anything)
	})

	t.Run("should tell admins about a client cancellation", func(t *testing.T) {
		messenger := &mocks.Messenger{}
		admins := &mocks.AdminDirectory{}
		admins.On("AdminIDs", mock.Anything).Return([]int64{1}, nil)
		messenger.On("Send", mock.Anything, sentTo(100)).Return(ports.MessageRef{}, nil).Once()
		messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg ports.OutgoingMessage) bool {
			return msg.ChatID == 1 && msg.Text == "Order #12: 🆕 New → ❌ Cancelled by Ivan"
		})).Return(ports.MessageRef{}, nil).Once()
		d := notifications.NewDispatcher(messenger, admins, discard)

		d.Handle(t.Context(), event(order.New, order.Cancelled, order.ClientActor(100, "Ivan")))

		messenger.AssertExpectations(t)
	})
}

func TestDispatcher_NotifyAdmins(t *testing.T) {
	t.Run("should count failures without stopping", func(t *testing.T) {
		messenger := &mocks.Messenger{}
		admins := &mocks.AdminDirectory{}
		admins.On("AdminIDs", mock.Anything).Return([]int64{1, 2, 3}, nil)
		messenger.On("Send", mock.Anything, sentTo(1)).Return(ports.MessageRef{}, nil)
		messenger.On("Send", mock.Anything, sentTo(2)).Return(ports.MessageRef{}, errs.NewDeliveryError(int64(2), nil))
		messenger.On("Send", mock.Anything, sentTo(3)).Return(ports.MessageRef{}, nil)
		d := notifications.NewDispatcher(messenger, admins, discard)

		report := d.NotifyAdmins(t.Context(), "hello", nil)

		assert.Equal(t, notifications.DeliveryReport{Sent: 2, Failed: 1}, report)
		messenger.AssertNumberOfCalls(t, "Send", 3)
	})

	t.Run("should report nothing when admins cannot be resolved", func(t *testing.T) {
		admins := &mocks.AdminDirectory{}
		admins.On("AdminIDs", mock.Anything).Return(nil, errs.NewPersistenceError("list admins"))
		d := notifications.NewDispatcher(&mocks.Messenger{}, admins, discard)

		report := d.NotifyAdmins(t.Context(), "hello", nil)

		assert.Zero(t, report)
	})
}

func TestAuditLog(t *testing.T) {
	var logs bytes.Buffer
	subscriber := notifications.AuditLog(slog.New(slog.NewTextHandler(&logs, nil)))

	subscriber(t.Context(), event(order.New, order.Accepted, order.AdminActor(900, "Olga")))

	require.Contains(t, logs.String(), "order transition")
	assert.Contains(t, logs.String(), "from=new")
	assert.Contains(t, logs.String(), "to=accepted")
	assert.Contains(t, logs.String(), "actor_role=admin")
}
