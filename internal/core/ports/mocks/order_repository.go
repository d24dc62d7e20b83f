package mocks

import (
	"context"
	"time"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *OrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	return orderOrNil(args, 0), args.Error(1)
}

func (m *OrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	return orderOrNil(args, 0), args.Error(1)
}

func (m *OrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	return m.Called(ctx, aggregate, expected).Error(0)
}

func (m *OrderRepository) UpdateAcceptanceDetails(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *OrderRepository) UpdateReminderState(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *OrderRepository) UpdateFeedbackState(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *OrderRepository) ListByStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, statuses)
	return ordersOrNil(args, 0), args.Error(1)
}

func (m *OrderRepository) ListStaleNew(ctx context.Context, createdBefore, remindedBefore time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, createdBefore, remindedBefore)
	return ordersOrNil(args, 0), args.Error(1)
}

func (m *OrderRepository) ListAcceptedBefore(ctx context.Context, acceptedBefore time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, acceptedBefore)
	return ordersOrNil(args, 0), args.Error(1)
}

func (m *OrderRepository) ListPendingFeedback(ctx context.Context, issuedBefore time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, issuedBefore)
	return ordersOrNil(args, 0), args.Error(1)
}

func (m *OrderRepository) SearchByClientName(ctx context.Context, fragment string) ([]*order.Order, error) {
	args := m.Called(ctx, fragment)
	return ordersOrNil(args, 0), args.Error(1)
}

func (m *OrderRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, userID, limit)
	return ordersOrNil(args, 0), args.Error(1)
}

func (m *OrderRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func orderOrNil(args mock.Arguments, i int) *order.Order {
	if v := args.Get(i); v != nil {
		return v.(*order.Order)
	}
	return nil
}

func ordersOrNil(args mock.Arguments, i int) []*order.Order {
	if v := args.Get(i); v != nil {
		return v.([]*order.Order)
	}
	return nil
}
