package mocks

import (
	"context"

	"workshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork hands out the mocked repositories it was built with.
type UnitOfWork struct {
	mock.Mock
	Orders *OrderRepository
	Users  *UserRepository
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{Orders: &OrderRepository{}, Users: &UserRepository{}}
}

func (m *UnitOfWork) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *UnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *UnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *UnitOfWork) OrderRepository() ports.OrderRepository {
	return m.Orders
}

func (m *UnitOfWork) UserRepository() ports.UserRepository {
	return m.Users
}

// UnitOfWorkFactory always returns the same unit of work.
type UnitOfWorkFactory struct {
	UoW *UnitOfWork
}

func (f UnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.UoW
}
