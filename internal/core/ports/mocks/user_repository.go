package mocks

import (
	"context"

	"workshop/internal/core/domain/model/user"
	"workshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var _ ports.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Upsert(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) ListRecipients(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) ListAdmins(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}
