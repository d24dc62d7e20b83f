package mocks

import (
	"context"

	"workshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var _ ports.AdminDirectory = (*AdminDirectory)(nil)

type AdminDirectory struct {
	mock.Mock
}

func (m *AdminDirectory) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *AdminDirectory) AdminIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}
