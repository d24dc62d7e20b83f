package mocks

import (
	"context"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var _ ports.TransitionPublisher = (*TransitionPublisher)(nil)

type TransitionPublisher struct {
	mock.Mock
}

func (m *TransitionPublisher) Publish(ctx context.Context, evt order.TransitionEvent) {
	m.Called(ctx, evt)
}
