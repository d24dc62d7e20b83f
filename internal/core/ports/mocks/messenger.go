package mocks

import (
	"context"

	"workshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var _ ports.Messenger = (*Messenger)(nil)

type Messenger struct {
	mock.Mock
}

func (m *Messenger) Send(ctx context.Context, msg ports.OutgoingMessage) (ports.MessageRef, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(ports.MessageRef), args.Error(1)
}

func (m *Messenger) Edit(ctx context.Context, ref ports.MessageRef, text string, keyboard ports.Keyboard) error {
	return m.Called(ctx, ref, text, keyboard).Error(0)
}
