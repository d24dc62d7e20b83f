package mocks

import (
	"context"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var _ ports.SpamClassifier = (*SpamClassifier)(nil)

type SpamClassifier struct {
	mock.Mock
}

func (m *SpamClassifier) IsSpam(ctx context.Context, userID int64, details order.Details) bool {
	return m.Called(ctx, userID, details).Bool(0)
}
