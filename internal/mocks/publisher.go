package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ozanyld/cinema-reservation-api/internal/events"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderConfirmed(ctx context.Context, event events.OrderConfirmedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
