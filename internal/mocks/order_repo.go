package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ozanyld/cinema-reservation-api/internal/domain"
)

type MockOrderRepo struct {
	mock.Mock
	domain.OrderRepository
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepo) GetAllByUserId(ctx context.Context, userID int, pagination domain.Pagination) ([]domain.OrderSummary, *domain.Metadata, error) {
	args := m.Called(ctx, userID, pagination)

	var orders []domain.OrderSummary
	if args.Get(0) != nil {
		orders = args.Get(0).([]domain.OrderSummary)
	}

	var metadata *domain.Metadata
	if args.Get(1) != nil {
		metadata = args.Get(1).(*domain.Metadata)
	}

	return orders, metadata, args.Error(2)
}

func (m *MockOrderRepo) GetByIdAndUserId(ctx context.Context, orderID, userID int) (*domain.Order, error) {
	args := m.Called(ctx, orderID, userID)

	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}

	return order, args.Error(1)
}
