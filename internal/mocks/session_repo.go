package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ozanyld/cinema-reservation-api/internal/domain"
)

type MockSessionRepo struct {
	mock.Mock
	domain.SessionRepository
}

func (m *MockSessionRepo) GetAll(ctx context.Context, filters domain.SessionFilters) ([]domain.SessionSummary, *domain.Metadata, error) {
	args := m.Called(ctx, filters)

	var sessions []domain.SessionSummary
	if args.Get(0) != nil {
		sessions = args.Get(0).([]domain.SessionSummary)
	}

	var metadata *domain.Metadata
	if args.Get(1) != nil {
		metadata = args.Get(1).(*domain.Metadata)
	}

	return sessions, metadata, args.Error(2)
}

func (m *MockSessionRepo) GetWithHall(ctx context.Context, id int) (*domain.MovieSession, error) {
	args := m.Called(ctx, id)

	var session *domain.MovieSession
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.MovieSession)
	}

	return session, args.Error(1)
}

func (m *MockSessionRepo) GetDetail(ctx context.Context, id int) (*domain.SessionDetail, error) {
	args := m.Called(ctx, id)

	var detail *domain.SessionDetail
	if args.Get(0) != nil {
		detail = args.Get(0).(*domain.SessionDetail)
	}

	return detail, args.Error(1)
}

func (m *MockSessionRepo) GetTakenSeats(ctx context.Context, sessionID int) ([]domain.SeatPosition, error) {
	args := m.Called(ctx, sessionID)

	var seats []domain.SeatPosition
	if args.Get(0) != nil {
		seats = args.Get(0).([]domain.SeatPosition)
	}

	return seats, args.Error(1)
}

func (m *MockSessionRepo) CountTickets(ctx context.Context, sessionID int) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}
