package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ozanyld/cinema-reservation-api/internal/domain"
)

type MockMovieRepo struct {
	mock.Mock
	domain.MovieRepository
}

func (m *MockMovieRepo) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	args := m.Called(ctx, filters)

	var movies []*domain.Movie
	if args.Get(0) != nil {
		movies = args.Get(0).([]*domain.Movie)
	}

	var metadata *domain.Metadata
	if args.Get(1) != nil {
		metadata = args.Get(1).(*domain.Metadata)
	}

	return movies, metadata, args.Error(2)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	args := m.Called(ctx, id)

	var movie *domain.Movie
	if args.Get(0) != nil {
		movie = args.Get(0).(*domain.Movie)
	}

	return movie, args.Error(1)
}
