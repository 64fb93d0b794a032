package domain

import (
	"context"
	"strings"
	"time"
)

type Movie struct {
	ID          int
	Title       string
	Description string
	Duration    int
	ReleaseDate time.Time
	PosterUrl   string
	Genres      []Genre
	Actors      []Actor
}

type Genre struct {
	ID   int
	Name string
}

type Actor struct {
	ID        int
	FirstName string
	LastName  string
}

type MovieFilters struct {
	Page     int
	PageSize int
	Term     string
	Sort     string
	GenreIDs []int
	ActorIDs []int
}

func (f MovieFilters) SortColumn() string {
	return strings.TrimPrefix(f.Sort, "-")
}

func (f MovieFilters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return "DESC"
	}

	return "ASC"
}

func (f MovieFilters) Limit() int {
	return f.PageSize
}

func (f MovieFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
}
