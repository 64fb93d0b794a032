package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MovieSession is a scheduled showing of a movie in a specific hall.
type MovieSession struct {
	ID        int
	MovieID   int
	ShowTime  time.Time
	BasePrice decimal.Decimal
	Hall      CinemaHall
}

// SessionSummary is a session list row annotated with the availability
// projection: hall capacity minus the number of committed tickets.
type SessionSummary struct {
	ID               int
	ShowTime         time.Time
	MovieTitle       string
	HallName         string
	HallCapacity     int
	BasePrice        decimal.Decimal
	TicketsAvailable int
}

type SessionDetail struct {
	Session     MovieSession
	Movie       Movie
	TakenPlaces []SeatPosition
}

type SeatPosition struct {
	Row  int
	Seat int
}

type SessionFilters struct {
	Page     int
	PageSize int
	Date     *time.Time
	MovieID  int
}

func (f SessionFilters) Limit() int {
	return f.PageSize
}

func (f SessionFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type SessionRepository interface {
	GetAll(ctx context.Context, filters SessionFilters) ([]SessionSummary, *Metadata, error)
	// GetWithHall resolves a session together with its hall geometry.
	GetWithHall(ctx context.Context, id int) (*MovieSession, error)
	GetDetail(ctx context.Context, id int) (*SessionDetail, error)
	// GetTakenSeats returns the committed (row, seat) pairs of a session.
	GetTakenSeats(ctx context.Context, sessionID int) ([]SeatPosition, error)
	// CountTickets reports the number of committed tickets of a session.
	CountTickets(ctx context.Context, sessionID int) (int, error)
}
