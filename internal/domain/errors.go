package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEmptyOrder     = errors.New("an order must contain at least one ticket")
)

// GeometryError reports a requested seat that falls outside the hall grid.
// TicketIndex is the position of the offending item in the request.
type GeometryError struct {
	TicketIndex int
	Field       string // "row" or "seat"
	Max         int
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s number must be in available range: (1, %d)", e.Field, e.Max)
}

type SessionNotFoundError struct {
	TicketIndex int
	SessionID   int
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("movie session %d does not exist", e.SessionID)
}

// SeatTakenError is returned both by the advisory pre-check and by the
// commit-time unique constraint violation. The two cases are deliberately
// indistinguishable to the caller.
type SeatTakenError struct {
	TicketIndex int
	SessionID   int
	Row         int
	Seat        int
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("the ticket for movie session %d, row %d, seat %d is already taken", e.SessionID, e.Row, e.Seat)
}
