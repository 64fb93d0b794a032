package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a user's atomic purchase of one or more tickets. An order row
// never exists without its full ticket set: both are created inside one
// transaction by OrderRepository.Create and are immutable afterwards.
type Order struct {
	ID         int
	UserID     int
	CreatedAt  time.Time
	TotalPrice decimal.Decimal
	Tickets    []Ticket
}

// Ticket is a sold, immutable claim on one (session, row, seat) triple.
// For a fixed SessionID the (Row, Seat) pair is unique across all tickets
// ever created; the store enforces this with a unique constraint.
type Ticket struct {
	ID        int
	OrderID   int
	SessionID int
	Row       int
	Seat      int
}

type OrderSummary struct {
	ID          int
	CreatedAt   time.Time
	TotalPrice  decimal.Decimal
	TicketCount int
}

type OrderRepository interface {
	// Create persists the order and all of its tickets atomically. A unique
	// constraint violation on any ticket aborts the whole transaction and is
	// reported as a *SeatTakenError carrying the offending item's index.
	Create(ctx context.Context, order *Order) error
	GetAllByUserId(ctx context.Context, userID int, pagination Pagination) ([]OrderSummary, *Metadata, error)
	GetByIdAndUserId(ctx context.Context, orderID, userID int) (*Order, error)
}
