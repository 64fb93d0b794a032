// Package events defines the messages published to the broker after an order
// commits, for downstream consumers (notifications, analytics).
package events

import (
	"context"
	"time"
)

const OrderConfirmedQueue = "order.confirmed"

type TicketInfo struct {
	SessionID int `json:"session_id"`
	Row       int `json:"row"`
	Seat      int `json:"seat"`
}

type OrderConfirmedEvent struct {
	EventID     string       `json:"event_id"`
	OrderID     int          `json:"order_id"`
	UserID      int          `json:"user_id"`
	Tickets     []TicketInfo `json:"tickets"`
	TotalPrice  string       `json:"total_price"`
	ConfirmedAt time.Time    `json:"confirmed_at"`
}

type Publisher interface {
	PublishOrderConfirmed(ctx context.Context, event OrderConfirmedEvent) error
}

// NoopPublisher is used when no broker URL is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderConfirmed(ctx context.Context, event OrderConfirmedEvent) error {
	return nil
}
