// Package api contains the request and response types of the HTTP API.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rejection reasons returned when an order cannot be placed.
const (
	ReasonSessionNotFound = "SESSION_NOT_FOUND"
	ReasonSeatOutOfRange  = "SEAT_OUT_OF_RANGE"
	ReasonSeatTaken       = "SEAT_TAKEN"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

// OrderRejectionResponse reports why a ticket batch was refused. TicketIndex
// points at the first offending item in request order.
type OrderRejectionResponse struct {
	Message     string    `json:"message"`
	Reason      string    `json:"reason"`
	TicketIndex int       `json:"ticketIndex"`
	SessionId   int       `json:"sessionId,omitempty"`
	Row         int       `json:"row,omitempty"`
	Seat        int       `json:"seat,omitempty"`
	RequestId   string    `json:"requestId,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type GetMoviesParams struct {
	Page     *int    `validate:"omitempty,min=1"`
	PageSize *int    `validate:"omitempty,min=1,max=100"`
	Sort     *string `validate:"omitempty,oneof=id title release_date -id -title -release_date"`
	Term     *string `validate:"omitempty,max=100"`
	Genres   []int   `validate:"omitempty,dive,min=1"`
	Actors   []int   `validate:"omitempty,dive,min=1"`
}

type MovieSummary struct {
	Id          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	ReleaseDate time.Time `json:"releaseDate"`
	PosterUrl   string    `json:"posterUrl"`
}

type MovieListResponse struct {
	Movies   []MovieSummary `json:"movies"`
	Metadata *Metadata      `json:"metadata,omitempty"`
}

type Genre struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type Actor struct {
	Id        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type MovieResponse struct {
	Id          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	ReleaseDate time.Time `json:"releaseDate"`
	PosterUrl   string    `json:"posterUrl"`
	Genres      []Genre   `json:"genres"`
	Actors      []Actor   `json:"actors"`
}

type GetSessionsParams struct {
	Page     *int    `validate:"omitempty,min=1"`
	PageSize *int    `validate:"omitempty,min=1,max=100"`
	Date     *string `validate:"omitempty,datetime=2006-01-02"`
	Movie    *int    `validate:"omitempty,min=1"`
}

type SessionSummary struct {
	Id               int             `json:"id"`
	ShowTime         time.Time       `json:"showTime"`
	MovieTitle       string          `json:"movieTitle"`
	HallName         string          `json:"hallName"`
	HallCapacity     int             `json:"hallCapacity"`
	BasePrice        decimal.Decimal `json:"basePrice"`
	TicketsAvailable int             `json:"ticketsAvailable"`
}

type SessionListResponse struct {
	Sessions []SessionSummary `json:"sessions"`
	Metadata *Metadata        `json:"metadata,omitempty"`
}

type Hall struct {
	Id         int    `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seatsInRow"`
	Capacity   int    `json:"capacity"`
}

type SeatPosition struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type SessionDetailResponse struct {
	Id          int             `json:"id"`
	ShowTime    time.Time       `json:"showTime"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	Movie       MovieSummary    `json:"movie"`
	Hall        Hall            `json:"hall"`
	TakenPlaces []SeatPosition  `json:"takenPlaces"`
}

type TicketRequest struct {
	SessionId int `json:"sessionId" validate:"min=1"`
	Row       int `json:"row"`
	Seat      int `json:"seat"`
}

type CreateOrderRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"required,min=1,max=50,dive"`
}

type Ticket struct {
	Id        int `json:"id"`
	SessionId int `json:"sessionId"`
	Row       int `json:"row"`
	Seat      int `json:"seat"`
}

type OrderResponse struct {
	Id         int             `json:"id"`
	CreatedAt  time.Time       `json:"createdAt"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Tickets    []Ticket        `json:"tickets"`
}

type GetOrdersParams struct {
	Page     *int `validate:"omitempty,min=1"`
	PageSize *int `validate:"omitempty,min=1,max=100"`
}

type OrderSummary struct {
	Id          int             `json:"id"`
	CreatedAt   time.Time       `json:"createdAt"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	TicketCount int             `json:"ticketCount"`
}

type UserOrdersResponse struct {
	Orders   []OrderSummary `json:"orders"`
	Metadata Metadata       `json:"metadata"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}
