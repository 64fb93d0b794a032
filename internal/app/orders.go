package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ozanyld/cinema-reservation-api/api"
	"github.com/ozanyld/cinema-reservation-api/internal/domain"
	"github.com/ozanyld/cinema-reservation-api/internal/events"
)

// CreateOrderHandler admits an order in two stages. First every requested
// ticket is checked against hall geometry and the currently visible seat map,
// so that most doomed requests fail fast with a precise reason. The check is
// advisory only: between it and the commit another order may claim the same
// seat. The unique constraint on tickets is the real arbiter, and a conflict
// at commit time surfaces as the same SeatTakenError the pre-check produces.
func (app *Application) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CreateOrderRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	order, err := app.admitOrder(r.Context(), userId, input.Tickets)
	if err != nil {
		app.orderRejectionResponse(w, r, err)
		return
	}

	app.background(func() {
		app.notifyOrderConfirmed(order, app.sessionGetUserEmail(r))
	})

	resp := api.OrderResponse{
		Id:         order.ID,
		CreatedAt:  order.CreatedAt,
		TotalPrice: order.TotalPrice,
		Tickets:    toApiTickets(order.Tickets),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// admitOrder validates the requested tickets in request order and, if every
// item passes, persists the order atomically. Validation stops at the first
// failing item so the caller always learns about the earliest problem.
func (app *Application) admitOrder(ctx context.Context, userId int, requests []api.TicketRequest) (*domain.Order, error) {
	if len(requests) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	sessions := make(map[int]*domain.MovieSession)
	takenSeats := make(map[int]map[domain.SeatPosition]bool)

	total := decimal.Zero
	tickets := make([]domain.Ticket, 0, len(requests))

	for i, req := range requests {
		session, ok := sessions[req.SessionId]
		if !ok {
			var err error

			session, err = app.sessionRepo.GetWithHall(ctx, req.SessionId)
			if err != nil {
				if errors.Is(err, domain.ErrRecordNotFound) {
					return nil, &domain.SessionNotFoundError{TicketIndex: i, SessionID: req.SessionId}
				}
				return nil, err
			}

			sessions[req.SessionId] = session
		}

		if gerr := session.Hall.ValidateSeat(req.Row, req.Seat); gerr != nil {
			gerr.TicketIndex = i
			return nil, gerr
		}

		taken, ok := takenSeats[req.SessionId]
		if !ok {
			positions, err := app.sessionRepo.GetTakenSeats(ctx, req.SessionId)
			if err != nil {
				return nil, err
			}

			taken = make(map[domain.SeatPosition]bool, len(positions))
			for _, pos := range positions {
				taken[pos] = true
			}

			takenSeats[req.SessionId] = taken
		}

		seat := domain.SeatPosition{Row: req.Row, Seat: req.Seat}
		if taken[seat] {
			return nil, &domain.SeatTakenError{
				TicketIndex: i,
				SessionID:   req.SessionId,
				Row:         req.Row,
				Seat:        req.Seat,
			}
		}

		// claim the seat within this batch too, so duplicate items in a
		// single request are rejected the same way
		taken[seat] = true

		total = total.Add(session.BasePrice)
		tickets = append(tickets, domain.Ticket{
			SessionID: req.SessionId,
			Row:       req.Row,
			Seat:      req.Seat,
		})
	}

	order := &domain.Order{
		UserID:     userId,
		TotalPrice: total,
		Tickets:    tickets,
	}

	err := app.orderRepo.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (app *Application) notifyOrderConfirmed(order *domain.Order, email string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	event := events.OrderConfirmedEvent{
		EventID:     uuid.NewString(),
		OrderID:     order.ID,
		UserID:      order.UserID,
		Tickets:     toEventTickets(order.Tickets),
		TotalPrice:  order.TotalPrice.String(),
		ConfirmedAt: order.CreatedAt,
	}

	err := app.publisher.PublishOrderConfirmed(ctx, event)
	if err != nil {
		app.logger.Error("failed to publish order confirmation event", "error", err, "order_id", order.ID)
	}

	if email == "" {
		return
	}

	data := map[string]any{
		"orderID":    order.ID,
		"tickets":    order.Tickets,
		"totalPrice": order.TotalPrice.StringFixed(2),
	}

	err = app.mailer.Send(email, "order_confirmation.tmpl", data)
	if err != nil {
		app.logger.Error("failed to send order confirmation email", "error", err, "order_id", order.ID)
	}
}

func (app *Application) GetOrdersOfUserHandler(w http.ResponseWriter, r *http.Request, params api.GetOrdersParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	pagination := toPagination(params)

	orders, metadata, err := app.orderRepo.GetAllByUserId(r.Context(), userId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.UserOrdersResponse{
		Orders: toApiOrderSummaries(orders),
	}
	if m := toApiMetadata(metadata); m != nil {
		resp.Metadata = *m
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserOrderById(w http.ResponseWriter, r *http.Request, orderId int) {
	if orderId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("order ID must be greater than zero"))
		return
	}

	userId := app.contextGetUserId(r)

	order, err := app.orderRepo.GetByIdAndUserId(r.Context(), orderId, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.OrderResponse{
		Id:         order.ID,
		CreatedAt:  order.CreatedAt,
		TotalPrice: order.TotalPrice,
		Tickets:    toApiTickets(order.Tickets),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toPagination(params api.GetOrdersParams) domain.Pagination {
	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if params.Page != nil {
		pagination.Page = *params.Page
	}
	if params.PageSize != nil {
		pagination.PageSize = *params.PageSize
	}

	return pagination
}

func toApiTickets(tickets []domain.Ticket) []api.Ticket {
	apiTickets := make([]api.Ticket, len(tickets))

	for i, ticket := range tickets {
		apiTickets[i] = api.Ticket{
			Id:        ticket.ID,
			SessionId: ticket.SessionID,
			Row:       ticket.Row,
			Seat:      ticket.Seat,
		}
	}

	return apiTickets
}

func toApiOrderSummaries(orders []domain.OrderSummary) []api.OrderSummary {
	summaries := make([]api.OrderSummary, len(orders))

	for i, order := range orders {
		summaries[i] = api.OrderSummary{
			Id:          order.ID,
			CreatedAt:   order.CreatedAt,
			TotalPrice:  order.TotalPrice,
			TicketCount: order.TicketCount,
		}
	}

	return summaries
}

func toEventTickets(tickets []domain.Ticket) []events.TicketInfo {
	infos := make([]events.TicketInfo, len(tickets))

	for i, ticket := range tickets {
		infos[i] = events.TicketInfo{
			SessionID: ticket.SessionID,
			Row:       ticket.Row,
			Seat:      ticket.Seat,
		}
	}

	return infos
}
