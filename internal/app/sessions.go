package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ozanyld/cinema-reservation-api/api"
	"github.com/ozanyld/cinema-reservation-api/internal/domain"
)

func (app *Application) GetSessions(w http.ResponseWriter, r *http.Request, params api.GetSessionsParams) {
	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := toSessionFilters(params)

	sessions, metadata, err := app.sessionRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.SessionListResponse{
		Sessions: toSessionSummaries(sessions),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSession(w http.ResponseWriter, r *http.Request, sessionId int) {
	if sessionId < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("session ID must be greater than zero"))
		return
	}

	detail, err := app.sessionRepo.GetDetail(r.Context(), sessionId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.SessionDetailResponse{
		Id:        detail.Session.ID,
		ShowTime:  detail.Session.ShowTime,
		BasePrice: detail.Session.BasePrice,
		Movie: api.MovieSummary{
			Id:          detail.Movie.ID,
			Title:       detail.Movie.Title,
			Description: detail.Movie.Description,
			Duration:    detail.Movie.Duration,
			ReleaseDate: detail.Movie.ReleaseDate,
			PosterUrl:   detail.Movie.PosterUrl,
		},
		Hall: api.Hall{
			Id:         detail.Session.Hall.ID,
			Name:       detail.Session.Hall.Name,
			Rows:       detail.Session.Hall.SeatRows,
			SeatsInRow: detail.Session.Hall.SeatsInRow,
			Capacity:   detail.Session.Hall.Capacity(),
		},
		TakenPlaces: toApiSeatPositions(detail.TakenPlaces),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSessionFilters(params api.GetSessionsParams) domain.SessionFilters {
	filters := domain.SessionFilters{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Movie != nil {
		filters.MovieID = *params.Movie
	}
	if params.Date != nil {
		// already validated against the YYYY-MM-DD layout
		date, err := time.Parse("2006-01-02", *params.Date)
		if err == nil {
			filters.Date = &date
		}
	}

	return filters
}

func toSessionSummaries(sessions []domain.SessionSummary) []api.SessionSummary {
	summaries := make([]api.SessionSummary, len(sessions))

	for i, session := range sessions {
		summaries[i] = api.SessionSummary{
			Id:               session.ID,
			ShowTime:         session.ShowTime,
			MovieTitle:       session.MovieTitle,
			HallName:         session.HallName,
			HallCapacity:     session.HallCapacity,
			BasePrice:        session.BasePrice,
			TicketsAvailable: session.TicketsAvailable,
		}
	}

	return summaries
}

func toApiSeatPositions(seats []domain.SeatPosition) []api.SeatPosition {
	positions := make([]api.SeatPosition, len(seats))

	for i, seat := range seats {
		positions[i] = api.SeatPosition{
			Row:  seat.Row,
			Seat: seat.Seat,
		}
	}

	return positions
}
