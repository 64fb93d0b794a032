package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/ozanyld/cinema-reservation-api/api"
	"github.com/ozanyld/cinema-reservation-api/internal/domain"
	appvalidator "github.com/ozanyld/cinema-reservation-api/internal/validator"
)

const (
	ErrInternalServer     = "The server encountered a problem and could not process your request"
	ErrNotFound           = "The requested resource not found"
	ErrUnauthorizedAccess = "You must be authenticated to access this resource"
	ErrFailedValidation   = "The request contains invalid fields"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorizedAccess)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.serverErrorResponse(w, r, err)
		return
	}

	fieldErrors := make([]api.ValidationError, len(validationErrors))
	for i, fieldErr := range validationErrors {
		fieldErrors[i] = api.ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		}
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: fieldErrors,
	}

	writeErr := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if writeErr != nil {
		app.logError(r, writeErr)
		w.WriteHeader(500)
	}
}

// orderRejectionResponse maps admission failures onto the structured rejection
// payload. A commit-time conflict and a pre-check hit produce the same shape.
func (app *Application) orderRejectionResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		seatTakenErr       *domain.SeatTakenError
		geometryErr        *domain.GeometryError
		sessionNotFoundErr *domain.SessionNotFoundError
	)

	resp := api.OrderRejectionResponse{
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	var status int

	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
		return

	case errors.As(err, &seatTakenErr):
		status = http.StatusConflict
		resp.Message = seatTakenErr.Error()
		resp.Reason = api.ReasonSeatTaken
		resp.TicketIndex = seatTakenErr.TicketIndex
		resp.SessionId = seatTakenErr.SessionID
		resp.Row = seatTakenErr.Row
		resp.Seat = seatTakenErr.Seat

	case errors.As(err, &geometryErr):
		status = http.StatusUnprocessableEntity
		resp.Message = geometryErr.Error()
		resp.Reason = api.ReasonSeatOutOfRange
		resp.TicketIndex = geometryErr.TicketIndex

	case errors.As(err, &sessionNotFoundErr):
		status = http.StatusUnprocessableEntity
		resp.Message = sessionNotFoundErr.Error()
		resp.Reason = api.ReasonSessionNotFound
		resp.TicketIndex = sessionNotFoundErr.TicketIndex
		resp.SessionId = sessionNotFoundErr.SessionID

	default:
		app.serverErrorResponse(w, r, err)
		return
	}

	writeErr := app.writeJSON(w, status, resp, nil)
	if writeErr != nil {
		app.logError(r, writeErr)
		w.WriteHeader(500)
	}
}
