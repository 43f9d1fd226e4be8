package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/delivery/http/helpers"
	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/domain"
)

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *BookingController) writeBookingError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEmail):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrDuplicateBooking):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// CreateBookingBySlugRequest is the request body for POST /events/{slug}/bookings.
type CreateBookingBySlugRequest struct {
	Email string `json:"email"`
}

// Validate implements helpers.Validator.
func (r *CreateBookingBySlugRequest) Validate() []string {
	if strings.TrimSpace(r.Email) == "" {
		return []string{"email is required"}
	}
	return nil
}

// CreateBookingBySlug godoc
// @Summary Book a spot at an event
// @Description Creates a booking for the given email against the event identified by slug. One booking per email per event.
// @Tags bookings
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param body body controllers.CreateBookingBySlugRequest true "Booking email"
// @Success 201 {object} helpers.APIResponse "data contains the created booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/bookings [post]
func (c *BookingController) CreateBookingBySlug(w http.ResponseWriter, r *http.Request) {
	slug, ok := normalizeSlugParam(r.PathValue("slug"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest,
			"slug must contain only lowercase letters, numbers, and hyphens")
		return
	}
	var req CreateBookingBySlugRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBookingBySlug(r.Context(), slug, req.Email)
	if err != nil {
		c.writeBookingError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	EventID string `json:"event_id"`
	Email   string `json:"email"`
}

// Validate implements helpers.Validator.
func (r *CreateBookingRequest) Validate() []string {
	var errs []string
	if r.EventID == "" {
		errs = append(errs, "event_id is required")
	} else if !uuidRegex.MatchString(r.EventID) {
		errs = append(errs, "event_id must be a UUID")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// CreateBooking godoc
// @Summary Book a spot at an event by event ID
// @Tags bookings
// @Accept json
// @Produce json
// @Param body body controllers.CreateBookingRequest true "Event ID and booking email"
// @Success 201 {object} helpers.APIResponse "data contains the created booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBooking(r.Context(), req.EventID, req.Email)
	if err != nil {
		c.writeBookingError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// BookingCountResponse is the data payload for GET /events/{slug}/bookings/count.
type BookingCountResponse struct {
	Count int `json:"count"`
}

// CountBookings godoc
// @Summary Booking count for an event
// @Tags bookings
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains the booking count"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/bookings/count [get]
func (c *BookingController) CountBookings(w http.ResponseWriter, r *http.Request) {
	slug, ok := normalizeSlugParam(r.PathValue("slug"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest,
			"slug must contain only lowercase letters, numbers, and hyphens")
		return
	}
	count, err := c.Service.CountBookings(r.Context(), slug)
	if err != nil {
		c.writeBookingError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, BookingCountResponse{Count: count})
}
