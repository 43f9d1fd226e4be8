package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/delivery/http/helpers"
	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/domain"
)

// slugRegex matches a stored slug: lowercase alphanumeric runs joined by single hyphens.
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

const (
	maxSlugLength      = 200
	maxMultipartMemory = 8 << 20
	maxSimilarLimit    = 10
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
	Images  domain.ImageStore
}

func NewEventController(logger *slog.Logger, svc domain.EventService, images domain.ImageStore) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		Images:  images,
	}
}

// normalizeSlugParam trims and lowercases a slug path parameter and reports
// whether it is well-formed. Malformed slugs never reach the store.
func normalizeSlugParam(raw string) (string, bool) {
	slug := strings.ToLower(strings.TrimSpace(raw))
	if slug == "" || len(slug) > maxSlugLength || !slugRegex.MatchString(slug) {
		return "", false
	}
	return slug, true
}

// writeEventError translates service errors into the JSON error envelope.
func (c *EventController) writeEventError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidTime),
		errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, domain.ErrEmptyCollection),
		errors.Is(err, domain.ErrEmptySlug):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// ListEventsResponse is the data payload for GET /events.
type ListEventsResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEvents godoc
// @Summary List events
// @Description Returns all events, newest first, paginated.
// @Tags events
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	p := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), p)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// GetEventBySlug godoc
// @Summary Fetch a single event by slug
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	slug, ok := normalizeSlugParam(r.PathValue("slug"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest,
			"slug must contain only lowercase letters, numbers, and hyphens")
		return
	}
	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// GetSimilarEvents godoc
// @Summary List events similar to the given one
// @Description Returns events sharing at least one tag with the event identified by slug, newest first. An unknown slug yields an empty list.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Param limit query int false "Maximum results (default 3, max 10)"
// @Success 200 {object} helpers.APIResponse "data contains the similar events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/similar [get]
func (c *EventController) GetSimilarEvents(w http.ResponseWriter, r *http.Request) {
	slug, ok := normalizeSlugParam(r.PathValue("slug"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest,
			"slug must contain only lowercase letters, numbers, and hyphens")
		return
	}
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			limit = v
			if limit > maxSimilarLimit {
				limit = maxSimilarLimit
			}
		}
	}
	events, err := c.Service.FindSimilarEvents(r.Context(), slug, limit)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Accepts a multipart form with the event fields, a JSON-encoded agenda and tags, and an image file. The slug is derived from the title; date and time are normalized before the event is stored.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Event image"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "image file is required")
		return
	}
	defer file.Close()

	agenda, err := parseStringArrayField(r.FormValue("agenda"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "agenda must be a JSON array of strings")
		return
	}
	tags, err := parseStringArrayField(r.FormValue("tags"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "tags must be a JSON array of strings")
		return
	}

	imageURL, err := c.Images.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	event := &domain.Event{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Overview:    r.FormValue("overview"),
		Image:       imageURL,
		Venue:       r.FormValue("venue"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Mode:        r.FormValue("mode"),
		Audience:    r.FormValue("audience"),
		Agenda:      agenda,
		Organizer:   r.FormValue("organizer"),
		Tags:        tags,
	}

	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		// Drop the stored image so a rejected event leaves no file behind.
		if rmErr := c.Images.Remove(r.Context(), imageURL); rmErr != nil {
			c.Logger.WarnContext(r.Context(), "remove image after failed create", "url", imageURL, "err", rmErr)
		}
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Applies a partial update. A changed title re-derives the slug; a changed date or time is re-normalized.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Param event body domain.EventUpdate true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !uuidRegex.MatchString(id) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event id")
		return
	}
	var upd domain.EventUpdate
	if !helpers.DecodeAndValidate(w, r, &upd) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), id, &upd)
	if err != nil {
		c.writeEventError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// parseStringArrayField decodes a JSON array form field ("[\"ai\",\"cloud\"]").
// An empty field decodes to an empty slice; the writer rejects it downstream.
func parseStringArrayField(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}
