package domain

import (
	"context"
	"errors"
	"time"
)

// Event modes (closed set).
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// Sentinel errors shared across event operations.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDate     = errors.New("invalid date format")
	ErrInvalidTime     = errors.New("invalid time format. Use HH:mm format")
	ErrInvalidMode     = errors.New("mode must be one of: online, offline, or hybrid")
	ErrEmptyCollection = errors.New("agenda and tags must be non-empty")
	ErrEmptySlug       = errors.New("title reduces to an empty slug")
	ErrSlugTaken       = errors.New("slug already in use")
	ErrSlugExhausted   = errors.New("slug allocation attempts exhausted")
)

// Event represents one listed developer event.
// Date and Time are always stored in canonical form (YYYY-MM-DD, 24-hour HH:MM).
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventUpdate holds the mutable fields for an event update.
// Nil pointers (and nil slices) leave the stored value unchanged.
type EventUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Overview    *string  `json:"overview"`
	Image       *string  `json:"image"`
	Venue       *string  `json:"venue"`
	Location    *string  `json:"location"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Mode        *string  `json:"mode"`
	Audience    *string  `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   *string  `json:"organizer"`
	Tags        []string `json:"tags"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context, p PaginationParams) ([]*Event, error)
	Count(ctx context.Context) (int, error)
	// ListSimilar returns events other than excludeID sharing at least one of tags, newest first, at most limit.
	ListSimilar(ctx context.Context, excludeID string, tags []string, limit int) ([]*Event, error)
	// SlugExists reports whether slug is assigned to an event other than excludeID. excludeID may be empty.
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Update(ctx context.Context, event *Event) error
}

// EventService defines event-facing operations: validated writes and the reads
// that depend on the writers' invariants.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	UpdateEvent(ctx context.Context, id string, upd *EventUpdate) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	// FindSimilarEvents returns events sharing at least one tag with the event
	// identified by slug. An unknown slug yields an empty slice, not an error.
	FindSimilarEvents(ctx context.Context, slug string, limit int) ([]*Event, error)
}
