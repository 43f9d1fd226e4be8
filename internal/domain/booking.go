package domain

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
)

// Sentinel errors for booking operations.
var (
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrDuplicateBooking = errors.New("email already booked for this event")
)

// emailRegex matches a simple email shape: no whitespace or extra @, at least one dot in the domain.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Booking represents one reservation of an email address against an event.
// EventID is a non-owning reference checked by the booking writer at creation time.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking returns a new Booking. ID is set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidEmail reports whether email (already normalized) has a plausible shape.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*Booking, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// BookingService defines the booking validator/writer operations.
type BookingService interface {
	// CreateBooking books rawEmail onto the event with the given ID.
	CreateBooking(ctx context.Context, eventID, rawEmail string) (*Booking, error)
	// CreateBookingBySlug books rawEmail onto the event identified by slug.
	CreateBookingBySlug(ctx context.Context, slug, rawEmail string) (*Booking, error)
	// CountBookings returns the number of bookings for the event identified by slug.
	CountBookings(ctx context.Context, slug string) (int, error)
}
