package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/domain"
)

type bookingService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService. emailService may be a noop-backed
// service; booking creation never fails because of mail delivery.
func NewBookingService(
	eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, eventID, rawEmail string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email := domain.NormalizeEmail(rawEmail)
	if !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.bookEvent(ctx, event, email)
}

func (s *bookingService) CreateBookingBySlug(ctx context.Context, slug, rawEmail string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email := domain.NormalizeEmail(rawEmail)
	if !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return s.bookEvent(ctx, event, email)
}

// bookEvent runs the duplicate check and insert for an already-validated
// normalized email against an existing event. The pre-check is only an
// optimization: the unique index on (event_id, email) decides races.
func (s *bookingService) bookEvent(ctx context.Context, event *domain.Event, email string) (*domain.Booking, error) {
	if _, err := s.bookingRepo.GetByEventAndEmail(ctx, event.ID, email); err == nil {
		return nil, domain.ErrDuplicateBooking
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	now := time.Now()
	booking := domain.NewBooking(event.ID, email, now, now)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrDuplicateBooking) {
			return nil, domain.ErrDuplicateBooking
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if s.emailService != nil {
		data := &domain.BookingConfirmationEmailData{
			Email:      email,
			EventTitle: event.Title,
			EventDate:  event.Date,
			EventTime:  event.Time,
			Venue:      event.Venue,
			Location:   event.Location,
			Mode:       event.Mode,
		}
		if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
			log.Printf("[BOOKING] confirmation email to %s failed: %v", email, err)
		}
	}
	return booking, nil
}

func (s *bookingService) CountBookings(ctx context.Context, slug string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get event by slug: %w", err)
	}
	count, err := s.bookingRepo.CountByEventID(ctx, event.ID)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return count, nil
}
