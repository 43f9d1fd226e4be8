package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/domain"
)

// fakeBookingRepo is an in-memory BookingRepository keyed by (event id, email).
type fakeBookingRepo struct {
	byKey       map[string]*domain.Booking
	nextID      int
	createCalls int
	createErr   error // if set, Create returns this error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byKey: make(map[string]*domain.Booking), nextID: 1}
}

func bookingKey(eventID, email string) string {
	return eventID + "|" + email
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	key := bookingKey(b.EventID, b.Email)
	if _, ok := f.byKey[key]; ok {
		return domain.ErrDuplicateBooking
	}
	b.ID = fmt.Sprintf("bk-%d", f.nextID)
	f.nextID++
	f.byKey[key] = b
	return nil
}

func (f *fakeBookingRepo) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	if b, ok := f.byKey[bookingKey(eventID, email)]; ok {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBookingRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.byKey {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	n := 0
	for _, b := range f.byKey {
		if b.EventID == eventID {
			n++
		}
	}
	return n, nil
}

// fakeEmailService records confirmation sends.
type fakeEmailService struct {
	sent    []*domain.BookingConfirmationEmailData
	sendErr error
}

func (f *fakeEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, data)
	return nil
}

func seedBookableEvent(repo *fakeEventRepo) *domain.Event {
	return repo.seed(&domain.Event{
		Title: "GopherCon", Slug: "gophercon",
		Date: "2026-03-14", Time: "14:30",
		Venue: "Main Hall", Location: "Berlin", Mode: domain.ModeOffline,
	})
}

func TestBookingService_CreateBookingBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("success sends confirmation with event details", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		event := seedBookableEvent(eventRepo)
		bookingRepo := newFakeBookingRepo()
		emails := &fakeEmailService{}
		svc := NewBookingService(eventRepo, bookingRepo, emails, time.Second)

		booking, err := svc.CreateBookingBySlug(ctx, "gophercon", "  Gopher@Example.COM ")
		require.NoError(t, err)
		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, event.ID, booking.EventID)
		assert.Equal(t, "gopher@example.com", booking.Email)

		require.Len(t, emails.sent, 1)
		assert.Equal(t, "gopher@example.com", emails.sent[0].Email)
		assert.Equal(t, "GopherCon", emails.sent[0].EventTitle)
		assert.Equal(t, "Berlin", emails.sent[0].Location)
	})

	t.Run("invalid email rejected before any store call", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		seedBookableEvent(eventRepo)
		bookingRepo := newFakeBookingRepo()
		svc := NewBookingService(eventRepo, bookingRepo, &fakeEmailService{}, time.Second)

		_, err := svc.CreateBookingBySlug(ctx, "gophercon", "not-an-email")
		require.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Zero(t, bookingRepo.createCalls)
	})

	t.Run("unknown event writes nothing", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		bookingRepo := newFakeBookingRepo()
		svc := NewBookingService(eventRepo, bookingRepo, &fakeEmailService{}, time.Second)

		_, err := svc.CreateBookingBySlug(ctx, "missing", "a@b.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Zero(t, bookingRepo.createCalls)
	})

	t.Run("duplicate detected across case and whitespace variants", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		seedBookableEvent(eventRepo)
		bookingRepo := newFakeBookingRepo()
		emails := &fakeEmailService{}
		svc := NewBookingService(eventRepo, bookingRepo, emails, time.Second)

		_, err := svc.CreateBookingBySlug(ctx, "gophercon", "A@b.com")
		require.NoError(t, err)

		_, err = svc.CreateBookingBySlug(ctx, "gophercon", " a@B.COM ")
		require.ErrorIs(t, err, domain.ErrDuplicateBooking)
		assert.Len(t, emails.sent, 1)
	})

	t.Run("same email may book different events", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		seedBookableEvent(eventRepo)
		eventRepo.seed(&domain.Event{Title: "RustConf", Slug: "rustconf"})
		bookingRepo := newFakeBookingRepo()
		svc := NewBookingService(eventRepo, bookingRepo, &fakeEmailService{}, time.Second)

		_, err := svc.CreateBookingBySlug(ctx, "gophercon", "a@b.com")
		require.NoError(t, err)
		_, err = svc.CreateBookingBySlug(ctx, "rustconf", "a@b.com")
		require.NoError(t, err)
	})

	t.Run("lost insert race surfaces duplicate", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		seedBookableEvent(eventRepo)
		bookingRepo := newFakeBookingRepo()
		// Pre-check sees no booking, but the insert hits the unique index.
		bookingRepo.createErr = domain.ErrDuplicateBooking
		svc := NewBookingService(eventRepo, bookingRepo, &fakeEmailService{}, time.Second)

		_, err := svc.CreateBookingBySlug(ctx, "gophercon", "a@b.com")
		require.ErrorIs(t, err, domain.ErrDuplicateBooking)
	})

	t.Run("mail failure does not fail the booking", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		seedBookableEvent(eventRepo)
		bookingRepo := newFakeBookingRepo()
		emails := &fakeEmailService{sendErr: errors.New("ses throttled")}
		svc := NewBookingService(eventRepo, bookingRepo, emails, time.Second)

		booking, err := svc.CreateBookingBySlug(ctx, "gophercon", "a@b.com")
		require.NoError(t, err)
		assert.NotEmpty(t, booking.ID)
	})
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("books by event id", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		event := seedBookableEvent(eventRepo)
		bookingRepo := newFakeBookingRepo()
		svc := NewBookingService(eventRepo, bookingRepo, &fakeEmailService{}, time.Second)

		booking, err := svc.CreateBooking(ctx, event.ID, "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, event.ID, booking.EventID)
	})

	t.Run("unknown event id", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		bookingRepo := newFakeBookingRepo()
		svc := NewBookingService(eventRepo, bookingRepo, &fakeEmailService{}, time.Second)

		_, err := svc.CreateBooking(ctx, "missing", "a@b.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid email checked before event lookup", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		bookingRepo := newFakeBookingRepo()
		svc := NewBookingService(eventRepo, bookingRepo, &fakeEmailService{}, time.Second)

		_, err := svc.CreateBooking(ctx, "missing", "nope@")
		require.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestBookingService_CountBookings(t *testing.T) {
	ctx := context.Background()

	eventRepo := newFakeEventRepo()
	event := seedBookableEvent(eventRepo)
	bookingRepo := newFakeBookingRepo()
	svc := NewBookingService(eventRepo, bookingRepo, &fakeEmailService{}, time.Second)

	count, err := svc.CountBookings(ctx, "gophercon")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for i := 0; i < 3; i++ {
		_, err := svc.CreateBooking(ctx, event.ID, fmt.Sprintf("dev%d@example.com", i))
		require.NoError(t, err)
	}

	count, err = svc.CountBookings(ctx, "gophercon")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = svc.CountBookings(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
