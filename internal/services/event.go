package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sainikush/DevNexus-Central-Hub-for-Dev-Events/internal/domain"
)

// maxSlugAllocAttempts bounds how many times a write is retried after losing
// a slug race to a concurrent writer. The store's unique index on slug is the
// authoritative guard; the pre-insert probe only picks a candidate.
const maxSlugAllocAttempts = 3

// DefaultSimilarLimit is the number of recommendations returned when the
// caller does not ask for a specific limit.
const DefaultSimilarLimit = 3

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repository.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// validateEventFields trims all required string fields in place and checks the
// record shape: required fields non-empty, mode in the closed set, agenda and
// tags non-empty. It runs before any store call so a failure leaves no state.
func validateEventFields(e *domain.Event) error {
	required := []struct {
		name  string
		value *string
	}{
		{"title", &e.Title},
		{"description", &e.Description},
		{"overview", &e.Overview},
		{"image", &e.Image},
		{"venue", &e.Venue},
		{"location", &e.Location},
		{"date", &e.Date},
		{"time", &e.Time},
		{"audience", &e.Audience},
		{"organizer", &e.Organizer},
	}
	for _, f := range required {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, f.name)
		}
	}
	switch e.Mode {
	case domain.ModeOnline, domain.ModeOffline, domain.ModeHybrid:
	default:
		return domain.ErrInvalidMode
	}
	if len(e.Agenda) == 0 || len(e.Tags) == 0 {
		return domain.ErrEmptyCollection
	}
	return nil
}

// allocateSlug probes base, base-1, base-2, ... against the store until a
// candidate is free. excludeID (may be empty) is left out of the collision
// check so an event keeps its own slug across updates.
func (s *eventService) allocateSlug(ctx context.Context, base, excludeID string) (string, error) {
	if base == "" {
		return "", domain.ErrEmptySlug
	}
	candidate := base
	for n := 1; ; n++ {
		taken, err := s.eventRepo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateEventFields(event); err != nil {
		return err
	}

	date, err := domain.NormalizeDate(event.Date)
	if err != nil {
		return err
	}
	event.Date = date

	clock, err := domain.NormalizeTime(event.Time)
	if err != nil {
		return err
	}
	event.Time = clock

	base := domain.SlugifyTitle(event.Title)
	if base == "" {
		return domain.ErrEmptySlug
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	for attempt := 0; attempt < maxSlugAllocAttempts; attempt++ {
		slug, err := s.allocateSlug(ctx, base, "")
		if err != nil {
			return err
		}
		event.Slug = slug

		err = s.eventRepo.Create(ctx, event)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrSlugTaken) {
			return fmt.Errorf("create event: %w", err)
		}
		// Lost the slug to a concurrent writer between probe and insert;
		// re-run allocation against the updated store.
	}
	return domain.ErrSlugExhausted
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, upd *domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	titleChanged := false
	if upd.Title != nil && strings.TrimSpace(*upd.Title) != event.Title {
		event.Title = *upd.Title
		titleChanged = true
	}
	dateChanged := false
	if upd.Date != nil && strings.TrimSpace(*upd.Date) != event.Date {
		event.Date = *upd.Date
		dateChanged = true
	}
	timeChanged := false
	if upd.Time != nil && strings.TrimSpace(*upd.Time) != event.Time {
		event.Time = *upd.Time
		timeChanged = true
	}
	if upd.Description != nil {
		event.Description = *upd.Description
	}
	if upd.Overview != nil {
		event.Overview = *upd.Overview
	}
	if upd.Image != nil {
		event.Image = *upd.Image
	}
	if upd.Venue != nil {
		event.Venue = *upd.Venue
	}
	if upd.Location != nil {
		event.Location = *upd.Location
	}
	if upd.Mode != nil {
		event.Mode = *upd.Mode
	}
	if upd.Audience != nil {
		event.Audience = *upd.Audience
	}
	if upd.Organizer != nil {
		event.Organizer = *upd.Organizer
	}
	if upd.Agenda != nil {
		event.Agenda = upd.Agenda
	}
	if upd.Tags != nil {
		event.Tags = upd.Tags
	}

	if err := validateEventFields(event); err != nil {
		return nil, err
	}
	if dateChanged {
		date, err := domain.NormalizeDate(event.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if timeChanged {
		clock, err := domain.NormalizeTime(event.Time)
		if err != nil {
			return nil, err
		}
		event.Time = clock
	}

	base := event.Slug
	if titleChanged {
		base = domain.SlugifyTitle(event.Title)
		if base == "" {
			return nil, domain.ErrEmptySlug
		}
	}

	event.UpdatedAt = time.Now()

	for attempt := 0; attempt < maxSlugAllocAttempts; attempt++ {
		if titleChanged {
			slug, err := s.allocateSlug(ctx, base, event.ID)
			if err != nil {
				return nil, err
			}
			event.Slug = slug
		}

		err = s.eventRepo.Update(ctx, event)
		if err == nil {
			return event, nil
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		if !titleChanged || !errors.Is(err, domain.ErrSlugTaken) {
			return nil, fmt.Errorf("update event: %w", err)
		}
	}
	return nil, domain.ErrSlugExhausted
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	total, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) FindSimilarEvents(ctx context.Context, slug string, limit int) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		// A missing source event yields no recommendations, not an error.
		if errors.Is(err, domain.ErrNotFound) {
			return []*domain.Event{}, nil
		}
		return nil, fmt.Errorf("get event by slug: %w", err)
	}

	similar, err := s.eventRepo.ListSimilar(ctx, event.ID, event.Tags, limit)
	if err != nil {
		return nil, fmt.Errorf("list similar events: %w", err)
	}
	if similar == nil {
		similar = []*domain.Event{}
	}
	return similar, nil
}
