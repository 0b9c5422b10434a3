package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"ms-storefront/internal/catalog/db"
	"ms-storefront/internal/models"
	"ms-storefront/internal/utils"
)

var ErrEventNotFound = errors.New("event not found")

const (
	FeaturedLimit = 8
	UpcomingLimit = 5
)

// Store is the event storage the catalog runs on.
type Store interface {
	CreateEvent(ctx context.Context, sessionID string, event models.Event) error
	CreateEvents(ctx context.Context, sessionID string, events []models.Event) error
	ListEvents(ctx context.Context, sessionID string) ([]models.Event, error)
	GetEvent(ctx context.Context, sessionID, eventID string) (*models.Event, error)
	CountEvents(ctx context.Context, sessionID string) (int, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// Catalog is one session's ordered copy of the events.
type Catalog struct {
	store     Store
	sessionID string
}

func New(store Store, sessionID string) *Catalog {
	return &Catalog{store: store, sessionID: sessionID}
}

// Seed loads the start-up events into an empty catalog.
func (c *Catalog) Seed(ctx context.Context) error {
	if err := c.store.CreateEvents(ctx, c.sessionID, SeedEvents()); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

func (c *Catalog) All(ctx context.Context) ([]models.Event, error) {
	events, err := c.store.ListEvents(ctx, c.sessionID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := c.store.GetEvent(ctx, c.sessionID, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	return event, nil
}

func (c *Catalog) Len(ctx context.Context) (int, error) {
	return c.store.CountEvents(ctx, c.sessionID)
}

// Featured is the home page grid: the first events in catalog order.
func (c *Catalog) Featured(ctx context.Context) ([]models.Event, error) {
	events, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) > FeaturedLimit {
		events = events[:FeaturedLimit]
	}
	return events, nil
}

// Upcoming returns events starting today or later, soonest first, at most limit of them.
func (c *Catalog) Upcoming(ctx context.Context, now time.Time, limit int) ([]models.Event, error) {
	events, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	return UpcomingFrom(events, now, limit), nil
}

// UpcomingFrom is the pure part of Upcoming. Events with unparseable start dates are skipped.
func UpcomingFrom(events []models.Event, now time.Time, limit int) []models.Event {
	today := utils.Today(now)

	type dated struct {
		event models.Event
		start time.Time
	}
	var candidates []dated
	for _, e := range events {
		start, err := utils.ParseCalendarDate(e.StartDate)
		if err != nil || start.Before(today) {
			continue
		}
		candidates = append(candidates, dated{event: e, start: start})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].start.Before(candidates[j].start)
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]models.Event, len(candidates))
	for i, d := range candidates {
		out[i] = d.event
	}
	return out
}

// Add appends event with id = current size + 1. The id is not collision-safe.
func (c *Catalog) Add(ctx context.Context, event models.Event) (models.Event, error) {
	count, err := c.store.CountEvents(ctx, c.sessionID)
	if err != nil {
		return models.Event{}, fmt.Errorf("count events: %w", err)
	}
	event.ID = strconv.Itoa(count + 1)

	if err := c.store.CreateEvent(ctx, c.sessionID, event); err != nil {
		return models.Event{}, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// Drop removes the session's catalog copy.
func (c *Catalog) Drop(ctx context.Context) error {
	return c.store.DeleteSession(ctx, c.sessionID)
}
