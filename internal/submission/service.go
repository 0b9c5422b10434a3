package submission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ms-storefront/internal/catalog"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"
	"ms-storefront/internal/utils"
)

const AnonymousOrganizer = "Anonymous User"

// EventAppender is the catalog mutation entry point used by submissions.
type EventAppender interface {
	Add(ctx context.Context, event models.Event) (models.Event, error)
}

// Publisher is satisfied by the kafka producers.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

type Service struct {
	Delay     time.Duration
	Publisher Publisher
	Topic     string
	Logger    *logger.Logger
}

// Submit validates draft, waits for the simulated save, then appends the event to the catalog.
// A draft that fails validation never reaches the catalog.
func (s *Service) Submit(ctx context.Context, events EventAppender, user *models.User, draft Draft) (models.Event, error) {
	v, err := draft.validate()
	if err != nil {
		return models.Event{}, err
	}

	if err := utils.Sleep(ctx, s.Delay); err != nil {
		return models.Event{}, err
	}

	created, err := events.Add(ctx, buildEvent(draft, v, user))
	if err != nil {
		return models.Event{}, fmt.Errorf("add submitted event: %w", err)
	}

	s.Logger.LogCatalog("SUBMITTED", created.ID, fmt.Sprintf("%q by %s", created.Title, created.Organizer))

	if s.Publisher != nil {
		if err := s.Publisher.Publish(ctx, s.Topic, created.ID, created); err != nil {
			// The catalog already holds the event
			s.Logger.Warn("SUBMISSION", fmt.Sprintf("Failed to publish submitted event %s: %v", created.ID, err))
		}
	}

	return created, nil
}

func buildEvent(d Draft, v validated, user *models.User) models.Event {
	organizer := AnonymousOrganizer
	if user != nil && user.Name != "" {
		organizer = user.Name
	}

	image := strings.TrimSpace(d.Image)
	if image == "" {
		image = catalog.DefaultImage(d.Category)
	}

	info := &models.TicketInfo{
		IsFree:           d.ticketType() == TicketFree,
		Currency:         "$",
		AvailableTickets: v.total,
	}
	if !info.IsFree {
		info.Price = v.price
	}
	if v.total != nil {
		info.TotalTickets = models.IntPtr(*v.total)
	}

	return models.Event{
		Title:       d.Title,
		Description: d.Description,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Location:    d.Location,
		Category:    d.Category,
		Image:       image,
		Organizer:   organizer,
		TicketInfo:  info,
	}
}
