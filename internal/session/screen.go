package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ms-storefront/internal/catalog"
	"ms-storefront/internal/models"
	"ms-storefront/internal/navigation"
	"ms-storefront/internal/outreach"
	"ms-storefront/internal/purchase"
	"ms-storefront/internal/submission"
)

// ErrRSVPUnavailable is returned for events that sell tickets instead.
var ErrRSVPUnavailable = errors.New("event uses tickets, not RSVP")

const (
	RSVPLabel      = "I'm Going"
	RSVPGoingLabel = "✓ You're Going!"
)

// Card is an event with its precomputed display text.
type Card struct {
	models.Event
	Display catalog.Display `json:"display"`
}

func cardsOf(events []models.Event) []Card {
	out := make([]Card, len(events))
	for i, e := range events {
		out[i] = Card{Event: e, Display: catalog.DisplayFor(e)}
	}
	return out
}

type HomeScreen struct {
	Featured   []Card            `json:"featured"`
	Upcoming   []Card            `json:"upcoming"`
	Categories []models.Category `json:"categories"`
}

type EventsScreen struct {
	Filter     catalog.Filter    `json:"filter"`
	Events     []Card            `json:"events"`
	Total      int               `json:"total"`
	Categories []models.Category `json:"categories"`
}

type DetailScreen struct {
	Found           bool             `json:"found"`
	Event           *Card            `json:"event,omitempty"`
	FullDescription string           `json:"fullDescription,omitempty"`
	Action          *purchase.Action `json:"action,omitempty"`
	RSVP            *RSVP            `json:"rsvp,omitempty"`
	Share           *outreach.Links  `json:"share,omitempty"`
	Message         string           `json:"message,omitempty"`
	// Recovery is where the not-found state leads back to.
	Recovery *navigation.Page `json:"recovery,omitempty"`
}

// RSVP is offered for events without ticket information.
type RSVP struct {
	Going bool   `json:"going"`
	Label string `json:"label"`
}

type SubmitScreen struct {
	Categories  []models.Category       `json:"categories"`
	TicketTypes []submission.TicketType `json:"ticketTypes"`
	Organizer   string                  `json:"organizer"`
}

type StaticScreen struct {
	Title string `json:"title"`
}

// Screen is what the current page shows. Exactly one of the page fields is set.
type Screen struct {
	Navigation navigation.State `json:"navigation"`
	Home       *HomeScreen      `json:"home,omitempty"`
	Events     *EventsScreen    `json:"events,omitempty"`
	Detail     *DetailScreen    `json:"detail,omitempty"`
	Submit     *SubmitScreen    `json:"submit,omitempty"`
	Static     *StaticScreen    `json:"static,omitempty"`
}

// Resolver renders sessions into screens.
type Resolver struct {
	Origin string
	Clock  func() time.Time
}

func (r *Resolver) Now() time.Time {
	if r.Clock == nil {
		return time.Now()
	}
	return r.Clock()
}

// Screen resolves the session's current page. filter only applies to the events page.
func (r *Resolver) Screen(ctx context.Context, s *Session, filter catalog.Filter) (Screen, error) {
	state := s.Navigation()
	screen := Screen{Navigation: state}

	var err error
	switch state.Page {
	case navigation.Home:
		screen.Home, err = r.home(ctx, s)
	case navigation.Events:
		screen.Events, err = r.events(ctx, s, filter)
	case navigation.EventDetail:
		screen.Detail, err = r.Detail(ctx, s, state.SelectedEventID)
	case navigation.Submit:
		screen.Submit = submitScreen(state.User)
	case navigation.About:
		screen.Static = &StaticScreen{Title: "About"}
	case navigation.Login:
		screen.Static = &StaticScreen{Title: "Login"}
	case navigation.Signup:
		screen.Static = &StaticScreen{Title: "Sign Up"}
	default:
		return screen, fmt.Errorf("%w: %d", navigation.ErrUnknownPage, state.Page)
	}
	return screen, err
}

func (r *Resolver) home(ctx context.Context, s *Session) (*HomeScreen, error) {
	featured, err := s.Catalog.Featured(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.Catalog.Upcoming(ctx, r.Now(), catalog.UpcomingLimit)
	if err != nil {
		return nil, err
	}
	return &HomeScreen{
		Featured:   cardsOf(featured),
		Upcoming:   cardsOf(upcoming),
		Categories: models.Categories(),
	}, nil
}

func (r *Resolver) events(ctx context.Context, s *Session, filter catalog.Filter) (*EventsScreen, error) {
	all, err := s.Catalog.All(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Sort == "" {
		filter.Sort = catalog.DefaultSort
	}
	listed := catalog.Apply(all, filter)
	return &EventsScreen{
		Filter:     filter,
		Events:     cardsOf(listed),
		Total:      len(listed),
		Categories: models.Categories(),
	}, nil
}

// Detail renders one event. An unknown id yields the not-found state, not an error.
func (r *Resolver) Detail(ctx context.Context, s *Session, eventID string) (*DetailScreen, error) {
	event, err := s.Catalog.Get(ctx, eventID)
	if errors.Is(err, catalog.ErrEventNotFound) {
		recovery := navigation.Events
		return &DetailScreen{
			Message:  "The event you're looking for doesn't exist.",
			Recovery: &recovery,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	card := Card{Event: *event, Display: catalog.DisplayFor(*event)}
	links := outreach.ShareLinks(r.Origin, *event)
	d := &DetailScreen{
		Found:           true,
		Event:           &card,
		FullDescription: FullDescription(event.Description),
		Action:          purchase.ActionFor(*event),
		Share:           &links,
	}
	if event.TicketInfo == nil {
		d.RSVP = rsvpFor(s.Going(event.ID))
	}
	return d, nil
}

func rsvpFor(going bool) *RSVP {
	if going {
		return &RSVP{Going: true, Label: RSVPGoingLabel}
	}
	return &RSVP{Label: RSVPLabel}
}

// ToggleRSVP flips the mark for an event without ticket information.
func ToggleRSVP(ctx context.Context, s *Session, eventID string) (*RSVP, error) {
	event, err := s.Catalog.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.TicketInfo != nil {
		return nil, ErrRSVPUnavailable
	}
	return rsvpFor(s.ToggleRSVP(eventID)), nil
}

func submitScreen(user *models.User) *SubmitScreen {
	organizer := submission.AnonymousOrganizer
	if user != nil && user.Name != "" {
		organizer = user.Name
	}
	return &SubmitScreen{
		Categories:  models.Categories(),
		TicketTypes: []submission.TicketType{submission.TicketFree, submission.TicketPaid},
		Organizer:   organizer,
	}
}

// FullDescription expands the short catalog description for the detail page.
func FullDescription(description string) string {
	return description + `

This event promises to be an unforgettable experience for all attendees. Whether you're a longtime enthusiast or new to this type of event, you'll find something to enjoy.

Join us for an amazing time with fellow community members. We'll have activities, refreshments, and plenty of opportunities to connect with like-minded people.

Don't miss this opportunity to be part of something special in your community. Mark your calendar and invite your friends!

For more information or if you have any questions about the event, please don't hesitate to reach out to the organizers.`
}
