package session

import (
	"sync"
	"time"

	"ms-storefront/internal/catalog"
	"ms-storefront/internal/highlights"
	"ms-storefront/internal/models"
	"ms-storefront/internal/navigation"
	"ms-storefront/internal/purchase"
)

// Session is the state of one browser: its own catalog copy, the navigation
// controller with the current user, the open purchase flow and RSVPs.
// Sessions never share mutable state.
type Session struct {
	ID        string
	CreatedAt time.Time
	Catalog   *catalog.Catalog

	mu         sync.Mutex
	lastSeen   time.Time
	nav        *navigation.Controller
	flow       *purchase.Flow
	rsvps      map[string]bool
	highlights *highlights.Rotator
}

func newSession(id string, events *catalog.Catalog, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		Catalog:   events,
		lastSeen:  now,
		nav:       navigation.NewController(),
		rsvps:     make(map[string]bool),
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}

func (s *Session) Navigate(page navigation.Page, eventID string) (navigation.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Navigate(page, eventID)
}

func (s *Session) LoggedIn(user models.User) navigation.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.LoggedIn(user)
}

func (s *Session) LoggedOut() navigation.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.LoggedOut()
}

func (s *Session) Navigation() navigation.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.State()
}

// User returns nil when nobody is logged in.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.User()
}

// Flow returns the open purchase flow, or nil.
func (s *Session) Flow() *purchase.Flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow
}

// OpenFlow replaces the open purchase flow. A flow that is still settling cannot be replaced.
func (s *Session) OpenFlow(open func() (*purchase.Flow, error)) (*purchase.Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flow != nil {
		if s.flow.View().Processing {
			return nil, purchase.ErrProcessing
		}
		_ = s.flow.Close()
	}

	f, err := open()
	if err != nil {
		return nil, err
	}
	s.flow = f
	return f, nil
}

// CloseFlow closes and forgets the open flow.
func (s *Session) CloseFlow() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flow == nil {
		return purchase.ErrClosed
	}
	if err := s.flow.Close(); err != nil {
		return err
	}
	s.flow = nil
	return nil
}

// ToggleRSVP flips the "going" mark of an event and returns the new value.
func (s *Session) ToggleRSVP(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	going := !s.rsvps[eventID]
	if going {
		s.rsvps[eventID] = true
	} else {
		delete(s.rsvps, eventID)
	}
	return going
}

func (s *Session) Going(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rsvps[eventID]
}

// SetHighlights installs the rotator of the open highlight view.
func (s *Session) SetHighlights(r *highlights.Rotator) {
	s.mu.Lock()
	s.highlights = r
	s.mu.Unlock()
}

// ClearHighlights removes r if it is still the installed rotator.
func (s *Session) ClearHighlights(r *highlights.Rotator) {
	s.mu.Lock()
	if s.highlights == r {
		s.highlights = nil
	}
	s.mu.Unlock()
}

// Highlights returns nil when no highlight view is open.
func (s *Session) Highlights() *highlights.Rotator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlights
}
