package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ms-storefront/internal/catalog"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/metrics"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Ledger is the per-session purchase history dropped together with the session.
type Ledger interface {
	DeleteSession(ctx context.Context, sessionID string) error
}

// Store keeps the live sessions and expires idle ones.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	events catalog.Store
	ledger Ledger
	ttl    time.Duration
	logger *logger.Logger
	now    func() time.Time
}

func NewStore(events catalog.Store, ledger Ledger, ttl time.Duration, log *logger.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		events:   events,
		ledger:   ledger,
		ttl:      ttl,
		logger:   log,
		now:      time.Now,
	}
}

// Create starts a session with a freshly seeded catalog.
func (s *Store) Create(ctx context.Context) (*Session, error) {
	id := uuid.NewString()
	events := catalog.New(s.events, id)
	if err := events.Seed(ctx); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	sess := newSession(id, events, s.now())

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	metrics.SessionOpened()
	s.logger.LogSession("CREATED", id, "seeded catalog")
	return sess, nil
}

// Get returns a live session and marks it as used.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.touch(s.now())
	return sess, nil
}

// Exists reports whether id names a live session. Unlike Get it does not touch the session.
func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// Delete drops a session with its catalog copy and purchase history.
// A running settlement is waited for so that it cannot write to the ledger afterwards.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	metrics.SessionClosed()
	if f := sess.Flow(); f != nil {
		if err := f.Wait(ctx); err != nil {
			return fmt.Errorf("wait for settlement of %s: %w", id, err)
		}
	}
	if err := sess.Catalog.Drop(ctx); err != nil {
		return fmt.Errorf("drop catalog of %s: %w", id, err)
	}
	if s.ledger != nil {
		if err := s.ledger.DeleteSession(ctx, id); err != nil {
			return fmt.Errorf("drop ledger of %s: %w", id, err)
		}
	}
	s.logger.LogSession("DELETED", id, "catalog and ledger dropped")
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Cleanup deletes every session idle for longer than the TTL and returns how many went.
func (s *Store) Cleanup(ctx context.Context) int {
	now := s.now()

	s.mu.RLock()
	var expired []string
	for id, sess := range s.sessions {
		if sess.expired(now, s.ttl) {
			expired = append(expired, id)
		}
	}
	s.mu.RUnlock()

	removed := 0
	for _, id := range expired {
		if err := s.Delete(ctx, id); err != nil {
			if !errors.Is(err, ErrSessionNotFound) {
				s.logger.Error("SESSION", fmt.Sprintf("Failed to expire session %s: %v", id, err))
			}
			continue
		}
		removed++
	}
	return removed
}

// RunJanitor runs Cleanup every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Cleanup(ctx); n > 0 {
				s.logger.Info("SESSION", fmt.Sprintf("Expired %d idle sessions", n))
			}
		}
	}
}
