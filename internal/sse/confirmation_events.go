package sse

import (
	"context"
	"sync"

	"ms-storefront/internal/models"
)

const clientBuffer = 10

// ConfirmationEmitter manages SSE subscribers of confirmed purchases, per session and event.
type ConfirmationEmitter struct {
	clients map[string][]chan models.Confirmation
	mu      sync.RWMutex
}

func NewConfirmationEmitter() *ConfirmationEmitter {
	return &ConfirmationEmitter{
		clients: make(map[string][]chan models.Confirmation),
	}
}

func clientKey(sessionID, eventID string) string {
	return sessionID + "/" + eventID
}

// Subscribe adds a client to the event's confirmations. The channel is closed when ctx is done.
func (e *ConfirmationEmitter) Subscribe(ctx context.Context, sessionID, eventID string) <-chan models.Confirmation {
	clientChan := make(chan models.Confirmation, clientBuffer)
	key := clientKey(sessionID, eventID)

	e.mu.Lock()
	e.clients[key] = append(e.clients[key], clientChan)
	e.mu.Unlock()

	// Remove client when context is done
	go func() {
		<-ctx.Done()
		e.removeClient(key, clientChan)
	}()

	return clientChan
}

// Emit broadcasts c to every subscriber of its event. Slow clients miss messages instead of blocking.
func (e *ConfirmationEmitter) Emit(c models.Confirmation) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, clientChan := range e.clients[clientKey(c.SessionID, c.EventID)] {
		select {
		case clientChan <- c:
		default:
			// Channel buffer full, skip this client
		}
	}
}

// Sink adapts Emit to the purchase confirmation sink signature.
func (e *ConfirmationEmitter) Sink(_ context.Context, c models.Confirmation) error {
	e.Emit(c)
	return nil
}

func (e *ConfirmationEmitter) removeClient(key string, clientChan chan models.Confirmation) {
	e.mu.Lock()
	defer e.mu.Unlock()

	clients := e.clients[key]
	for i, ch := range clients {
		if ch == clientChan {
			e.clients[key] = append(clients[:i], clients[i+1:]...)
			close(clientChan)
			break
		}
	}

	// Clean up map entry if no more clients
	if len(e.clients[key]) == 0 {
		delete(e.clients, key)
	}
}

// ClientCount returns the number of subscribers of one event in one session.
func (e *ConfirmationEmitter) ClientCount(sessionID, eventID string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.clients[clientKey(sessionID, eventID)])
}
