package highlights

import (
	"context"
	"sync"
	"time"

	"ms-storefront/internal/catalog"
	"ms-storefront/internal/models"
)

// Highlight is the event currently shown by a Rotator.
type Highlight struct {
	Index int          `json:"index"`
	Total int          `json:"total"`
	Event models.Event `json:"event"`
	Date  string       `json:"date"`
	Time  string       `json:"time"`
}

// Rotator cycles through a fixed list of upcoming events.
type Rotator struct {
	mu        sync.Mutex
	events    []models.Event
	index     int
	listeners []chan Highlight
}

func NewRotator(events []models.Event) *Rotator {
	own := make([]models.Event, len(events))
	copy(own, events)
	return &Rotator{events: own}
}

func (r *Rotator) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Current returns false when there is nothing to show.
func (r *Rotator) Current() (Highlight, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentLocked()
}

func (r *Rotator) currentLocked() (Highlight, bool) {
	if len(r.events) == 0 {
		return Highlight{}, false
	}
	e := r.events[r.index]
	return Highlight{
		Index: r.index,
		Total: len(r.events),
		Event: e,
		Date:  catalog.CardDate(e.StartDate, e.EndDate),
		Time:  catalog.TimeRange(e.StartTime, e.EndTime),
	}, true
}

// Next advances one event, wrapping from the last to the first.
func (r *Rotator) Next() (Highlight, bool) {
	return r.move(1)
}

// Previous steps back one event, wrapping from the first to the last.
func (r *Rotator) Previous() (Highlight, bool) {
	return r.move(-1)
}

func (r *Rotator) move(step int) (Highlight, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.events)
	if n == 0 {
		return Highlight{}, false
	}
	r.index = ((r.index+step)%n + n) % n

	h, _ := r.currentLocked()
	for _, ch := range r.listeners {
		// Keep only the latest highlight for slow listeners
		select {
		case <-ch:
		default:
		}
		ch <- h
	}
	return h, true
}

// Watch returns a channel receiving every change of the current highlight.
// The channel is closed when ctx is done.
func (r *Rotator) Watch(ctx context.Context) <-chan Highlight {
	ch := make(chan Highlight, 1)

	r.mu.Lock()
	r.listeners = append(r.listeners, ch)
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, l := range r.listeners {
			if l == ch {
				r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
				close(ch)
				break
			}
		}
	}()

	return ch
}

// Run advances the rotation every interval until ctx is done.
// With zero or one event no timer is started.
func (r *Rotator) Run(ctx context.Context, interval time.Duration) {
	if r.Len() <= 1 || interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Next()
		}
	}
}
