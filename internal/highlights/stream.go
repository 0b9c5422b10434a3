package highlights

import (
	"context"
	"fmt"
	"time"

	"ms-storefront/internal/logger"
)

// Sender writes one named SSE event.
type Sender interface {
	Send(event string, data interface{}) error
}

// Stream sends the current highlight, then every change, until ctx is done.
// An empty rotator sends a single "empty" event.
func Stream(ctx context.Context, r *Rotator, interval time.Duration, out Sender, log *logger.Logger) error {
	current, ok := r.Current()
	if !ok {
		return out.Send("empty", map[string]string{"message": "No upcoming events"})
	}

	updates := r.Watch(ctx)
	go r.Run(ctx, interval)

	if err := out.Send("highlight", current); err != nil {
		return fmt.Errorf("send highlight: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("SSE", "Highlight stream closed")
			return nil
		case h, open := <-updates:
			if !open {
				return nil
			}
			if err := out.Send("highlight", h); err != nil {
				return fmt.Errorf("send highlight: %w", err)
			}
		}
	}
}
