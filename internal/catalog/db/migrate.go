package db

import (
	"context"
	"fmt"
)

// Migrate creates the events table and its session index.
func Migrate(ctx context.Context, d *DB) error {
	if _, err := d.Bun.NewCreateTable().Model((*EventRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}

	_, err := d.Bun.NewCreateIndex().
		Model((*EventRow)(nil)).
		Index("events_session_idx").
		IfNotExists().
		Column("session_id", "event_id").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create events index: %w", err)
	}
	return nil
}
