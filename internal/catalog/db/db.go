package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ms-storefront/internal/models"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"
)

var ErrNotFound = errors.New("event not found")

type DB struct {
	Bun *bun.DB
}

// OpenMemory opens the process-lifetime SQLite database shared by the catalog and the purchase ledger.
// A single connection keeps every query on the same in-memory database.
func OpenMemory() (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory sqlite: %w", err)
	}
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// ---------------- EVENTS ----------------

// CreateEvent → append an event to a session's catalog
func (d *DB) CreateEvent(ctx context.Context, sessionID string, event models.Event) error {
	row := toRow(sessionID, event)
	_, err := d.Bun.NewInsert().Model(&row).Exec(ctx)
	return err
}

// CreateEvents → bulk append, preserving slice order
func (d *DB) CreateEvents(ctx context.Context, sessionID string, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]EventRow, len(events))
	for i, e := range events {
		rows[i] = toRow(sessionID, e)
	}
	_, err := d.Bun.NewInsert().Model(&rows).Exec(ctx)
	return err
}

// ListEvents → every event of a session in catalog order
func (d *DB) ListEvents(ctx context.Context, sessionID string) ([]models.Event, error) {
	var rows []EventRow
	err := d.Bun.NewSelect().
		Model(&rows).
		Where("session_id = ?", sessionID).
		Order("row_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, len(rows))
	for i, r := range rows {
		events[i] = r.toModel()
	}
	return events, nil
}

// GetEvent → first event of a session with the given id
func (d *DB) GetEvent(ctx context.Context, sessionID, eventID string) (*models.Event, error) {
	var row EventRow
	err := d.Bun.NewSelect().
		Model(&row).
		Where("session_id = ?", sessionID).
		Where("event_id = ?", eventID).
		Order("row_id ASC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	event := row.toModel()
	return &event, nil
}

// CountEvents → catalog size of a session
func (d *DB) CountEvents(ctx context.Context, sessionID string) (int, error) {
	return d.Bun.NewSelect().
		Model((*EventRow)(nil)).
		Where("session_id = ?", sessionID).
		Count(ctx)
}

// DeleteSession → drop a session's catalog copy
func (d *DB) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := d.Bun.NewDelete().
		Model((*EventRow)(nil)).
		Where("session_id = ?", sessionID).
		Exec(ctx)
	return err
}
