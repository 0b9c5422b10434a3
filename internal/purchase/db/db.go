package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ms-storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// Summary aggregates the ledger of one event in one session.
type Summary struct {
	EventID string          `json:"eventId"`
	Orders  int             `json:"orders"`
	Tickets int             `json:"tickets"`
	Revenue decimal.Decimal `json:"revenue"`
	Daily   []TicketCount   `json:"daily"`
}

// ---------------- PURCHASES ----------------

// RecordPurchase → store a confirmation and bump the daily count, in one transaction
func (d *DB) RecordPurchase(ctx context.Context, c models.Confirmation) error {
	row := PurchaseRow{
		OrderID:       c.OrderID,
		SessionID:     c.SessionID,
		EventID:       c.EventID,
		EventTitle:    c.EventTitle,
		Quantity:      c.Quantity,
		Total:         c.Total.String(),
		Currency:      c.Currency,
		Free:          c.Free,
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		ConfirmedAt:   c.ConfirmedAt.UTC(),
	}

	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&row).Exec(ctx); err != nil {
			return fmt.Errorf("insert purchase %s: %w", c.OrderID, err)
		}
		return incrementTicketCount(ctx, tx, c.SessionID, c.EventID, c.Quantity, c.ConfirmedAt)
	})
}

// ListPurchases → confirmations of one event in one session, oldest first
func (d *DB) ListPurchases(ctx context.Context, sessionID, eventID string) ([]PurchaseRow, error) {
	var rows []PurchaseRow
	err := d.Bun.NewSelect().
		Model(&rows).
		Where("session_id = ?", sessionID).
		Where("event_id = ?", eventID).
		Order("confirmed_at ASC").
		Scan(ctx)
	return rows, err
}

// ---------------- TICKET COUNTS ----------------

// incrementTicketCount adds one order of quantity tickets to the day of at
func incrementTicketCount(ctx context.Context, tx bun.Tx, sessionID, eventID string, quantity int, at time.Time) error {
	date := at.UTC().Truncate(24 * time.Hour)

	var existing TicketCount
	err := tx.NewSelect().
		Model(&existing).
		Where("session_id = ?", sessionID).
		Where("event_id = ?", eventID).
		Where("date = ?", date).
		Limit(1).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		count := TicketCount{
			SessionID: sessionID,
			EventID:   eventID,
			Date:      date,
			Orders:    1,
			Tickets:   quantity,
		}
		_, err = tx.NewInsert().Model(&count).Exec(ctx)
		return err
	}
	if err != nil {
		return err
	}

	existing.Orders++
	existing.Tickets += quantity
	_, err = tx.NewUpdate().
		Model(&existing).
		Column("orders", "tickets").
		WherePK().
		Exec(ctx)
	return err
}

// GetTicketCountsForEvent → daily counts of one event in one session
func (d *DB) GetTicketCountsForEvent(ctx context.Context, sessionID, eventID string) ([]TicketCount, error) {
	var counts []TicketCount
	err := d.Bun.NewSelect().
		Model(&counts).
		Where("session_id = ?", sessionID).
		Where("event_id = ?", eventID).
		Order("date ASC").
		Scan(ctx)
	return counts, err
}

// Summarize → totals plus daily counts of one event
func (d *DB) Summarize(ctx context.Context, sessionID, eventID string) (Summary, error) {
	summary := Summary{EventID: eventID, Revenue: decimal.Zero, Daily: []TicketCount{}}

	rows, err := d.ListPurchases(ctx, sessionID, eventID)
	if err != nil {
		return summary, fmt.Errorf("list purchases: %w", err)
	}
	for _, r := range rows {
		summary.Orders++
		summary.Tickets += r.Quantity
		if total, err := decimal.NewFromString(r.Total); err == nil {
			summary.Revenue = summary.Revenue.Add(total)
		}
	}

	counts, err := d.GetTicketCountsForEvent(ctx, sessionID, eventID)
	if err != nil {
		return summary, fmt.Errorf("ticket counts: %w", err)
	}
	if counts != nil {
		summary.Daily = counts
	}
	return summary, nil
}

// DeleteSession → drop a session's ledger
func (d *DB) DeleteSession(ctx context.Context, sessionID string) error {
	return d.Bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*PurchaseRow)(nil)).Where("session_id = ?", sessionID).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*TicketCount)(nil)).Where("session_id = ?", sessionID).Exec(ctx)
		return err
	})
}
