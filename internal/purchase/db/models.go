package db

import (
	"time"

	"github.com/uptrace/bun"
)

// PurchaseRow records one settled purchase. Inventory is not touched.
type PurchaseRow struct {
	bun.BaseModel `bun:"table:purchases"`

	OrderID       string    `bun:"order_id,pk"`
	SessionID     string    `bun:"session_id,notnull"`
	EventID       string    `bun:"event_id,notnull"`
	EventTitle    string    `bun:"event_title"`
	Quantity      int       `bun:"quantity,notnull"`
	Total         string    `bun:"total,notnull"`
	Currency      string    `bun:"currency"`
	Free          bool      `bun:"free"`
	CustomerName  string    `bun:"customer_name"`
	CustomerEmail string    `bun:"customer_email"`
	ConfirmedAt   time.Time `bun:"confirmed_at,notnull"`
}

// TicketCount is the per-day ticket tally of one event in one session.
type TicketCount struct {
	bun.BaseModel `bun:"table:ticket_counts"`

	ID        int64     `bun:"id,pk,autoincrement" json:"-"`
	SessionID string    `bun:"session_id,notnull" json:"-"`
	EventID   string    `bun:"event_id,notnull" json:"eventId"`
	Date      time.Time `bun:"date,notnull" json:"date"`
	Orders    int       `bun:"orders,notnull" json:"orders"`
	Tickets   int       `bun:"tickets,notnull" json:"tickets"`
}
