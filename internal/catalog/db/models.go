package db

import (
	"ms-storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// EventRow is the storage shape of models.Event. RowID keeps catalog (insertion) order.
type EventRow struct {
	bun.BaseModel `bun:"table:events"`

	RowID            int64  `bun:"row_id,pk,autoincrement"`
	SessionID        string `bun:"session_id,notnull"`
	EventID          string `bun:"event_id,notnull"`
	Title            string `bun:"title,notnull"`
	Description      string `bun:"description"`
	StartDate        string `bun:"start_date"`
	EndDate          string `bun:"end_date"`
	StartTime        string `bun:"start_time"`
	EndTime          string `bun:"end_time"`
	Location         string `bun:"location"`
	Category         string `bun:"category"`
	Image            string `bun:"image"`
	Organizer        string `bun:"organizer"`
	HasTicketInfo    bool   `bun:"has_ticket_info"`
	IsFree           bool   `bun:"is_free"`
	Price            string `bun:"price"`
	Currency         string `bun:"currency"`
	AvailableTickets *int   `bun:"available_tickets"`
	TotalTickets     *int   `bun:"total_tickets"`
}

func toRow(sessionID string, e models.Event) EventRow {
	row := EventRow{
		SessionID:   sessionID,
		EventID:     e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Location:    e.Location,
		Category:    e.Category,
		Image:       e.Image,
		Organizer:   e.Organizer,
	}
	if t := e.TicketInfo; t != nil {
		row.HasTicketInfo = true
		row.IsFree = t.IsFree
		row.Price = t.Price.String()
		row.Currency = t.Currency
		row.AvailableTickets = t.AvailableTickets
		row.TotalTickets = t.TotalTickets
	}
	return row
}

func (r EventRow) toModel() models.Event {
	e := models.Event{
		ID:          r.EventID,
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Location:    r.Location,
		Category:    r.Category,
		Image:       r.Image,
		Organizer:   r.Organizer,
	}
	if r.HasTicketInfo {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			price = decimal.Zero
		}
		e.TicketInfo = &models.TicketInfo{
			IsFree:           r.IsFree,
			Price:            price,
			Currency:         r.Currency,
			AvailableTickets: r.AvailableTickets,
			TotalTickets:     r.TotalTickets,
		}
	}
	return e
}
