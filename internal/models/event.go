package models

import (
	"github.com/shopspring/decimal"
)

// Event is one catalog record. Dates are ISO calendar dates ("2025-08-15"); times are display strings.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
	StartTime   string      `json:"startTime"`
	EndTime     string      `json:"endTime"`
	Location    string      `json:"location"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
	Organizer   string      `json:"organizer"`
	TicketInfo  *TicketInfo `json:"ticketInfo,omitempty"`
}

// TicketInfo describes admission. Nil AvailableTickets/TotalTickets mean unlimited.
// AvailableTickets <= TotalTickets is assumed, never enforced.
type TicketInfo struct {
	IsFree           bool            `json:"isFree"`
	Price            decimal.Decimal `json:"price"`
	Currency         string          `json:"currency,omitempty"`
	AvailableTickets *int            `json:"availableTickets,omitempty"`
	TotalTickets     *int            `json:"totalTickets,omitempty"`
}

// SoldOut reports an explicit zero inventory. Unlimited events are never sold out.
func (t *TicketInfo) SoldOut() bool {
	return t != nil && t.AvailableTickets != nil && *t.AvailableTickets == 0
}

// UnitPrice is zero for free events.
func (t *TicketInfo) UnitPrice() decimal.Decimal {
	if t == nil || t.IsFree {
		return decimal.Zero
	}
	return t.Price
}

func IntPtr(v int) *int {
	return &v
}
