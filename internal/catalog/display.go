package catalog

import (
	"fmt"

	"ms-storefront/internal/models"
	"ms-storefront/internal/utils"
)

// Display is the precomputed text of an event card and the detail header.
type Display struct {
	CardDate     string `json:"cardDate"`
	CompactDate  string `json:"compactDate"`
	LongDate     string `json:"longDate"`
	TimeRange    string `json:"timeRange"`
	Price        string `json:"price,omitempty"`
	Availability string `json:"availability,omitempty"`
}

func DisplayFor(e models.Event) Display {
	return Display{
		CardDate:     CardDate(e.StartDate, e.EndDate),
		CompactDate:  CompactDate(e.StartDate, e.EndDate),
		LongDate:     LongDateRange(e.StartDate, e.EndDate),
		TimeRange:    TimeRange(e.StartTime, e.EndTime),
		Price:        PriceLabel(e.TicketInfo),
		Availability: AvailabilityLabel(e.TicketInfo),
	}
}

// CardDate renders "Aug 15" or "Aug 15 - Aug 17".
func CardDate(startDate, endDate string) string {
	if startDate == endDate {
		return formatDate(startDate, "Jan 2")
	}
	return formatDate(startDate, "Jan 2") + " - " + formatDate(endDate, "Jan 2")
}

// CompactDate renders "Aug 18, 2025" or "Aug 15 - Aug 17, 2025".
func CompactDate(startDate, endDate string) string {
	if startDate == endDate {
		return formatDate(startDate, "Jan 2, 2006")
	}
	return formatDate(startDate, "Jan 2") + " - " + formatDate(endDate, "Jan 2, 2006")
}

// LongDateRange renders the detail page header date.
func LongDateRange(startDate, endDate string) string {
	if startDate == endDate {
		return formatDate(startDate, "Monday, January 2, 2006")
	}
	return formatDate(startDate, "Monday, January 2") + " - " + formatDate(endDate, "Monday, January 2, 2006")
}

func TimeRange(startTime, endTime string) string {
	if startTime == endTime {
		return startTime
	}
	return startTime + " - " + endTime
}

// PriceLabel is "Free" or the currency symbol (default "$") followed by the price.
func PriceLabel(t *models.TicketInfo) string {
	if t == nil {
		return ""
	}
	if t.IsFree {
		return "Free"
	}
	currency := t.Currency
	if currency == "" {
		currency = "$"
	}
	return currency + t.Price.String()
}

// AvailabilityLabel is shown for paid events with a known inventory only.
func AvailabilityLabel(t *models.TicketInfo) string {
	if t == nil || t.IsFree || t.AvailableTickets == nil {
		return ""
	}
	if *t.AvailableTickets > 0 {
		return fmt.Sprintf("%d left", *t.AvailableTickets)
	}
	return "Sold out"
}

// formatDate falls back to the raw value when it is not an ISO date.
func formatDate(value, layout string) string {
	t, err := utils.ParseCalendarDate(value)
	if err != nil {
		return value
	}
	return t.Format(layout)
}
