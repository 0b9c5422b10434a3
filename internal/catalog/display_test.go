package catalog

import (
	"testing"

	"ms-storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDateLabels(t *testing.T) {
	assert.Equal(t, "Aug 18", CardDate("2025-08-18", "2025-08-18"))
	assert.Equal(t, "Aug 15 - Aug 17", CardDate("2025-08-15", "2025-08-17"))

	assert.Equal(t, "Aug 18, 2025", CompactDate("2025-08-18", "2025-08-18"))
	assert.Equal(t, "Aug 15 - Aug 17, 2025", CompactDate("2025-08-15", "2025-08-17"))

	assert.Equal(t, "Monday, August 18, 2025", LongDateRange("2025-08-18", "2025-08-18"))
	assert.Equal(t, "Friday, August 15 - Sunday, August 17, 2025", LongDateRange("2025-08-15", "2025-08-17"))

	assert.Equal(t, "TBD - Aug 17", CardDate("TBD", "2025-08-17"))
}

func TestTimeRange(t *testing.T) {
	assert.Equal(t, "7:00 PM - 11:00 PM", TimeRange("7:00 PM", "11:00 PM"))
	assert.Equal(t, "All day", TimeRange("All day", "All day"))
}

func TestPriceAndAvailabilityLabels(t *testing.T) {
	paidInfo := &models.TicketInfo{Price: decimal.NewFromInt(45), AvailableTickets: models.IntPtr(250)}
	assert.Equal(t, "$45", PriceLabel(paidInfo))
	assert.Equal(t, "250 left", AvailabilityLabel(paidInfo))

	sold := &models.TicketInfo{Price: decimal.NewFromInt(35), Currency: "$", AvailableTickets: models.IntPtr(0)}
	assert.Equal(t, "Sold out", AvailabilityLabel(sold))

	freeInfo := &models.TicketInfo{IsFree: true, AvailableTickets: models.IntPtr(40)}
	assert.Equal(t, "Free", PriceLabel(freeInfo))
	assert.Empty(t, AvailabilityLabel(freeInfo))

	unlimited := &models.TicketInfo{Price: decimal.RequireFromString("12.5"), Currency: "€"}
	assert.Equal(t, "€12.5", PriceLabel(unlimited))
	assert.Empty(t, AvailabilityLabel(unlimited))

	assert.Empty(t, PriceLabel(nil))
}

func TestDisplayFor(t *testing.T) {
	d := DisplayFor(SeedEvents()[4])
	assert.Equal(t, "Aug 25", d.CardDate)
	assert.Equal(t, "8:00 PM - 12:00 AM", d.TimeRange)
	assert.Equal(t, "$35", d.Price)
	assert.Equal(t, "Sold out", d.Availability)
}
