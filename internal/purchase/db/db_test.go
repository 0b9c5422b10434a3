package db

import (
	"context"
	"testing"
	"time"

	catalogdb "ms-storefront/internal/catalog/db"
	"ms-storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	bunDB, err := catalogdb.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { bunDB.Close() })

	d := &DB{Bun: bunDB}
	require.NoError(t, Migrate(context.Background(), d))
	return d
}

func confirmation(orderID, sessionID, eventID string, qty int, total string, at time.Time) models.Confirmation {
	return models.Confirmation{
		SessionID:   sessionID,
		OrderID:     orderID,
		EventID:     eventID,
		EventTitle:  "Summer Jazz Festival",
		Quantity:    qty,
		Total:       decimal.RequireFromString(total),
		Currency:    "$",
		ConfirmedAt: at,
	}
}

func TestRecordPurchaseAggregatesPerDay(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	day1 := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 8, 2, 18, 30, 0, 0, time.UTC)

	require.NoError(t, d.RecordPurchase(ctx, confirmation("TKT-1", "s-1", "1", 2, "90", day1)))
	require.NoError(t, d.RecordPurchase(ctx, confirmation("TKT-2", "s-1", "1", 3, "135", day1.Add(time.Hour))))
	require.NoError(t, d.RecordPurchase(ctx, confirmation("TKT-3", "s-1", "1", 1, "45", day2)))

	counts, err := d.GetTicketCountsForEvent(ctx, "s-1", "1")
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, 2, counts[0].Orders)
	assert.Equal(t, 5, counts[0].Tickets)
	assert.Equal(t, 1, counts[1].Tickets)

	summary, err := d.Summarize(ctx, "s-1", "1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Orders)
	assert.Equal(t, 6, summary.Tickets)
	assert.True(t, decimal.NewFromInt(270).Equal(summary.Revenue))
}

func TestLedgerIsPartitionedBySession(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, d.RecordPurchase(ctx, confirmation("TKT-a", "s-a", "1", 2, "90", now)))
	require.NoError(t, d.RecordPurchase(ctx, confirmation("TKT-b", "s-b", "1", 1, "45", now)))

	summary, err := d.Summarize(ctx, "s-b", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Tickets)

	require.NoError(t, d.DeleteSession(ctx, "s-a"))
	summary, err = d.Summarize(ctx, "s-a", "1")
	require.NoError(t, err)
	assert.Zero(t, summary.Orders)
	assert.Empty(t, summary.Daily)
	assert.True(t, summary.Revenue.IsZero())
}

func TestDuplicateOrderIDIsRejected(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, d.RecordPurchase(ctx, confirmation("TKT-dup", "s-1", "1", 1, "45", now)))
	assert.Error(t, d.RecordPurchase(ctx, confirmation("TKT-dup", "s-1", "1", 1, "45", now)))

	summary, err := d.Summarize(ctx, "s-1", "1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Tickets, "failed insert must not bump the daily count")
}
