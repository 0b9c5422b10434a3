package db_test

import (
	"context"
	"testing"

	"ms-storefront/internal/catalog/db"
	"ms-storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *db.DB {
	bunDB, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { bunDB.Close() })

	store := &db.DB{Bun: bunDB}
	require.NoError(t, db.Migrate(context.Background(), store))
	return store
}

func sampleEvent(id, title string) models.Event {
	return models.Event{
		ID:        id,
		Title:     title,
		StartDate: "2025-08-15",
		EndDate:   "2025-08-17",
		Location:  "Downtown Plaza",
		Category:  "Music",
		TicketInfo: &models.TicketInfo{
			Price:            decimal.RequireFromString("45.5"),
			Currency:         "$",
			AvailableTickets: models.IntPtr(0),
			TotalTickets:     models.IntPtr(200),
		},
	}
}

func TestCreateAndListEventsKeepsOrder(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.CreateEvents(ctx, "s1", []models.Event{
		sampleEvent("1", "Zeta"),
		sampleEvent("2", "Alpha"),
	}))
	require.NoError(t, store.CreateEvent(ctx, "s1", sampleEvent("3", "Mid")))

	events, err := store.ListEvents(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{events[0].ID, events[1].ID, events[2].ID})

	ti := events[0].TicketInfo
	require.NotNil(t, ti)
	assert.True(t, ti.Price.Equal(decimal.RequireFromString("45.5")))
	assert.Equal(t, 0, *ti.AvailableTickets)
	assert.Equal(t, 200, *ti.TotalTickets)
}

func TestSessionsArePartitioned(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.CreateEvent(ctx, "s1", sampleEvent("1", "Only in s1")))

	count, err := store.CountEvents(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = store.GetEvent(ctx, "s2", "1")
	assert.ErrorIs(t, err, db.ErrNotFound)

	require.NoError(t, store.DeleteSession(ctx, "s1"))
	count, err = store.CountEvents(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUnlimitedAndNoTicketInfoRoundTrip(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	unlimited := models.Event{ID: "1", Title: "Open Day", TicketInfo: &models.TicketInfo{IsFree: true, Currency: "$"}}
	bare := models.Event{ID: "2", Title: "Poster only"}
	require.NoError(t, store.CreateEvents(ctx, "s1", []models.Event{unlimited, bare}))

	got, err := store.GetEvent(ctx, "s1", "1")
	require.NoError(t, err)
	require.NotNil(t, got.TicketInfo)
	assert.True(t, got.TicketInfo.IsFree)
	assert.Nil(t, got.TicketInfo.AvailableTickets)
	assert.Nil(t, got.TicketInfo.TotalTickets)

	got, err = store.GetEvent(ctx, "s1", "2")
	require.NoError(t, err)
	assert.Nil(t, got.TicketInfo)
}
