package submission

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"ms-storefront/internal/catalog"
	"ms-storefront/internal/catalog/db"
	"ms-storefront/internal/logger"
	"ms-storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAppender struct {
	mock.Mock
}

func (m *mockAppender) Add(ctx context.Context, event models.Event) (models.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(models.Event), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	args := m.Called(ctx, topic, key, payload)
	return args.Error(0)
}

func newTestService(pub Publisher) *Service {
	return &Service{
		Publisher: pub,
		Topic:     "storefront.event.submitted",
		Logger:    logger.NewWithWriter(&bytes.Buffer{}),
	}
}

func validDraft() Draft {
	return Draft{
		Title:        "Board Game Night",
		Description:  "Bring your favourite games.",
		StartDate:    "2025-09-01",
		EndDate:      "2025-09-01",
		StartTime:    "6:00 PM",
		EndTime:      "10:00 PM",
		Location:     "Corner Cafe",
		Category:     "Social",
		TicketType:   TicketPaid,
		TicketPrice:  "12.50",
		TotalTickets: "40",
	}
}

func setupCatalog(t *testing.T) *catalog.Catalog {
	bunDB, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { bunDB.Close() })

	store := &db.DB{Bun: bunDB}
	require.NoError(t, db.Migrate(context.Background(), store))
	c := catalog.New(store, "s-1")
	require.NoError(t, c.Seed(context.Background()))
	return c
}

func TestSubmitAppendsOneEventWithUserAsOrganizer(t *testing.T) {
	ctx := context.Background()
	c := setupCatalog(t)
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, "storefront.event.submitted", "9", mock.AnythingOfType("models.Event")).Return(nil).Once()

	before, err := c.Len(ctx)
	require.NoError(t, err)

	created, err := newTestService(pub).Submit(ctx, c, &models.User{ID: "1", Name: "jo"}, validDraft())
	require.NoError(t, err)

	after, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)
	assert.Equal(t, "jo", created.Organizer)
	assert.Equal(t, "9", created.ID)

	stored, err := c.Get(ctx, "9")
	require.NoError(t, err)
	assert.Equal(t, "Board Game Night", stored.Title)
	assert.True(t, decimal.RequireFromString("12.5").Equal(stored.TicketInfo.Price))
	pub.AssertExpectations(t)
}

func TestSubmitEndBeforeStartLeavesCatalogUntouched(t *testing.T) {
	ctx := context.Background()
	c := setupCatalog(t)
	pub := new(mockPublisher)

	draft := validDraft()
	draft.StartDate = "2025-09-02"
	draft.EndDate = "2025-09-01"

	_, err := newTestService(pub).Submit(ctx, c, &models.User{Name: "jo"}, draft)
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestValidationOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Draft)
		want   error
	}{
		{"missing title", func(d *Draft) { d.Title = "" }, ErrMissingFields},
		{"blank location", func(d *Draft) { d.Location = "   " }, ErrMissingFields},
		{"missing fields before bad dates", func(d *Draft) { d.Category = ""; d.EndDate = "2025-01-01" }, ErrMissingFields},
		{"empty paid price", func(d *Draft) { d.TicketPrice = "" }, ErrInvalidPrice},
		{"zero paid price", func(d *Draft) { d.TicketPrice = "0" }, ErrInvalidPrice},
		{"negative paid price", func(d *Draft) { d.TicketPrice = "-5" }, ErrInvalidPrice},
		{"price before dates", func(d *Draft) { d.TicketPrice = "abc"; d.EndDate = "2025-01-01" }, ErrInvalidPrice},
		{"bad ticket count", func(d *Draft) { d.TotalTickets = "lots" }, ErrInvalidTotalTickets},
		{"unparseable date", func(d *Draft) { d.StartDate = "next friday" }, ErrInvalidDate},
		{"end before start", func(d *Draft) { d.EndDate = "2025-08-31" }, ErrEndBeforeStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := d.Validate()
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestFreeDraftIgnoresPrice(t *testing.T) {
	d := validDraft()
	d.TicketType = TicketFree
	d.TicketPrice = ""
	assert.NoError(t, d.Validate())

	d.TicketType = ""
	assert.NoError(t, d.Validate(), "ticket type defaults to free")
}

func TestSubmitDefaultsAndAnonymousOrganizer(t *testing.T) {
	ctx := context.Background()
	appender := new(mockAppender)
	appender.On("Add", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
		return e.Organizer == AnonymousOrganizer &&
			e.Image == catalog.DefaultImages["social"] &&
			e.TicketInfo.IsFree &&
			e.TicketInfo.Price.IsZero() &&
			e.TicketInfo.AvailableTickets == nil &&
			e.TicketInfo.TotalTickets == nil &&
			e.TicketInfo.Currency == "$"
	})).Return(models.Event{ID: "9", Organizer: AnonymousOrganizer}, nil).Once()

	d := validDraft()
	d.TicketType = TicketFree
	d.TotalTickets = ""

	created, err := newTestService(nil).Submit(ctx, appender, nil, d)
	require.NoError(t, err)
	assert.Equal(t, AnonymousOrganizer, created.Organizer)
	appender.AssertExpectations(t)
}

func TestSubmitKeepsSuppliedImageAndTicketCounts(t *testing.T) {
	ctx := context.Background()
	appender := new(mockAppender)
	appender.On("Add", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
		return e.Image == "https://img.example/x.png" &&
			*e.TicketInfo.AvailableTickets == 40 &&
			*e.TicketInfo.TotalTickets == 40
	})).Return(models.Event{ID: "9"}, nil).Once()

	d := validDraft()
	d.Image = "https://img.example/x.png"

	_, err := newTestService(nil).Submit(ctx, appender, &models.User{Name: "jo"}, d)
	require.NoError(t, err)
	appender.AssertExpectations(t)
}

func TestSubmitSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	appender := new(mockAppender)
	appender.On("Add", mock.Anything, mock.Anything).Return(models.Event{ID: "9"}, nil)
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	created, err := newTestService(pub).Submit(ctx, appender, &models.User{Name: "jo"}, validDraft())
	require.NoError(t, err)
	assert.Equal(t, "9", created.ID)
}

func TestSubmitReportsStoreErrors(t *testing.T) {
	appender := new(mockAppender)
	appender.On("Add", mock.Anything, mock.Anything).Return(models.Event{}, errors.New("disk on fire"))

	_, err := newTestService(nil).Submit(context.Background(), appender, nil, validDraft())
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
}
