package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTicketInfoSoldOut(t *testing.T) {
	assert.False(t, (*TicketInfo)(nil).SoldOut())
	assert.False(t, (&TicketInfo{IsFree: true}).SoldOut(), "unlimited is never sold out")
	assert.False(t, (&TicketInfo{AvailableTickets: IntPtr(3)}).SoldOut())
	assert.True(t, (&TicketInfo{AvailableTickets: IntPtr(0), TotalTickets: IntPtr(200)}).SoldOut())
}

func TestTicketInfoUnitPrice(t *testing.T) {
	paid := &TicketInfo{Price: decimal.RequireFromString("45.00"), Currency: "$"}
	free := &TicketInfo{IsFree: true, Price: decimal.NewFromInt(10)}

	assert.True(t, paid.UnitPrice().Equal(decimal.NewFromInt(45)))
	assert.True(t, free.UnitPrice().IsZero())
	assert.True(t, (*TicketInfo)(nil).UnitPrice().IsZero())
}

func TestCategoriesClosedSet(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 8)

	food, ok := CategoryByID("food")
	assert.True(t, ok)
	assert.Equal(t, "Food & Drink", food.Name)

	byName, ok := CategoryByName("Wellness")
	assert.True(t, ok)
	assert.Equal(t, "wellness", byName.ID)

	_, ok = CategoryByID("all")
	assert.False(t, ok)

	cats[0].Name = "changed"
	again, _ := CategoryByID("music")
	assert.Equal(t, "Music", again.Name, "Categories must return a copy")
}
