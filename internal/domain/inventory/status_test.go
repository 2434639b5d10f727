package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/despensa-api/internal/domain/inventory"
)

func daysFrom(today time.Time, n int) *time.Time {
	d := today.AddDate(0, 0, n)
	return &d
}

func TestStockListStatus(t *testing.T) {
	today := time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, inventory.ListOK, inventory.StockListStatus(nil, today))
	assert.Equal(t, inventory.ListDanger, inventory.StockListStatus(daysFrom(today, -3), today))
	assert.Equal(t, inventory.ListDanger, inventory.StockListStatus(daysFrom(today, 0), today))
	assert.Equal(t, inventory.ListDanger, inventory.StockListStatus(daysFrom(today, 2), today))
	assert.Equal(t, inventory.ListWarn, inventory.StockListStatus(daysFrom(today, 3), today))
	assert.Equal(t, inventory.ListWarn, inventory.StockListStatus(daysFrom(today, 7), today))
	assert.Equal(t, inventory.ListOK, inventory.StockListStatus(daysFrom(today, 8), today))
}

func TestPantryItemStatus(t *testing.T) {
	n := func(v int) *int { return &v }
	assert.Equal(t, inventory.PantryOK, inventory.PantryItemStatus(nil))
	assert.Equal(t, inventory.PantryExpired, inventory.PantryItemStatus(n(-1)))
	assert.Equal(t, inventory.PantryDanger, inventory.PantryItemStatus(n(0)))
	assert.Equal(t, inventory.PantryDanger, inventory.PantryItemStatus(n(2)))
	assert.Equal(t, inventory.PantryAlert, inventory.PantryItemStatus(n(5)))
	assert.Equal(t, inventory.PantryOK, inventory.PantryItemStatus(n(6)))
}

// Entre 6 y 7 días las dos vistas discrepan a propósito.
func TestStatusVocabulariosIndependientes(t *testing.T) {
	today := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	six := 6
	assert.Equal(t, inventory.ListWarn, inventory.StockListStatus(daysFrom(today, 6), today))
	assert.Equal(t, inventory.PantryOK, inventory.PantryItemStatus(&six))
}

func TestDaysUntil_IgnoraHora(t *testing.T) {
	today := time.Date(2025, time.June, 1, 23, 59, 0, 0, time.UTC)
	expiry := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, inventory.DaysUntil(expiry, today))
}

func TestSeverityOrden(t *testing.T) {
	assert.Less(t, inventory.ListDanger.Severity(), inventory.ListWarn.Severity())
	assert.Less(t, inventory.ListWarn.Severity(), inventory.ListOK.Severity())
}

func TestParseQuantity(t *testing.T) {
	assert.True(t, inventory.ParseQuantity(nil).Equal(decimal.NewFromInt(1)))
	q := 2.5
	assert.True(t, inventory.ParseQuantity(&q).Equal(decimal.RequireFromString("2.5")))
}
