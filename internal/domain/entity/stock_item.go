package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit unidad de medida de un ítem de stock.
type Unit string

// Unidades admitidas.
const (
	UnitEach       Unit = "UN"
	UnitGram       Unit = "G"
	UnitKilogram   Unit = "KG"
	UnitMilliliter Unit = "ML"
	UnitLiter      Unit = "L"
)

// Valid indica si la unidad pertenece a la enumeración cerrada.
func (u Unit) Valid() bool {
	switch u {
	case UnitEach, UnitGram, UnitKilogram, UnitMilliliter, UnitLiter:
		return true
	}
	return false
}

// StockItem representa una existencia de un usuario. Siempre referencia un GenericProduct;
// la ubicación y la fecha de vencimiento son opcionales.
type StockItem struct {
	ID               string
	UserID           string
	GenericProductID string
	LocationID       *string
	Quantity         decimal.Decimal // no negativa
	Unit             Unit
	ExpiryDate       *time.Time
	Notes            *string
	CreatedAt        time.Time
}
