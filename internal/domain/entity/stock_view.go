package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRow proyección de un ítem con su producto y ubicación (join), base de las vistas de stock.
type StockRow struct {
	ItemID         string
	ProductName    string
	NormalizedName string
	LocationName   *string
	Quantity       decimal.Decimal
	Unit           Unit
	ExpiryDate     *time.Time
	Notes          *string
}
