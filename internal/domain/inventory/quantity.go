package inventory

import "github.com/shopspring/decimal"

// DefaultQuantity cantidad asumida cuando el usuario no dicta ninguna.
var DefaultQuantity = decimal.NewFromInt(1)

// ParseQuantity convierte la cantidad opcional de la petición; nil equivale a 1.
// Redondea a 3 decimales, la escala de la columna NUMERIC(12,3).
func ParseQuantity(q *float64) decimal.Decimal {
	if q == nil {
		return DefaultQuantity
	}
	return decimal.NewFromFloat(*q).Round(3)
}
