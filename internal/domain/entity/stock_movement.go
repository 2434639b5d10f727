package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de stock.
const (
	MovementEntrada       = "ENTRADA"
	MovementSaida         = "SAIDA"
	MovementTransferencia = "TRANSFERENCIA"
)

// ReasonConfirmVoice etiqueta los movimientos creados al confirmar ítems dictados.
const ReasonConfirmVoice = "CONFIRM_VOICE"

// StockMovement fila inmutable del libro de movimientos. Quantity siempre es > 0;
// la dirección la dan Kind y las ubicaciones origen/destino.
type StockMovement struct {
	ID             string
	ItemID         string
	Kind           string
	Quantity       decimal.Decimal
	FromLocationID *string
	ToLocationID   *string
	Reason         *string
	CreatedAt      time.Time
}
