package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConfirmSelectionRequest una selección confirmada por el usuario en POST /stock/confirm-voice.
// Si ChosenProductGenericID viene vacío solo se crea/reutiliza producto con CreateNewIfMissing.
type ConfirmSelectionRequest struct {
	SourceText             string   `json:"source_text" validate:"max=1000"`
	ProductName            string   `json:"product_name" validate:"max=180"`
	ProductNormalized      *string  `json:"product_normalized,omitempty" validate:"omitempty,max=180"`
	ChosenProductGenericID *string  `json:"chosen_product_generic_id,omitempty" validate:"omitempty,uuid"`
	CreateNewIfMissing     bool     `json:"create_new_if_missing"`
	NewProductName         *string  `json:"new_product_name,omitempty" validate:"omitempty,max=180"`
	Location               *string  `json:"location,omitempty" validate:"omitempty,max=120"`
	Quantity               *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	UnitInput              *string  `json:"unit_input,omitempty" validate:"omitempty,max=32"`
	ExpiryText             *string  `json:"expiry_text,omitempty" validate:"omitempty,max=32"`
}

// ConfirmResponse salida de POST /stock/confirm-voice.
type ConfirmResponse struct {
	Inserted       int      `json:"inserted"`
	CreatedGeneric int      `json:"created_generic"`
	ItemIDs        []string `json:"item_ids"`
}

// StockListItemDTO ítem de la vista agrupada. Expiry en formato DD/MM.
type StockListItemDTO struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Expiry *string `json:"expiry"`
	Status string  `json:"status"` // ok | warn | danger
}

// StockGroupDTO grupo de ítems por ubicación canónica.
type StockGroupDTO struct {
	Location string             `json:"location"`
	Items    []StockListItemDTO `json:"items"`
}

// StockListResponse salida de GET /stock/list.
type StockListResponse struct {
	Groups []StockGroupDTO `json:"groups"`
}

// PantryItemDTO ítem del resumen de despensa personal.
type PantryItemDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Location     *string         `json:"location"`
	ExpiresAt    *string         `json:"expires_at"` // YYYY-MM-DD
	DaysToExpire *int            `json:"days_to_expire"`
	Status       string          `json:"status"` // ok | alert | danger | expired
	Observations *string         `json:"observations"`
}

// PantryResponse salida de GET /me/pantry.
type PantryResponse struct {
	Items []PantryItemDTO `json:"items"`
}

// StockMovementDTO fila del libro de movimientos de un ítem.
type StockMovementDTO struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	Kind           string          `json:"kind"`
	Quantity       decimal.Decimal `json:"quantity"`
	FromLocationID *string         `json:"from_location_id"`
	ToLocationID   *string         `json:"to_location_id"`
	Reason         *string         `json:"reason"`
	CreatedAt      time.Time       `json:"created_at"`
}

// StockMovementListResponse salida de GET /stock/items/:id/movements.
type StockMovementListResponse struct {
	ItemID    string             `json:"item_id"`
	Movements []StockMovementDTO `json:"movements"`
}
