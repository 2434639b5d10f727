package entity

import "time"

// Nombres canónicos de ubicación.
const (
	LocationCupboard = "Armário"
	LocationFridge   = "Geladeira"
	LocationFreezer  = "Freezer"
	// LocationNone agrupa los ítems sin ubicación resuelta en la vista de stock.
	LocationNone = "Sem local"
)

// Location es un lugar de almacenamiento propio de un usuario, creado bajo demanda
// la primera vez que se menciona.
type Location struct {
	ID          string
	UserID      string
	Name        string
	Description *string
	CreatedAt   time.Time
}
