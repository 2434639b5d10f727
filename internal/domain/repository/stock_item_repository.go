package repository

import (
	"context"

	"github.com/jhoicas/despensa-api/internal/domain/entity"
)

// StockItemRepository define el puerto de persistencia para ítems de stock.
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	// ListRows devuelve los ítems del usuario unidos a producto (obligatorio) y ubicación (opcional).
	// Si query no está vacío filtra por subcadena, sin distinguir mayúsculas, en el nombre o el nombre normalizado.
	ListRows(ctx context.Context, userID, query string) ([]entity.StockRow, error)
}
