package inventory

import (
	"context"

	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para la confirmación de ítems: o se escribe todo el lote o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.GenericProductRepository,
		locationRepo repository.LocationRepository,
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// StockPDFGenerator renderiza la vista agrupada de stock como PDF.
type StockPDFGenerator interface {
	GenerateStockListPDF(ctx context.Context, title string, list *dto.StockListResponse) ([]byte, error)
}
