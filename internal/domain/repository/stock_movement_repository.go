package repository

import (
	"context"

	"github.com/jhoicas/despensa-api/internal/domain/entity"
)

// StockMovementRepository puerto del libro de movimientos. Solo inserción: no hay update ni delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByItem(ctx context.Context, itemID string) ([]*entity.StockMovement, error)
}
