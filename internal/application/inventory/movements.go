package inventory

import (
	"context"

	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/domain"
)

// Movements historial del libro de movimientos de un ítem del usuario.
// Un ítem inexistente o de otro usuario se reporta como domain.ErrNotFound.
func (uc *StockViewUseCase) Movements(ctx context.Context, userID, itemID string) (*dto.StockMovementListResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockMovementListResponse{ItemID: itemID, Movements: make([]dto.StockMovementDTO, 0, len(movs))}
	for _, m := range movs {
		resp.Movements = append(resp.Movements, dto.StockMovementDTO{
			ID:             m.ID,
			ItemID:         m.ItemID,
			Kind:           m.Kind,
			Quantity:       m.Quantity,
			FromLocationID: m.FromLocationID,
			ToLocationID:   m.ToLocationID,
			Reason:         m.Reason,
			CreatedAt:      m.CreatedAt,
		})
	}
	return resp, nil
}
