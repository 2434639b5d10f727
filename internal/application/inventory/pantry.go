package inventory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/inventory"
)

const unnamedItem = "Item sem nome"

// Pantry resumen personal de despensa con el estado de cuatro niveles (ok, alert, danger, expired).
// Orden: primero los que vencen antes; sin fecha al final.
func (uc *StockViewUseCase) Pantry(ctx context.Context, userID string) (*dto.PantryResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	rows, err := uc.itemRepo.ListRows(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	today := uc.today()

	items := make([]dto.PantryItemDTO, 0, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.ProductName)
		if name == "" {
			name = unnamedItem
		}
		it := dto.PantryItemDTO{
			ID:           r.ItemID,
			Name:         name,
			Quantity:     r.Quantity,
			Unit:         string(r.Unit),
			Location:     r.LocationName,
			Observations: r.Notes,
		}
		if r.ExpiryDate != nil {
			d := inventory.DaysUntil(*r.ExpiryDate, today)
			s := r.ExpiryDate.Format("2006-01-02")
			it.ExpiresAt = &s
			it.DaysToExpire = &d
		}
		it.Status = string(inventory.PantryItemStatus(it.DaysToExpire))
		items = append(items, it)
	}
	sort.SliceStable(items, func(i, j int) bool {
		di, dj := items[i].DaysToExpire, items[j].DaysToExpire
		if (di == nil) != (dj == nil) {
			return di != nil
		}
		if di != nil && *di != *dj {
			return *di < *dj
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return &dto.PantryResponse{Items: items}, nil
}
