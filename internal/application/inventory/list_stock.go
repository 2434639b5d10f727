package inventory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/domain/inventory"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
)

// groupPriority orden fijo de las ubicaciones canónicas; el resto va alfabético y "Sem local" al final.
var groupPriority = map[string]int{
	entity.LocationCupboard: 0,
	entity.LocationFridge:   1,
	entity.LocationFreezer:  2,
}

// StockViewUseCase arma la vista agrupada y ordenada del stock de un usuario.
type StockViewUseCase struct {
	itemRepo repository.StockItemRepository
	movRepo  repository.StockMovementRepository
	pdfGen   StockPDFGenerator
	now      func() time.Time
}

// NewStockViewUseCase construye el caso de uso. pdfGen puede ser nil si no se exporta PDF.
func NewStockViewUseCase(itemRepo repository.StockItemRepository, movRepo repository.StockMovementRepository, pdfGen StockPDFGenerator) *StockViewUseCase {
	return &StockViewUseCase{itemRepo: itemRepo, movRepo: movRepo, pdfGen: pdfGen, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *StockViewUseCase) WithClock(now func() time.Time) *StockViewUseCase {
	uc.now = now
	return uc
}

func (uc *StockViewUseCase) today() time.Time {
	n := uc.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

type listEntry struct {
	row    entity.StockRow
	status inventory.ListStatus
}

// List devuelve el stock agrupado por ubicación canónica. query filtra por subcadena
// (sin distinguir mayúsculas) sobre el nombre o el nombre normalizado del producto.
func (uc *StockViewUseCase) List(ctx context.Context, userID, query string) (*dto.StockListResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	rows, err := uc.itemRepo.ListRows(ctx, userID, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	today := uc.today()

	byGroup := map[string][]listEntry{}
	for _, r := range rows {
		label := entity.LocationNone
		if r.LocationName != nil {
			if canon := inventory.NormalizeLocation(*r.LocationName); canon != "" {
				label = canon
			}
		}
		byGroup[label] = append(byGroup[label], listEntry{row: r, status: inventory.StockListStatus(r.ExpiryDate, today)})
	}

	labels := make([]string, 0, len(byGroup))
	for l := range byGroup {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return lessGroup(labels[i], labels[j]) })

	resp := &dto.StockListResponse{Groups: make([]dto.StockGroupDTO, 0, len(labels))}
	for _, label := range labels {
		entries := byGroup[label]
		sort.SliceStable(entries, func(i, j int) bool { return lessEntry(entries[i], entries[j]) })
		group := dto.StockGroupDTO{Location: label, Items: make([]dto.StockListItemDTO, 0, len(entries))}
		for _, e := range entries {
			group.Items = append(group.Items, dto.StockListItemDTO{
				ID:     e.row.ItemID,
				Name:   e.row.ProductName,
				Expiry: expiryLabel(e.row.ExpiryDate),
				Status: string(e.status),
			})
		}
		resp.Groups = append(resp.Groups, group)
	}
	return resp, nil
}

// ExportPDF renderiza la misma vista de List como PDF.
func (uc *StockViewUseCase) ExportPDF(ctx context.Context, userID, query string) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.List(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	title := "Estoque"
	if q := strings.TrimSpace(query); q != "" {
		title += " - " + q
	}
	return uc.pdfGen.GenerateStockListPDF(ctx, title, list)
}

func lessGroup(a, b string) bool {
	if a == b {
		return false
	}
	if a == entity.LocationNone || b == entity.LocationNone {
		return b == entity.LocationNone
	}
	pa, okA := groupPriority[a]
	pb, okB := groupPriority[b]
	switch {
	case okA && okB:
		return pa < pb
	case okA != okB:
		return okA
	}
	return strings.ToLower(a) < strings.ToLower(b)
}

func lessEntry(a, b listEntry) bool {
	if sa, sb := a.status.Severity(), b.status.Severity(); sa != sb {
		return sa < sb
	}
	ea, eb := a.row.ExpiryDate, b.row.ExpiryDate
	if (ea == nil) != (eb == nil) {
		return ea != nil
	}
	if ea != nil && !ea.Equal(*eb) {
		return ea.Before(*eb)
	}
	na, nb := strings.ToLower(a.row.ProductName), strings.ToLower(b.row.ProductName)
	if na != nb {
		return na < nb
	}
	return a.row.ItemID < b.row.ItemID
}

func expiryLabel(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format("02/01")
	return &s
}
