// Package memory implementa los puertos de persistencia en memoria de proceso.
// Sirve para desarrollo local sin PostgreSQL (STORAGE_DRIVER=memory) y como doble en tests.
// La transacción es una instantánea: si fn falla se restaura el estado anterior.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
)

var (
	_ repository.GenericProductRepository = (*ProductRepo)(nil)
	_ repository.LocationRepository       = (*LocationRepo)(nil)
	_ repository.StockItemRepository      = (*StockItemRepo)(nil)
	_ repository.StockMovementRepository  = (*StockMovementRepo)(nil)
)

// Store estado compartido de los repositorios en memoria.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	seq       int64
	products  []*entity.GenericProduct
	locations []*entity.Location
	items     []*entity.StockItem
	movements []*entity.StockMovement

	// Fault, si no es nil, se consulta antes de cada inserción ("product", "location", "item", "movement")
	// y su error se devuelve tal cual. Permite simular fallos de persistencia.
	Fault func(op string) error
}

// NewStore crea un almacén vacío.
func NewStore() *Store { return &Store{} }

func (s *Store) fault(op string) error {
	if s.Fault == nil {
		return nil
	}
	return s.Fault(op)
}

type snapshot struct {
	seq       int64
	products  []*entity.GenericProduct
	locations []*entity.Location
	items     []*entity.StockItem
	movements []*entity.StockMovement
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		seq:       s.seq,
		products:  append([]*entity.GenericProduct(nil), s.products...),
		locations: append([]*entity.Location(nil), s.locations...),
		items:     append([]*entity.StockItem(nil), s.items...),
		movements: append([]*entity.StockMovement(nil), s.movements...),
	}
}

func (s *Store) restore(sn snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = sn.seq
	s.products = sn.products
	s.locations = sn.locations
	s.items = sn.items
	s.movements = sn.movements
}

// Products repositorio de productos genéricos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Locations repositorio de ubicaciones.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{s: s} }

// Items repositorio de ítems de stock.
func (s *Store) Items() *StockItemRepo { return &StockItemRepo{s: s} }

// Movements repositorio del libro de movimientos.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{s: s} }

// Counts devuelve el número de filas por tabla (útil para verificar atomicidad).
func (s *Store) Counts() (products, locations, items, movements int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), len(s.locations), len(s.items), len(s.movements)
}

// AllMovements copia del libro completo.
func (s *Store) AllMovements() []entity.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.StockMovement, 0, len(s.movements))
	for _, m := range s.movements {
		out = append(out, *m)
	}
	return out
}

// TxRunner ejecuta callbacks serializados sobre el Store con rollback por instantánea.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run ejecuta fn; si devuelve error el Store vuelve al estado previo.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.GenericProductRepository,
	locationRepo repository.LocationRepository,
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	sn := r.s.snapshot()
	if err := fn(r.s.Products(), r.s.Locations(), r.s.Items(), r.s.Movements()); err != nil {
		r.s.restore(sn)
		return err
	}
	return nil
}

// ProductRepo catálogo en memoria.
type ProductRepo struct{ s *Store }

// Create implementa repository.GenericProductRepository.
func (r *ProductRepo) Create(_ context.Context, p *entity.GenericProduct) error {
	if err := r.s.fault("product"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	p.Seq = r.s.seq
	cp := *p
	r.s.products = append(r.s.products, &cp)
	return nil
}

func (r *ProductRepo) first(match func(*entity.GenericProduct) bool) *entity.GenericProduct {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if match(p) {
			cp := *p
			return &cp
		}
	}
	return nil
}

// GetByID implementa repository.GenericProductRepository.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.GenericProduct, error) {
	return r.first(func(p *entity.GenericProduct) bool { return p.ID == id }), nil
}

// GetByNormalizedName implementa repository.GenericProductRepository.
func (r *ProductRepo) GetByNormalizedName(_ context.Context, normalized string) (*entity.GenericProduct, error) {
	return r.first(func(p *entity.GenericProduct) bool { return p.NormalizedName == normalized }), nil
}

// GetByName implementa repository.GenericProductRepository.
func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.GenericProduct, error) {
	return r.first(func(p *entity.GenericProduct) bool { return p.Name == name }), nil
}

// ListAll implementa repository.GenericProductRepository.
func (r *ProductRepo) ListAll(_ context.Context) ([]*entity.GenericProduct, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.GenericProduct, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// LockName no hace nada: TxRunner ya serializa las transacciones.
func (r *ProductRepo) LockName(context.Context, string) error { return nil }

// Seed inserta productos directamente (tests y datos de demostración).
func (r *ProductRepo) Seed(products ...*entity.GenericProduct) {
	for _, p := range products {
		_ = r.Create(context.Background(), p)
	}
}

// LocationRepo ubicaciones en memoria.
type LocationRepo struct{ s *Store }

// Create implementa repository.LocationRepository.
func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	if err := r.s.fault("location"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.locations = append(r.s.locations, &cp)
	return nil
}

// GetByUserAndName implementa repository.LocationRepository.
func (r *LocationRepo) GetByUserAndName(_ context.Context, userID, name string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, l := range r.s.locations {
		if l.UserID == userID && strings.EqualFold(l.Name, name) {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

// StockItemRepo ítems en memoria.
type StockItemRepo struct{ s *Store }

// Create implementa repository.StockItemRepository.
func (r *StockItemRepo) Create(_ context.Context, it *entity.StockItem) error {
	if err := r.s.fault("item"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *it
	r.s.items = append(r.s.items, &cp)
	return nil
}

// GetByID implementa repository.StockItemRepository.
func (r *StockItemRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

// ListRows implementa repository.StockItemRepository.
func (r *StockItemRepo) ListRows(_ context.Context, userID, query string) ([]entity.StockRow, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	var rows []entity.StockRow
	for _, it := range r.s.items {
		if it.UserID != userID {
			continue
		}
		var product *entity.GenericProduct
		for _, p := range r.s.products {
			if p.ID == it.GenericProductID {
				product = p
				break
			}
		}
		if product == nil {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(product.Name), q) &&
			!strings.Contains(strings.ToLower(product.NormalizedName), q) {
			continue
		}
		row := entity.StockRow{
			ItemID:         it.ID,
			ProductName:    product.Name,
			NormalizedName: product.NormalizedName,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
			ExpiryDate:     it.ExpiryDate,
			Notes:          it.Notes,
		}
		if it.LocationID != nil {
			for _, l := range r.s.locations {
				if l.ID == *it.LocationID {
					name := l.Name
					row.LocationName = &name
					break
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// StockMovementRepo libro de movimientos en memoria.
type StockMovementRepo struct{ s *Store }

// Create implementa repository.StockMovementRepository.
func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if err := r.s.fault("movement"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

// ListByItem implementa repository.StockMovementRepository.
func (r *StockMovementRepo) ListByItem(_ context.Context, itemID string) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
