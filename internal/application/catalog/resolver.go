// Package catalog resuelve nombres libres contra el catálogo global de productos genéricos.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/domain/inventory"
	"github.com/jhoicas/despensa-api/internal/domain/matching"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
)

// Resolver servicio sobre el catálogo: búsqueda exacta con creación opcional y ranking de candidatos.
// No guarda estado entre llamadas; WithRepository lo ata a los repositorios de una transacción.
type Resolver struct {
	repo   repository.GenericProductRepository
	source CandidateSource
	now    func() time.Time
}

// NewResolver construye el servicio.
func NewResolver(repo repository.GenericProductRepository, source CandidateSource) *Resolver {
	return &Resolver{repo: repo, source: source, now: time.Now}
}

// WithRepository devuelve una copia que lee y escribe a través de repo (p. ej. atado a una tx).
func (r *Resolver) WithRepository(repo repository.GenericProductRepository) *Resolver {
	cp := *r
	cp.repo = repo
	return &cp
}

// Mode modo de la fuente de candidatos activa.
func (r *Resolver) Mode() string {
	if r.source == nil {
		return ""
	}
	return r.source.Mode()
}

// catalogKey nombre normalizado para hint (si viene) o name. Si las stopwords lo vacían
// se usa la forma plegada completa para no crear entradas con clave vacía.
func catalogKey(name, hint string) string {
	src := strings.TrimSpace(hint)
	if src == "" {
		src = strings.TrimSpace(name)
	}
	if norm := inventory.NormalizeProductName(src); norm != "" {
		return norm
	}
	return inventory.FoldText(src)
}

// ResolveOrCreate busca por nombre normalizado, luego por nombre exacto y, si create es true,
// inserta una entrada nueva. created indica si se insertó. Sin coincidencia y sin create
// devuelve domain.ErrNotFound.
func (r *Resolver) ResolveOrCreate(ctx context.Context, name, hint string, create bool) (product *entity.GenericProduct, created bool, err error) {
	name = strings.TrimSpace(name)
	key := catalogKey(name, hint)
	if key == "" {
		return nil, false, domain.ErrInvalidInput
	}
	if create {
		if err := r.repo.LockName(ctx, key); err != nil {
			return nil, false, err
		}
	}

	existing, err := r.repo.GetByNormalizedName(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	if name != "" {
		existing, err = r.repo.GetByName(ctx, name)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, false, nil
		}
	}
	if !create {
		return nil, false, domain.ErrNotFound
	}

	if name == "" {
		name = strings.TrimSpace(hint)
	}
	product = &entity.GenericProduct{
		ID:             uuid.New().String(),
		Name:           name,
		NormalizedName: key,
		CreatedAt:      r.now(),
	}
	if err := r.repo.Create(ctx, product); err != nil {
		return nil, false, fmt.Errorf("crear producto genérico: %w", err)
	}
	return product, true, nil
}

// FindCandidates rankea el catálogo contra normalize(hint o name). Una consulta vacía no tiene candidatos.
func (r *Resolver) FindCandidates(ctx context.Context, name, hint string, limit int) ([]matching.Candidate, error) {
	src := strings.TrimSpace(hint)
	if src == "" {
		src = name
	}
	norm := inventory.NormalizeProductName(src)
	if norm == "" {
		return []matching.Candidate{}, nil
	}
	if limit <= 0 {
		limit = matching.DefaultLimit
	}
	return r.source.Candidates(ctx, norm, limit)
}
