package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
)

var _ repository.GenericProductRepository = (*GenericProductRepo)(nil)

const productColumns = `id, seq, name, normalized_name, category, image_url, created_at`

// GenericProductRepo catálogo global sobre PostgreSQL (usable con pool o tx).
type GenericProductRepo struct {
	q Querier
}

// NewGenericProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGenericProductRepository(q Querier) *GenericProductRepo {
	return &GenericProductRepo{q: q}
}

// Create inserta el producto y completa Seq y CreatedAt desde la BD.
func (r *GenericProductRepo) Create(ctx context.Context, p *entity.GenericProduct) error {
	query := `
		INSERT INTO generic_products (id, name, normalized_name, category, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING seq, created_at`
	err := r.q.QueryRow(ctx, query, p.ID, p.Name, p.NormalizedName, p.Category, p.ImageURL).
		Scan(&p.Seq, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert generic product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.GenericProduct, error) {
	var p entity.GenericProduct
	err := row.Scan(&p.ID, &p.Seq, &p.Name, &p.NormalizedName, &p.Category, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un producto por ID. Un ID que no es UUID no existe.
func (r *GenericProductRepo) GetByID(ctx context.Context, id string) (*entity.GenericProduct, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM generic_products WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get generic product: %w", err)
	}
	return p, nil
}

// GetByNormalizedName primera entrada (orden de inserción) con ese nombre normalizado.
func (r *GenericProductRepo) GetByNormalizedName(ctx context.Context, normalized string) (*entity.GenericProduct, error) {
	query := `SELECT ` + productColumns + ` FROM generic_products WHERE normalized_name = $1 ORDER BY seq LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, normalized))
	if err != nil {
		return nil, fmt.Errorf("get generic product by normalized name: %w", err)
	}
	return p, nil
}

// GetByName primera entrada (orden de inserción) con ese nombre exacto.
func (r *GenericProductRepo) GetByName(ctx context.Context, name string) (*entity.GenericProduct, error) {
	query := `SELECT ` + productColumns + ` FROM generic_products WHERE name = $1 ORDER BY seq LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("get generic product by name: %w", err)
	}
	return p, nil
}

// ListAll todo el catálogo en orden de inserción (fuente del puntuador en proceso).
func (r *GenericProductRepo) ListAll(ctx context.Context) ([]*entity.GenericProduct, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM generic_products ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list generic products: %w", err)
	}
	defer rows.Close()
	var list []*entity.GenericProduct
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan generic product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// LockName toma un advisory lock de transacción sobre el nombre normalizado para que dos
// confirmaciones concurrentes no creen la misma entrada. Se libera en commit/rollback.
func (r *GenericProductRepo) LockName(ctx context.Context, normalized string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, normalized); err != nil {
		return fmt.Errorf("lock generic product name: %w", err)
	}
	return nil
}
