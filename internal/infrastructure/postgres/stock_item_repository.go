package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo ítems de stock sobre PostgreSQL.
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

// Create persiste un ítem.
func (r *StockItemRepo) Create(ctx context.Context, it *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, user_id, generic_product_id, location_id, quantity, unit, expiry_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.UserID, it.GenericProductID, it.LocationID, it.Quantity, string(it.Unit),
		it.ExpiryDate, it.Notes, it.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID. Un ID que no es UUID no existe.
func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `
		SELECT id, user_id, generic_product_id, location_id, quantity, unit, expiry_date, notes, created_at
		FROM stock_items WHERE id = $1`
	var it entity.StockItem
	var unit string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.UserID, &it.GenericProductID, &it.LocationID, &it.Quantity, &unit,
		&it.ExpiryDate, &it.Notes, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	it.Unit = entity.Unit(unit)
	return &it, nil
}

// ListRows ítems del usuario con su producto y ubicación. query filtra por subcadena
// (ILIKE, comodines escapados) sobre el nombre o el nombre normalizado del producto.
func (r *StockItemRepo) ListRows(ctx context.Context, userID, query string) ([]entity.StockRow, error) {
	sql := `
		SELECT si.id, gp.name, gp.normalized_name, l.name, si.quantity, si.unit, si.expiry_date, si.notes
		FROM stock_items si
		JOIN generic_products gp ON gp.id = si.generic_product_id
		LEFT JOIN locations l ON l.id = si.location_id
		WHERE si.user_id = $1`
	args := []any{userID}
	if q := strings.TrimSpace(query); q != "" {
		sql += ` AND (gp.name ILIKE $2 OR gp.normalized_name ILIKE $2)`
		args = append(args, containsPattern(q))
	}
	sql += ` ORDER BY si.created_at, si.id`

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock rows: %w", err)
	}
	defer rows.Close()
	var list []entity.StockRow
	for rows.Next() {
		var row entity.StockRow
		var unit string
		if err := rows.Scan(&row.ItemID, &row.ProductName, &row.NormalizedName, &row.LocationName,
			&row.Quantity, &unit, &row.ExpiryDate, &row.Notes); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		row.Unit = entity.Unit(unit)
		list = append(list, row)
	}
	return list, rows.Err()
}
