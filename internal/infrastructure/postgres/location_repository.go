package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo ubicaciones por usuario sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (id, user_id, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, l.ID, l.UserID, l.Name, l.Description, l.CreatedAt); err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByUserAndName busca sin distinguir mayúsculas; si hay varias devuelve la más antigua.
func (r *LocationRepo) GetByUserAndName(ctx context.Context, userID, name string) (*entity.Location, error) {
	query := `
		SELECT id, user_id, name, description, created_at
		FROM locations
		WHERE user_id = $1 AND lower(name) = lower($2)
		ORDER BY created_at, id
		LIMIT 1`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, userID, name).Scan(&l.ID, &l.UserID, &l.Name, &l.Description, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}
