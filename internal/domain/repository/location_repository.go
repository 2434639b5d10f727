package repository

import (
	"context"

	"github.com/jhoicas/despensa-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para ubicaciones de un usuario.
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	// GetByUserAndName compara el nombre sin distinguir mayúsculas.
	GetByUserAndName(ctx context.Context, userID, name string) (*entity.Location, error)
}
