package repository

import (
	"context"

	"github.com/jhoicas/despensa-api/internal/domain/entity"
)

// GenericProductRepository define el puerto de persistencia del catálogo global de productos genéricos.
// Las búsquedas exactas devuelven la entrada más antigua (menor Seq) cuando hay varias.
type GenericProductRepository interface {
	Create(ctx context.Context, product *entity.GenericProduct) error
	GetByID(ctx context.Context, id string) (*entity.GenericProduct, error)
	GetByNormalizedName(ctx context.Context, normalized string) (*entity.GenericProduct, error)
	GetByName(ctx context.Context, name string) (*entity.GenericProduct, error)
	// ListAll recorre el catálogo en orden de inserción (usado por el puntuador de respaldo).
	ListAll(ctx context.Context) ([]*entity.GenericProduct, error)
	// LockName serializa, dentro de la transacción en curso, la creación de un nombre normalizado.
	LockName(ctx context.Context, normalized string) error
}
