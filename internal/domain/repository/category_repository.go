package repository

import (
	"context"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID y GetByName devuelven (nil, nil) cuando no existe.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// GetForUpdate obtiene la categoría y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	// Update persiste nombre y descripción; ProductCount no se toca.
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
	// AdjustProductCount es el único mutador de ProductCount. El resultado nunca baja de 0.
	// Devuelve domain.ErrNotFound si la categoría no existe.
	AdjustProductCount(ctx context.Context, id string, delta int) error
}
