package repository

import (
	"context"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los productos llegan ya derivados (Stock/Status); el repositorio no recalcula nada.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	// Search devuelve una página ordenada por CreatedAt DESC y el total de coincidencias.
	Search(ctx context.Context, filter ProductFilter, page Page) ([]*entity.Product, int, error)
	// Summarize agrega sobre todo el conjunto filtrado, sin paginar.
	Summarize(ctx context.Context, filter ProductFilter) (ProductSummary, error)
}
