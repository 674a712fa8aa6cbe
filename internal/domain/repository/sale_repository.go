package repository

import (
	"context"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas.
type SaleRepository interface {
	// Create devuelve domain.ErrDuplicate si SaleID ya existe.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate obtiene la venta y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter SaleFilter, page Page) ([]*entity.Sale, int, error)
}

// SaleSequence secuencia atómica del almacén para numerar órdenes.
// Cada llamada devuelve un valor mayor que cualquiera entregado antes, también bajo concurrencia.
type SaleSequence interface {
	NextSaleNumber(ctx context.Context) (int64, error)
}
