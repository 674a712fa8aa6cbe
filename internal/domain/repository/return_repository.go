package repository

import (
	"context"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

// ReturnRepository puerto de persistencia para devoluciones (solo inserción y lectura).
type ReturnRepository interface {
	Create(ctx context.Context, ret *entity.ProductReturn) error
	List(ctx context.Context, filter ReturnFilter, page Page) ([]*entity.ProductReturn, int, error)
	Summarize(ctx context.Context, filter ReturnFilter) (ReturnSummary, error)
}
