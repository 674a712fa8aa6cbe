package postgres

import (
	"context"

	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

var _ repository.SaleSequence = (*SaleSequence)(nil)

// SaleSequence entrega números de orden desde sale_number_seq (nextval es atómico entre sesiones).
type SaleSequence struct {
	q Querier
}

// NewSaleSequence construye la secuencia sobre el pool.
func NewSaleSequence(q Querier) *SaleSequence {
	return &SaleSequence{q: q}
}

func (s *SaleSequence) NextSaleNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := s.q.QueryRow(ctx, `SELECT nextval('sale_number_seq')`).Scan(&n); err != nil {
		return 0, storeErr("next sale number", err)
	}
	return n, nil
}
