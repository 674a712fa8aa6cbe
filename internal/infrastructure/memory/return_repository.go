package memory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación en memoria de ReturnRepository.
type ReturnRepo struct {
	db access
}

// NewReturnRepository construye el repositorio sobre el almacén.
func NewReturnRepository(s *Store) *ReturnRepo {
	return &ReturnRepo{db: s}
}

func (r *ReturnRepo) Create(ctx context.Context, ret *entity.ProductReturn) error {
	return r.db.write(ctx, func(st *state) error {
		st.returns[ret.ID] = *ret
		return nil
	})
}

func (r *ReturnRepo) List(ctx context.Context, filter repository.ReturnFilter, page repository.Page) ([]*entity.ProductReturn, int, error) {
	var matched []*entity.ProductReturn
	err := r.db.read(ctx, func(st *state) error {
		matched = matchingReturns(st, filter)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	total := len(matched)
	return paginate(matched,
		func(x *entity.ProductReturn) int64 { return x.CreatedAt.UnixNano() },
		func(x *entity.ProductReturn) string { return x.ID },
		page.Number, page.Limit), total, nil
}

func (r *ReturnRepo) Summarize(ctx context.Context, filter repository.ReturnFilter) (repository.ReturnSummary, error) {
	s := repository.ReturnSummary{TotalValue: decimal.Zero}
	err := r.db.read(ctx, func(st *state) error {
		for _, x := range matchingReturns(st, filter) {
			s.TotalRecords++
			s.TotalReturned += x.Quantity
			s.TotalValue = s.TotalValue.Add(x.TotalValue)
		}
		return nil
	})
	return s, err
}

func matchingReturns(st *state, f repository.ReturnFilter) []*entity.ProductReturn {
	kw := strings.ToLower(strings.TrimSpace(f.Keyword))
	var out []*entity.ProductReturn
	for _, x := range st.returns {
		if !f.Created.Contains(x.CreatedAt) {
			continue
		}
		if kw != "" && !containsFold(x.Name, kw) && !containsFold(x.SKU, kw) {
			continue
		}
		x := x
		out = append(out, &x)
	}
	return out
}
