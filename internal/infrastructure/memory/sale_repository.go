package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository = (*SaleRepo)(nil)
	_ repository.SaleSequence   = (*SaleRepo)(nil)
)

// SaleRepo implementación en memoria de SaleRepository y SaleSequence.
type SaleRepo struct {
	db    access
	store *Store
}

// NewSaleRepository construye el repositorio sobre el almacén.
func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{db: s, store: s}
}

// NextSaleNumber incrementa la secuencia compartida del almacén.
func (r *SaleRepo) NextSaleNumber(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return r.store.saleSeq.Add(1), nil
}

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.write(ctx, func(st *state) error {
		for _, s := range st.sales {
			if s.SaleID == sale.SaleID {
				return domain.Duplicate("saleId")
			}
		}
		st.sales[sale.ID] = *sale
		return nil
	})
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.db.read(ctx, func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de TxRunner.Run el lock de escritura ya está tomado; fuera de una tx equivale a GetByID.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	return r.db.write(ctx, func(st *state) error {
		current, ok := st.sales[sale.ID]
		if !ok {
			return domain.NotFound("venta")
		}
		updated := *sale
		updated.SaleID = current.SaleID
		updated.CreatedAt = current.CreatedAt
		st.sales[sale.ID] = updated
		return nil
	})
}

func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.sales[id]; !ok {
			return domain.NotFound("venta")
		}
		delete(st.sales, id)
		return nil
	})
}

func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter, page repository.Page) ([]*entity.Sale, int, error) {
	kw := strings.ToLower(strings.TrimSpace(filter.Keyword))
	var matched []*entity.Sale
	err := r.db.read(ctx, func(st *state) error {
		for _, s := range st.sales {
			if !filter.Created.Contains(s.CreatedAt) {
				continue
			}
			if filter.Status != "" && string(s.Status) != filter.Status {
				continue
			}
			if kw != "" && !containsFold(s.SaleID, kw) && !containsFold(s.Customer, kw) && !containsFold(s.Email, kw) {
				continue
			}
			s := s
			matched = append(matched, &s)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	total := len(matched)
	return paginate(matched,
		func(s *entity.Sale) int64 { return s.CreatedAt.UnixNano() },
		func(s *entity.Sale) string { return s.ID },
		page.Number, page.Limit), total, nil
}
