package memory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	db access
}

// NewProductRepository construye el repositorio sobre el almacén.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{db: s}
}

func skuTaken(st *state, sku *string, exceptID string) bool {
	if sku == nil {
		return false
	}
	for _, p := range st.products {
		if p.ID != exceptID && p.SKU != nil && *p.SKU == *sku {
			return true
		}
	}
	return false
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.db.write(ctx, func(st *state) error {
		if skuTaken(st, product.SKU, product.ID) {
			return domain.Duplicate("sku")
		}
		st.products[product.ID] = *product
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.read(ctx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de TxRunner.Run el lock de escritura ya está tomado; fuera de una tx equivale a GetByID.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.db.write(ctx, func(st *state) error {
		current, ok := st.products[product.ID]
		if !ok {
			return domain.NotFound("producto")
		}
		if skuTaken(st, product.SKU, product.ID) {
			return domain.Duplicate("sku")
		}
		updated := *product
		updated.CreatedAt = current.CreatedAt
		st.products[product.ID] = updated
		return nil
	})
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.NotFound("producto")
		}
		delete(st.products, id)
		return nil
	})
}

func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	n := 0
	err := r.db.read(ctx, func(st *state) error {
		for _, p := range st.products {
			if p.CategoryID == categoryID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *ProductRepo) Search(ctx context.Context, filter repository.ProductFilter, page repository.Page) ([]*entity.Product, int, error) {
	var matched []*entity.Product
	err := r.db.read(ctx, func(st *state) error {
		matched = r.matching(st, filter)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	total := len(matched)
	return paginate(matched,
		func(p *entity.Product) int64 { return p.CreatedAt.UnixNano() },
		func(p *entity.Product) string { return p.ID },
		page.Number, page.Limit), total, nil
}

func (r *ProductRepo) Summarize(ctx context.Context, filter repository.ProductFilter) (repository.ProductSummary, error) {
	s := repository.ProductSummary{InventoryValue: decimal.Zero, ReturnedValue: decimal.Zero}
	err := r.db.read(ctx, func(st *state) error {
		for _, p := range r.matching(st, filter) {
			s.TotalProducts++
			s.TotalStockAdded += p.TotalStock
			s.TotalSold += p.Sold
			s.TotalReturned += p.Returned
			s.TotalRemaining += p.Stock
			switch p.Status {
			case entity.StatusLowStock:
				s.LowStockCount++
			case entity.StatusOutOfStock:
				s.OutOfStockCount++
			}
			s.InventoryValue = s.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
			s.ReturnedValue = s.ReturnedValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Returned))))
		}
		return nil
	})
	return s, err
}

func (r *ProductRepo) matching(st *state, f repository.ProductFilter) []*entity.Product {
	kw := strings.ToLower(strings.TrimSpace(f.Keyword))
	var out []*entity.Product
	for _, p := range st.products {
		if !f.Created.Contains(p.CreatedAt) {
			continue
		}
		if kw != "" && !containsFold(p.Name, kw) && !containsFold(p.SKUValue(), kw) {
			continue
		}
		if !matchesStock(f.Stock, &p) {
			continue
		}
		p := p
		out = append(out, &p)
	}
	return out
}

func matchesStock(f repository.StockFilter, p *entity.Product) bool {
	switch f {
	case repository.FilterSold:
		return p.Sold > 0
	case repository.FilterReturned:
		return p.Returned > 0
	case repository.FilterInStock:
		return p.Stock > 0
	case repository.FilterOutOfStock:
		return p.Stock == 0
	case repository.FilterLowStock:
		return p.Status == entity.StatusLowStock
	default:
		return true
	}
}
