package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación del puerto ReturnRepository sobre PostgreSQL. Solo inserta y lee.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, product_id, name, sku, category, quantity, price, total_value, date, created_at`

func scanReturn(row pgx.Row) (*entity.ProductReturn, error) {
	var x entity.ProductReturn
	if err := row.Scan(&x.ID, &x.ProductID, &x.Name, &x.SKU, &x.Category, &x.Quantity,
		&x.Price, &x.TotalValue, &x.Date, &x.CreatedAt); err != nil {
		return nil, err
	}
	return &x, nil
}

func (r *ReturnRepo) Create(ctx context.Context, ret *entity.ProductReturn) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_returns (`+returnColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		ret.ID, ret.ProductID, ret.Name, ret.SKU, ret.Category, ret.Quantity,
		ret.Price, ret.TotalValue, ret.Date, ret.CreatedAt,
	)
	if err != nil {
		return storeErr("insert return", err)
	}
	return nil
}

func returnWhere(f repository.ReturnFilter) *whereBuilder {
	w := &whereBuilder{}
	w.keyword(f.Keyword, "name", "sku")
	w.dateRange("created_at", f.Created)
	return w
}

func (r *ReturnRepo) List(ctx context.Context, filter repository.ReturnFilter, page repository.Page) ([]*entity.ProductReturn, int, error) {
	w := returnWhere(filter)
	where := w.sql()

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM product_returns`+where, w.args...).Scan(&total); err != nil {
		return nil, 0, storeErr("count returns", err)
	}

	query := `SELECT ` + returnColumns + ` FROM product_returns` + where + ` ORDER BY created_at DESC, id DESC`
	query += w.pageClause(page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, storeErr("list returns", err)
	}
	defer rows.Close()
	var list []*entity.ProductReturn
	for rows.Next() {
		x, err := scanReturn(rows)
		if err != nil {
			return nil, 0, storeErr("scan return", err)
		}
		list = append(list, x)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("list returns", err)
	}
	return list, total, nil
}

func (r *ReturnRepo) Summarize(ctx context.Context, filter repository.ReturnFilter) (repository.ReturnSummary, error) {
	w := returnWhere(filter)
	var s repository.ReturnSummary
	var value decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(total_value), 0) FROM product_returns`+w.sql(),
		w.args...,
	).Scan(&s.TotalRecords, &s.TotalReturned, &value)
	if err != nil {
		return repository.ReturnSummary{}, storeErr("summarize returns", err)
	}
	s.TotalValue = value
	return s, nil
}
