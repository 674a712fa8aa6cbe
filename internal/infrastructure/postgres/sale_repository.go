package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, sale_id, customer, email, item_count, total, status, date, created_at, updated_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var status string
	if err := row.Scan(&s.ID, &s.SaleID, &s.Customer, &s.Email, &s.ItemCount, &s.Total,
		&status, &s.Date, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Status = entity.SaleStatus(status)
	return &s, nil
}

// Create inserta la venta; una colisión en sale_id se reporta como domain.ErrDuplicate.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sales (`+saleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		sale.ID, sale.SaleID, sale.Customer, sale.Email, sale.ItemCount, sale.Total,
		string(sale.Status), sale.Date, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("saleId")
		}
		return storeErr("insert sale", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila; solo tiene efecto dentro de TxRunner.Run.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) getOne(ctx context.Context, query, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get sale", err)
	}
	return s, nil
}

// Update no modifica sale_id ni created_at.
func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sales SET customer = $2, email = $3, item_count = $4, total = $5, status = $6, date = $7, updated_at = $8
		WHERE id = $1`,
		sale.ID, sale.Customer, sale.Email, sale.ItemCount, sale.Total, string(sale.Status), sale.Date, sale.UpdatedAt,
	)
	if err != nil {
		return storeErr("update sale", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("venta")
	}
	return nil
}

func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete sale", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("venta")
	}
	return nil
}

func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter, page repository.Page) ([]*entity.Sale, int, error) {
	w := &whereBuilder{}
	w.keyword(filter.Keyword, "sale_id", "customer", "email")
	w.dateRange("created_at", filter.Created)
	if filter.Status != "" {
		w.add("status = " + w.arg(filter.Status))
	}
	where := w.sql()

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales`+where, w.args...).Scan(&total); err != nil {
		return nil, 0, storeErr("count sales", err)
	}

	query := `SELECT ` + saleColumns + ` FROM sales` + where + ` ORDER BY created_at DESC, id DESC`
	query += w.pageClause(page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, storeErr("list sales", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, storeErr("scan sale", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("list sales", err)
	}
	return list, total, nil
}
