package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, sku, category_id, total_stock, sold, returned, stock, price, status, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var status string
	if err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.CategoryID, &p.TotalStock, &p.Sold, &p.Returned,
		&p.Stock, &p.Price, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Status = entity.StockStatus(status)
	return &p, nil
}

// Create persiste un nuevo producto ya derivado.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		product.ID, product.Name, product.SKU, product.CategoryID, product.TotalStock, product.Sold,
		product.Returned, product.Stock, product.Price, string(product.Status), product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("sku")
		}
		if isForeignKeyViolation(err) {
			return domain.Invalid("la categoría %s no existe", product.CategoryID)
		}
		return storeErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción; solo tiene efecto dentro de TxRunner.Run.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get product", err)
	}
	return p, nil
}

// Update reescribe todos los campos mutables del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, sku = $3, category_id = $4, total_stock = $5, sold = $6, returned = $7,
			stock = $8, price = $9, status = $10, updated_at = $11
		WHERE id = $1`,
		product.ID, product.Name, product.SKU, product.CategoryID, product.TotalStock, product.Sold,
		product.Returned, product.Stock, product.Price, string(product.Status), product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("sku")
		}
		if isForeignKeyViolation(err) {
			return domain.Invalid("la categoría %s no existe", product.CategoryID)
		}
		return storeErr("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("producto")
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("producto")
	}
	return nil
}

func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n); err != nil {
		return 0, storeErr("count products", err)
	}
	return n, nil
}

// productWhere traduce el filtro a SQL. Las condiciones de stock replican matchesStock del adaptador en memoria.
func productWhere(f repository.ProductFilter) *whereBuilder {
	w := &whereBuilder{}
	w.keyword(f.Keyword, "name", "sku")
	w.dateRange("created_at", f.Created)
	switch f.Stock {
	case repository.FilterSold:
		w.add("sold > 0")
	case repository.FilterReturned:
		w.add("returned > 0")
	case repository.FilterInStock:
		w.add("stock > 0")
	case repository.FilterOutOfStock:
		w.add("stock = 0")
	case repository.FilterLowStock:
		w.add("status = " + w.arg(string(entity.StatusLowStock)))
	}
	return w
}

func (r *ProductRepo) Search(ctx context.Context, filter repository.ProductFilter, page repository.Page) ([]*entity.Product, int, error) {
	w := productWhere(filter)
	where := w.sql()

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, w.args...).Scan(&total); err != nil {
		return nil, 0, storeErr("count products", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY created_at DESC, id DESC`
	query += w.pageClause(page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, storeErr("search products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, storeErr("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("search products", err)
	}
	return list, total, nil
}

// Summarize agrega en una sola consulta sobre todo el conjunto filtrado.
func (r *ProductRepo) Summarize(ctx context.Context, filter repository.ProductFilter) (repository.ProductSummary, error) {
	w := productWhere(filter)
	low := w.arg(string(entity.StatusLowStock))
	out := w.arg(string(entity.StatusOutOfStock))
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(total_stock), 0),
			COALESCE(SUM(sold), 0),
			COALESCE(SUM(returned), 0),
			COALESCE(SUM(stock), 0),
			COUNT(*) FILTER (WHERE status = ` + low + `),
			COUNT(*) FILTER (WHERE status = ` + out + `),
			COALESCE(SUM(stock * price), 0),
			COALESCE(SUM(returned * price), 0)
		FROM products` + w.sql()

	var s repository.ProductSummary
	var inventoryValue, returnedValue decimal.Decimal
	err := r.q.QueryRow(ctx, query, w.args...).Scan(
		&s.TotalProducts, &s.TotalStockAdded, &s.TotalSold, &s.TotalReturned, &s.TotalRemaining,
		&s.LowStockCount, &s.OutOfStockCount, &inventoryValue, &returnedValue,
	)
	if err != nil {
		return repository.ProductSummary{}, storeErr("summarize products", err)
	}
	s.InventoryValue = inventoryValue
	s.ReturnedValue = returnedValue
	return s, nil
}
