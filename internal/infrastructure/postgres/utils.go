package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// storeErr envuelve un fallo del driver como domain.ErrStore conservando la causa.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStore, op, err)
}

// likePattern escapa comodines de LIKE y envuelve el término en %...%.
func likePattern(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(keyword) + "%"
}

// whereBuilder acumula condiciones AND con parámetros posicionales $n.
type whereBuilder struct {
	conds []string
	args  []any
}

// arg registra v y devuelve su marcador posicional.
func (w *whereBuilder) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) add(cond string) {
	w.conds = append(w.conds, cond)
}

// keyword agrega columna ILIKE patrón para alguna de las columnas (OR).
func (w *whereBuilder) keyword(keyword string, columns ...string) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return
	}
	p := w.arg(likePattern(keyword))
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = fmt.Sprintf("COALESCE(%s, '') ILIKE %s", c, p)
	}
	w.add("(" + strings.Join(parts, " OR ") + ")")
}

func (w *whereBuilder) dateRange(column string, r repository.DateRange) {
	if r.From != nil {
		w.add(fmt.Sprintf("%s >= %s", column, w.arg(r.From.UTC())))
	}
	if r.To != nil {
		w.add(fmt.Sprintf("%s <= %s", column, w.arg(r.To.UTC())))
	}
}

// sql devuelve la cláusula WHERE (vacía si no hay condiciones).
func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// pageClause agrega LIMIT/OFFSET; Limit 0 no pagina.
func (w *whereBuilder) pageClause(page repository.Page) string {
	if page.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %s OFFSET %s", w.arg(page.Limit), w.arg(page.Offset()))
}
