package dto

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// Valores por defecto de paginación.
const (
	DefaultPage  = 1
	DefaultLimit = 100
)

// ListQuery parámetros comunes de listados (query string ya validada).
type ListQuery struct {
	Keyword   string
	StartDate *time.Time
	EndDate   *time.Time
	Filter    string // solo productos: all, sold, returned, inStock, outOfStock, lowStock
	Status    string // solo ventas
	Page      int
	Limit     int
}

// ParseListQuery lee keyword, startDate, endDate, filter, status, page y limit usando get.
// page/limit no numéricos o <= 0 son errores de validación (no se corrigen en silencio).
func ParseListQuery(get func(key string) string) (ListQuery, error) {
	q := ListQuery{
		Keyword: strings.TrimSpace(get("keyword")),
		Filter:  strings.TrimSpace(get("filter")),
		Status:  strings.TrimSpace(get("status")),
		Page:    DefaultPage,
		Limit:   DefaultLimit,
	}
	var err error
	if q.Page, err = positiveInt(get("page"), "page", DefaultPage); err != nil {
		return ListQuery{}, err
	}
	if q.Limit, err = positiveInt(get("limit"), "limit", DefaultLimit); err != nil {
		return ListQuery{}, err
	}
	if q.StartDate, err = parseDate(get("startDate"), "startDate", false); err != nil {
		return ListQuery{}, err
	}
	if q.EndDate, err = parseDate(get("endDate"), "endDate", true); err != nil {
		return ListQuery{}, err
	}
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		return ListQuery{}, domain.Invalid("endDate no puede ser anterior a startDate")
	}
	return q, nil
}

// PageRequest convierte a la ventana del repositorio.
func (q ListQuery) PageRequest() repository.Page {
	return repository.Page{Number: q.Page, Limit: q.Limit}
}

// DateRange convierte a rango inclusivo del repositorio.
func (q ListQuery) DateRange() repository.DateRange {
	return repository.DateRange{From: q.StartDate, To: q.EndDate}
}

// ProductFilter construye el predicado de productos; selector desconocido -> ErrInvalidInput.
func (q ListQuery) ProductFilter() (repository.ProductFilter, error) {
	sf, ok := repository.ParseStockFilter(q.Filter)
	if !ok {
		return repository.ProductFilter{}, domain.Invalid("filter desconocido: %q", q.Filter)
	}
	return repository.ProductFilter{Keyword: q.Keyword, Created: q.DateRange(), Stock: sf}, nil
}

func positiveInt(raw, name string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Invalid("%s debe ser numérico", name)
	}
	if n <= 0 {
		return 0, domain.Invalid("%s debe ser mayor a 0", name)
	}
	return n, nil
}

// parseDate acepta YYYY-MM-DD o RFC3339. Una fecha sin hora usada como fin de rango cubre el día completo.
func parseDate(raw, name string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, domain.Invalid("%s debe tener formato YYYY-MM-DD o RFC3339", name)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Total       int `json:"total"`
}

// NewPageResponse calcula totalPages = ceil(total / limit).
func NewPageResponse(total int, page repository.Page) PageResponse {
	pages := 1
	if page.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(page.Limit)))
	}
	return PageResponse{TotalPages: pages, CurrentPage: page.Number, Total: total}
}

// ListResponse lista paginada genérica: {items, totalPages, currentPage, total}.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	PageResponse
}

// SearchResponse lista paginada con agregados sobre todo el conjunto filtrado.
type SearchResponse[T any, S any] struct {
	Items []T `json:"items"`
	PageResponse
	Summary S `json:"summary"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse confirmación simple (p.ej. borrados).
type MessageResponse struct {
	Message string `json:"message"`
}
