// Package analytics contiene la capa de consulta y agregación: búsquedas filtradas,
// paginadas y con resumen recalculado sobre todo el conjunto filtrado.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// SearchUseCase búsquedas de productos con resumen.
//
// El resumen NO se calcula sobre la página visible: el repositorio agrega sobre todas las
// filas que cumplen el predicado (Summarize), en paralelo con la consulta de la página.
type SearchUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewSearchUseCase construye el caso de uso.
func NewSearchUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *SearchUseCase {
	return &SearchUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// SearchProducts aplica keyword + rango de fechas + selector (filter) y devuelve página y resumen.
func (uc *SearchUseCase) SearchProducts(ctx context.Context, q dto.ListQuery) (*dto.ProductSearchResponse, error) {
	filter, err := q.ProductFilter()
	if err != nil {
		return nil, err
	}
	return uc.search(ctx, filter, q.PageRequest())
}

// ListReturnedProducts vista centrada en producto: todos los productos con returned > 0.
// El selector filter de la query se ignora; keyword y fechas sí aplican.
func (uc *SearchUseCase) ListReturnedProducts(ctx context.Context, q dto.ListQuery) (*dto.ProductSearchResponse, error) {
	filter := repository.ProductFilter{
		Keyword: q.Keyword,
		Created: q.DateRange(),
		Stock:   repository.FilterReturned,
	}
	return uc.search(ctx, filter, q.PageRequest())
}

func (uc *SearchUseCase) search(ctx context.Context, filter repository.ProductFilter, page repository.Page) (*dto.ProductSearchResponse, error) {
	// ── Página y resumen en paralelo ──────────────────────────────────────────
	type pageResult struct {
		list  []*entity.Product
		total int
		err   error
	}
	type summaryResult struct {
		summary repository.ProductSummary
		err     error
	}
	pageCh := make(chan pageResult, 1)
	summaryCh := make(chan summaryResult, 1)

	go func() {
		list, total, err := uc.productRepo.Search(ctx, filter, page)
		pageCh <- pageResult{list, total, err}
	}()
	go func() {
		s, err := uc.productRepo.Summarize(ctx, filter)
		summaryCh <- summaryResult{s, err}
	}()

	pr := <-pageCh
	sr := <-summaryCh
	if pr.err != nil {
		return nil, fmt.Errorf("search.page: %w", pr.err)
	}
	if sr.err != nil {
		return nil, fmt.Errorf("search.summary: %w", sr.err)
	}

	items, err := inventory.ProductResponses(ctx, uc.categoryRepo, pr.list)
	if err != nil {
		return nil, err
	}
	return &dto.ProductSearchResponse{
		Items:        items,
		PageResponse: dto.NewPageResponse(pr.total, page),
		Summary:      dto.NewProductSummaryResponse(sr.summary),
	}, nil
}

// StockReport datos de entrada del reporte PDF de existencias.
type StockReport struct {
	GeneratedAt time.Time
	Filter      string
	Keyword     string
	Items       []dto.ProductResponse
	Summary     dto.ProductSummaryResponse
}

// StockReportGenerator puerto de salida para renderizar el reporte (implementado en infrastructure/pdf).
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, report StockReport) ([]byte, error)
}
