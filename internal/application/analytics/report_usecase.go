package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// ReportUseCase genera el reporte PDF de existencias con el mismo predicado que la búsqueda.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	generator    StockReportGenerator
	now          func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando el generador PDF.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	generator StockReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, categoryRepo: categoryRepo, generator: generator, now: time.Now}
}

// StockReportPDF incluye todas las filas que cumplen el predicado (sin paginar) y el resumen.
//
// Retorna (pdfBytes, filename, nil) o domain.ErrInvalidInput si el selector no es válido.
func (uc *ReportUseCase) StockReportPDF(ctx context.Context, q dto.ListQuery) ([]byte, string, error) {
	filter, err := q.ProductFilter()
	if err != nil {
		return nil, "", err
	}
	list, _, err := uc.productRepo.Search(ctx, filter, repository.Page{Number: 1})
	if err != nil {
		return nil, "", fmt.Errorf("report: listar productos: %w", err)
	}
	summary, err := uc.productRepo.Summarize(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("report: resumen: %w", err)
	}
	items, err := inventory.ProductResponses(ctx, uc.categoryRepo, list)
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	pdf, err := uc.generator.GenerateStockReport(ctx, StockReport{
		GeneratedAt: now,
		Filter:      string(filter.Stock),
		Keyword:     filter.Keyword,
		Items:       items,
		Summary:     dto.NewProductSummaryResponse(summary),
	})
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("existencias-%s.pdf", now.Format("20060102-1504")), nil
}
