// Package pdf genera el reporte de existencias en PDF.
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + filtros aplicados  │  Fecha de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: agregados sobre todo el conjunto filtrado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | SKU | Categoría | Stock | ... | Estado    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/application/analytics"
	"github.com/jhoicas/ferreteria-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ analytics.StockReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa analytics.StockReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador; company aparece en el encabezado y como autor.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReport(_ context.Context, report analytics.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de existencias", true).
		WithAuthor(nonEmpty(g.company, "Ferretería"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report.Summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(report.Items)...)
	if len(report.Items) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin productos para los filtros aplicados.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, report analytics.StockReport) core.Row {
	filters := "Filtro: " + nonEmpty(report.Filter, "all")
	if report.Keyword != "" {
		filters += fmt.Sprintf("   |   Búsqueda: %q", report.Keyword)
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(company, "Ferretería"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(filters, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("REPORTE DE EXISTENCIAS", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func summaryRows(s dto.ProductSummaryResponse) []core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5, Color: c}),
		)
	}
	return []core.Row{
		row.New(12).Add(
			cell("Productos", strconv.Itoa(s.TotalProducts), nil),
			cell("Unidades ingresadas", strconv.Itoa(s.TotalStockAdded), nil),
			cell("Vendidas", strconv.Itoa(s.TotalSold), nil),
			cell("Devueltas", strconv.Itoa(s.TotalReturned), nil),
			cell("En existencia", strconv.Itoa(s.TotalRemaining), nil),
			cell("Valor inventario", money(s.InventoryValue), colorPrimary),
		),
		row.New(12).Add(
			cell("Stock bajo", strconv.Itoa(s.LowStockCount), colorAlert),
			cell("Agotados", strconv.Itoa(s.OutOfStockCount), colorAlert),
			cell("Valor devuelto", money(s.ReturnedValue), nil),
			col.New(6),
		),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("SKU", 1, align.Left),
		h("Categoría", 2, align.Left),
		h("Ingresado", 1, align.Right),
		h("Vendido", 1, align.Right),
		h("Devuelto", 1, align.Right),
		h("Stock", 1, align.Right),
		h("Precio", 1, align.Right),
		h("Estado", 1, align.Center),
	)
}

func tableDetailRows(items []dto.ProductResponse) []core.Row {
	result := make([]core.Row, 0, len(items))
	num := func(n int) core.Component {
		return text.New(strconv.Itoa(n), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})
	}
	for _, p := range items {
		statusColor := colorGray
		if p.Status != "In Stock" {
			statusColor = colorAlert
		}
		sku := ""
		if p.SKU != nil {
			sku = *p.SKU
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(nonEmpty(sku, "-"), props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(p.Category.Name, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(num(p.TotalStock)),
			col.New(1).Add(num(p.Sold)),
			col.New(1).Add(num(p.Returned)),
			col.New(1).Add(num(p.Stock)),
			col.New(1).Add(text.New(money(p.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(p.Status, props.Text{Size: 7, Align: align.Center, Top: 1, Color: statusColor})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(0)
	if d.IsNegative() {
		return "-$" + formatMoney(s)
	}
	return "$" + formatMoney(s)
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
