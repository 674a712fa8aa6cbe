package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockFilter selector categórico para búsquedas de productos.
type StockFilter string

const (
	FilterAll        StockFilter = "all"
	FilterSold       StockFilter = "sold"       // sold > 0
	FilterReturned   StockFilter = "returned"   // returned > 0
	FilterInStock    StockFilter = "inStock"    // stock > 0
	FilterOutOfStock StockFilter = "outOfStock" // stock == 0
	FilterLowStock   StockFilter = "lowStock"   // status == Low Stock
)

// ParseStockFilter valida el selector; vacío equivale a FilterAll.
func ParseStockFilter(s string) (StockFilter, bool) {
	switch f := StockFilter(s); f {
	case "":
		return FilterAll, true
	case FilterAll, FilterSold, FilterReturned, FilterInStock, FilterOutOfStock, FilterLowStock:
		return f, true
	}
	return "", false
}

// DateRange rango inclusivo sobre created_at. Extremos nil = sin límite.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains indica si t cae dentro del rango.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// ProductFilter predicado de búsqueda de productos. Keyword busca en nombre o SKU.
type ProductFilter struct {
	Keyword string
	Created DateRange
	Stock   StockFilter
}

// ReturnFilter predicado de búsqueda de devoluciones. Keyword busca en nombre o SKU.
type ReturnFilter struct {
	Keyword string
	Created DateRange
}

// SaleFilter predicado de búsqueda de ventas. Keyword busca en saleId, cliente o email.
type SaleFilter struct {
	Keyword string
	Created DateRange
	Status  string
}

// Page ventana de paginación (Number 1-based). Limit 0 = sin límite, solo para uso interno
// (reportes); la API rechaza limit <= 0.
type Page struct {
	Number int
	Limit  int
}

// Offset devuelve cuántos registros saltar.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Limit <= 0 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// ProductSummary agregados sobre un conjunto filtrado de productos.
type ProductSummary struct {
	TotalProducts   int
	TotalStockAdded int
	TotalSold       int
	TotalReturned   int
	TotalRemaining  int
	LowStockCount   int
	OutOfStockCount int
	InventoryValue  decimal.Decimal // Σ stock × price
	ReturnedValue   decimal.Decimal // Σ returned × price
}

// ReturnSummary agregados sobre un conjunto filtrado de devoluciones.
type ReturnSummary struct {
	TotalRecords  int
	TotalReturned int
	TotalValue    decimal.Decimal
}
