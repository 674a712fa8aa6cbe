package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus clasificación del nivel de stock de un producto.
type StockStatus string

// Estados de stock válidos.
const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
)

// Product representa un artículo de la ferretería.
// Stock y Status son derivados (ver inventory.DeriveStockAndStatus); nunca se aceptan del cliente.
type Product struct {
	ID         string
	Name       string
	SKU        *string // nil = sin SKU; si existe es único y en mayúsculas
	CategoryID string
	TotalStock int
	Sold       int
	Returned   int
	Stock      int
	Price      decimal.Decimal
	Status     StockStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SKUValue devuelve el SKU o cadena vacía.
func (p *Product) SKUValue() string {
	if p.SKU == nil {
		return ""
	}
	return *p.SKU
}
