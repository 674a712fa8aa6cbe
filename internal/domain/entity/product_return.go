package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductReturn registro inmutable de una devolución.
// Category es una etiqueta desnormalizada (nombre al momento de la devolución), no una referencia.
type ProductReturn struct {
	ID         string
	ProductID  string
	Name       string
	SKU        string
	Category   string
	Quantity   int
	Price      decimal.Decimal
	TotalValue decimal.Decimal // Quantity × Price
	Date       time.Time
	CreatedAt  time.Time
}
