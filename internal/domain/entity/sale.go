package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta.
type SaleStatus string

const (
	SaleStatusPending    SaleStatus = "Pending"
	SaleStatusProcessing SaleStatus = "Processing"
	SaleStatusShipped    SaleStatus = "Shipped"
	SaleStatusCompleted  SaleStatus = "Completed"
	SaleStatusCancelled  SaleStatus = "Cancelled"
)

// Valid indica si el estado pertenece al enum.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusPending, SaleStatusProcessing, SaleStatusShipped, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// FirstSaleNumber primer número de orden emitido.
const FirstSaleNumber = 1001

// FormatSaleID devuelve el código legible de la orden, p.ej. ORD-1001.
func FormatSaleID(n int64) string {
	return fmt.Sprintf("ORD-%04d", n)
}

// Sale venta registrada. No descuenta stock de productos.
type Sale struct {
	ID        string
	SaleID    string // ORD-NNNN, único
	Customer  string
	Email     string
	ItemCount int
	Total     decimal.Decimal
	Status    SaleStatus
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
