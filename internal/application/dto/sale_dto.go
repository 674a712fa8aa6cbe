package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta. Status vacío = Pending.
type CreateSaleRequest struct {
	Customer  string           `json:"customer" validate:"required"`
	Email     string           `json:"email" validate:"required,email"`
	ItemCount int              `json:"itemCount" validate:"min=1"`
	Total     *decimal.Decimal `json:"total" validate:"required"`
	Status    string           `json:"status"`
}

// UpdateSaleRequest entrada parcial (misma semántica que productos).
type UpdateSaleRequest struct {
	Customer  *string          `json:"customer"`
	Email     *string          `json:"email"`
	ItemCount *int             `json:"itemCount"`
	Total     *decimal.Decimal `json:"total"`
	Status    *string          `json:"status"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID        string          `json:"id"`
	SaleID    string          `json:"saleId"`
	Customer  string          `json:"customer"`
	Email     string          `json:"email"`
	ItemCount int             `json:"itemCount"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse = ListResponse[SaleResponse]
