package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReturnRequest entrada para registrar una devolución.
// Name, SKU, Category y Price toman el valor actual del producto si se omiten.
type CreateReturnRequest struct {
	ProductID   string           `json:"productId" validate:"required"`
	Name        string           `json:"name"`
	SKU         string           `json:"sku"`
	Category    string           `json:"category"`
	ReturnedQty int              `json:"returnedQty" validate:"required,min=1"`
	Price       *decimal.Decimal `json:"price"`
}

// ReturnResponse salida de una devolución.
type ReturnResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	ReturnedQty int             `json:"returnedQty"`
	Price       decimal.Decimal `json:"price"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ReturnStatsResponse agregados del registro de devoluciones.
type ReturnStatsResponse struct {
	TotalReturned      int             `json:"totalReturned"`
	TotalValue         decimal.Decimal `json:"totalValue"`
	TotalReturnRecords int             `json:"totalReturnRecords"`
}

// ReturnListResponse lista paginada de devoluciones.
type ReturnListResponse = ListResponse[ReturnResponse]
