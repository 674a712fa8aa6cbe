package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Punteros = campos cuya ausencia se distingue de 0.
type CreateProductRequest struct {
	Name       string           `json:"name" validate:"required,min=1,max=200"`
	SKU        *string          `json:"sku"`
	CategoryID string           `json:"categoryId" validate:"required"`
	TotalStock *int             `json:"totalStock" validate:"required,min=0"`
	Sold       *int             `json:"sold" validate:"omitempty,min=0"`
	Returned   *int             `json:"returned" validate:"omitempty,min=0"`
	Price      *decimal.Decimal `json:"price" validate:"required"`
}

// UpdateProductRequest entrada parcial: nil = sin cambio, 0 = cero.
// SKU vacío elimina el SKU del producto.
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU        *string          `json:"sku"`
	CategoryID *string          `json:"categoryId"`
	TotalStock *int             `json:"totalStock"`
	Sold       *int             `json:"sold"`
	Returned   *int             `json:"returned"`
	Price      *decimal.Decimal `json:"price"`
}

// CategoryRef categoría resuelta en lecturas de producto.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	SKU        *string         `json:"sku"`
	Category   CategoryRef     `json:"categoryId"`
	TotalStock int             `json:"totalStock"`
	Sold       int             `json:"sold"`
	Returned   int             `json:"returned"`
	Stock      int             `json:"stock"`
	Price      decimal.Decimal `json:"price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ProductSummaryResponse agregados de productos (stats globales o resumen de búsqueda).
type ProductSummaryResponse struct {
	TotalStockAdded int             `json:"totalStockAdded"`
	TotalSold       int             `json:"totalSold"`
	TotalReturned   int             `json:"totalReturned"`
	TotalRemaining  int             `json:"totalRemaining"`
	LowStockCount   int             `json:"lowStockCount"`
	OutOfStockCount int             `json:"outOfStockCount"`
	TotalProducts   int             `json:"totalProducts"`
	InventoryValue  decimal.Decimal `json:"inventoryValue"`
	ReturnedValue   decimal.Decimal `json:"returnedValue"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse = ListResponse[ProductResponse]

// ProductSearchResponse búsqueda de productos con resumen.
type ProductSearchResponse = SearchResponse[ProductResponse, ProductSummaryResponse]
