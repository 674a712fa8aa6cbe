package dto

import (
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// NewProductResponse mapea un producto con el nombre de su categoría ya resuelto.
func NewProductResponse(p *entity.Product, categoryName string) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		SKU:        p.SKU,
		Category:   CategoryRef{ID: p.CategoryID, Name: categoryName},
		TotalStock: p.TotalStock,
		Sold:       p.Sold,
		Returned:   p.Returned,
		Stock:      p.Stock,
		Price:      p.Price,
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// NewProductSummaryResponse mapea los agregados de productos.
func NewProductSummaryResponse(s repository.ProductSummary) ProductSummaryResponse {
	return ProductSummaryResponse{
		TotalStockAdded: s.TotalStockAdded,
		TotalSold:       s.TotalSold,
		TotalReturned:   s.TotalReturned,
		TotalRemaining:  s.TotalRemaining,
		LowStockCount:   s.LowStockCount,
		OutOfStockCount: s.OutOfStockCount,
		TotalProducts:   s.TotalProducts,
		InventoryValue:  s.InventoryValue,
		ReturnedValue:   s.ReturnedValue,
	}
}

func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		ProductCount: c.ProductCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func NewReturnResponse(r *entity.ProductReturn) ReturnResponse {
	return ReturnResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		Name:        r.Name,
		SKU:         r.SKU,
		Category:    r.Category,
		ReturnedQty: r.Quantity,
		Price:       r.Price,
		TotalValue:  r.TotalValue,
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
	}
}

func NewSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:        s.ID,
		SaleID:    s.SaleID,
		Customer:  s.Customer,
		Email:     s.Email,
		ItemCount: s.ItemCount,
		Total:     s.Total,
		Status:    string(s.Status),
		Date:      s.Date,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
