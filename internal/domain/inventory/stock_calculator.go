package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

// LowStockThreshold por debajo de este stock (y por encima de 0) el producto queda en "Low Stock".
const LowStockThreshold = 10

// ClassifyStock implementa la clasificación de tres estados (servicio de dominio).
// 0 -> Out of Stock; menor a LowStockThreshold -> Low Stock (incluye stock negativo); resto -> In Stock.
func ClassifyStock(stock int) entity.StockStatus {
	switch {
	case stock == 0:
		return entity.StatusOutOfStock
	case stock < LowStockThreshold:
		return entity.StatusLowStock
	default:
		return entity.StatusInStock
	}
}

// DeriveStockAndStatus recalcula Stock = TotalStock - Sold + Returned y su Status.
// Función pura: todo camino que persiste un Product debe pasar por aquí. El stock no se recorta a 0.
func DeriveStockAndStatus(p entity.Product) entity.Product {
	p.Stock = p.TotalStock - p.Sold + p.Returned
	p.Status = ClassifyStock(p.Stock)
	return p
}

// ReturnValue valor total de una devolución: cantidad × precio unitario.
func ReturnValue(quantity int, price decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(price)
}
