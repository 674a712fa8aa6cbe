package entity

import "time"

// Category representa una categoría de productos.
// ProductCount solo lo modifica CategoryRepository.AdjustProductCount desde el libro de productos.
type Category struct {
	ID           string
	Name         string // único, sin espacios en los extremos
	Description  string
	ProductCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
