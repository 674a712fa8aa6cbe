package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// IdentifierGenerator entrega identificadores de venta únicos, también bajo creación concurrente.
type IdentifierGenerator interface {
	NextSaleID(ctx context.Context) (string, error)
}

// SequenceIDGenerator formatea ORD-NNNN sobre una secuencia atómica del almacén.
type SequenceIDGenerator struct {
	seq repository.SaleSequence
}

// NewSequenceIDGenerator construye el generador por defecto.
func NewSequenceIDGenerator(seq repository.SaleSequence) *SequenceIDGenerator {
	return &SequenceIDGenerator{seq: seq}
}

// NextSaleID toma el siguiente número de la secuencia.
func (g *SequenceIDGenerator) NextSaleID(ctx context.Context) (string, error) {
	n, err := g.seq.NextSaleNumber(ctx)
	if err != nil {
		return "", fmt.Errorf("siguiente número de venta: %w", err)
	}
	return entity.FormatSaleID(n), nil
}
