package inventory

import (
	"context"

	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Returns    repository.ReturnRepository
	Sales      repository.SaleRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún efecto visible (Rollback); si no, Commit.
// Garantiza atomicidad para los cambios que cruzan entidades (conteos de categoría, devoluciones)
// y para las actualizaciones parciales (lectura con GetForUpdate y escritura en la misma tx).
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
