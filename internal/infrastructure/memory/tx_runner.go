package memory

import (
	"context"

	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn sobre una copia del estado con el lock de escritura tomado.
// Si fn devuelve error la copia se descarta; si no, reemplaza al estado del almacén.
type TxRunner struct {
	store *Store
}

// NewTxRunner crea el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

func (r *TxRunner) Run(ctx context.Context, fn func(tx inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := r.store.st.clone()
	tx := txAccess{st: work}
	if err := fn(inventory.TxRepos{
		Categories: &CategoryRepo{db: tx},
		Products:   &ProductRepo{db: tx},
		Returns:    &ReturnRepo{db: tx},
		Sales:      &SaleRepo{db: tx, store: r.store},
	}); err != nil {
		return err
	}
	r.store.st = work
	return nil
}
