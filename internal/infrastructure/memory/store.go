// Package memory implementa los puertos de persistencia en memoria (tests y desarrollo local).
//
// Concurrencia: un único RWMutex. Las operaciones sueltas toman el lock por llamada; TxRunner.Run
// toma el lock de escritura durante toda la función y trabaja sobre una copia del estado que solo
// reemplaza al estado vigente si fn termina sin error (rollback = descartar la copia).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

type state struct {
	categories map[string]entity.Category
	products   map[string]entity.Product
	returns    map[string]entity.ProductReturn
	sales      map[string]entity.Sale
}

func newState() *state {
	return &state{
		categories: make(map[string]entity.Category),
		products:   make(map[string]entity.Product),
		returns:    make(map[string]entity.ProductReturn),
		sales:      make(map[string]entity.Sale),
	}
}

// clone copia los mapas. Las entidades son valores; SKU apunta a strings inmutables.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.returns {
		c.returns[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	return c
}

// access abstrae cómo un repositorio llega al estado: con lock propio (Store) o
// dentro de una transacción que ya tiene el lock (txAccess).
type access interface {
	read(ctx context.Context, fn func(*state) error) error
	write(ctx context.Context, fn func(*state) error) error
}

// Store almacén en memoria compartido por todos los repositorios.
type Store struct {
	mu      sync.RWMutex
	st      *state
	saleSeq atomic.Int64
}

// New crea un almacén vacío; la secuencia de ventas arranca en entity.FirstSaleNumber.
func New() *Store {
	s := &Store{st: newState()}
	s.saleSeq.Store(entity.FirstSaleNumber - 1)
	return s
}

func (s *Store) read(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) write(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

type txAccess struct {
	st *state
}

func (t txAccess) read(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.st)
}

func (t txAccess) write(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.st)
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

// paginate ordena por CreatedAt DESC (id como desempate) y recorta la ventana.
func paginate[T any](items []T, createdAt func(T) int64, id func(T) string, number, limit int) []T {
	sort.Slice(items, func(i, j int) bool {
		ci, cj := createdAt(items[i]), createdAt(items[j])
		if ci != cj {
			return ci > cj
		}
		return id(items[i]) > id(items[j])
	})
	if limit <= 0 {
		return items
	}
	start := 0
	if number > 1 {
		start = (number - 1) * limit
	}
	if start >= len(items) {
		return items[:0]
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
