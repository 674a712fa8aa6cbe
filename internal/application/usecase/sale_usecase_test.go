package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/application/usecase"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/memory"
)

func newSaleUC() *usecase.SaleUseCase {
	store := memory.New()
	repo := memory.NewSaleRepository(store)
	return usecase.NewSaleUseCase(memory.NewTxRunner(store), repo, usecase.NewSequenceIDGenerator(repo))
}

func saleRequest() dto.CreateSaleRequest {
	total := decimal.RequireFromString("99.90")
	return dto.CreateSaleRequest{Customer: "Ana", Email: "ana@example.com", ItemCount: 1, Total: &total}
}

func TestSaleUseCase_IdentificadoresSecuenciales(t *testing.T) {
	ctx := context.Background()
	uc := newSaleUC()

	first, err := uc.Create(ctx, saleRequest())
	require.NoError(t, err)
	second, err := uc.Create(ctx, saleRequest())
	require.NoError(t, err)

	assert.Equal(t, "ORD-1001", first.SaleID)
	assert.Equal(t, "ORD-1002", second.SaleID)
	assert.Equal(t, "Pending", first.Status)
}

func TestSaleUseCase_IdentificadoresUnicosEnConcurrencia(t *testing.T) {
	ctx := context.Background()
	uc := newSaleUC()

	const n = 40
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]bool, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := uc.Create(ctx, saleRequest())
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			ids[s.SaleID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, ids, n)
}

func TestSaleUseCase_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := newSaleUC()

	mutations := map[string]func(*dto.CreateSaleRequest){
		"sin cliente":     func(r *dto.CreateSaleRequest) { r.Customer = " " },
		"email inválido":  func(r *dto.CreateSaleRequest) { r.Email = "no-es-email" },
		"email con alias": func(r *dto.CreateSaleRequest) { r.Email = "Ana <ana@example.com>" },
		"sin items":       func(r *dto.CreateSaleRequest) { r.ItemCount = 0 },
		"sin total":       func(r *dto.CreateSaleRequest) { r.Total = nil },
		"estado inválido": func(r *dto.CreateSaleRequest) { r.Status = "Lost" },
	}
	for name, mutate := range mutations {
		req := saleRequest()
		mutate(&req)
		_, err := uc.Create(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestSaleUseCase_ActualizarParcial(t *testing.T) {
	ctx := context.Background()
	uc := newSaleUC()
	s, err := uc.Create(ctx, saleRequest())
	require.NoError(t, err)

	status := "Completed"
	out, err := uc.Update(ctx, s.ID, dto.UpdateSaleRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Completed", out.Status)
	assert.Equal(t, "Ana", out.Customer)
	assert.Equal(t, s.SaleID, out.SaleID)

	_, err = uc.Update(ctx, "nope", dto.UpdateSaleRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, dto.ListQuery{Status: "Completed", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	_, err = uc.List(ctx, dto.ListQuery{Status: "Lost", Page: 1, Limit: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// collidingIDs devuelve primero un saleId ya usado para forzar el reintento.
type collidingIDs struct {
	mu   sync.Mutex
	next []string
}

func (g *collidingIDs) NextSaleID(context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.next) == 0 {
		return "", errors.New("sin identificadores")
	}
	id := g.next[0]
	g.next = g.next[1:]
	return id, nil
}

func TestSaleUseCase_ReintentaAnteColision(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := memory.NewSaleRepository(store)
	ids := &collidingIDs{next: []string{"ORD-2000", "ORD-2000", "ORD-2001"}}
	uc := usecase.NewSaleUseCase(memory.NewTxRunner(store), repo, ids)

	first, err := uc.Create(ctx, saleRequest())
	require.NoError(t, err)
	assert.Equal(t, "ORD-2000", first.SaleID)

	second, err := uc.Create(ctx, saleRequest())
	require.NoError(t, err)
	assert.Equal(t, "ORD-2001", second.SaleID)
}

func TestSaleUseCase_EliminarInexistente(t *testing.T) {
	assert.ErrorIs(t, newSaleUC().Delete(context.Background(), "nope"), domain.ErrNotFound)
}
