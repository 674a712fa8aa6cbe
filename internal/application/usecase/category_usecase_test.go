package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/application/usecase"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/memory"
)

func newCategoryUC() (*usecase.CategoryUseCase, *memory.Store) {
	store := memory.New()
	return usecase.NewCategoryUseCase(memory.NewTxRunner(store), memory.NewCategoryRepository(store)), store
}

func strPtr(s string) *string { return &s }

func TestCategoryUseCase_CrearYDuplicado(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCategoryUC()

	c, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "  Herramientas ", Description: "manuales"})
	require.NoError(t, err)
	assert.Equal(t, "Herramientas", c.Name)
	assert.Equal(t, 0, c.ProductCount)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "Herramientas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryUseCase_Actualizar(t *testing.T) {
	ctx := context.Background()
	uc, _ := newCategoryUC()
	a, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Pinturas"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "Plomería"})
	require.NoError(t, err)

	out, err := uc.Update(ctx, a.ID, dto.UpdateCategoryRequest{Description: strPtr("vinilos y esmaltes")})
	require.NoError(t, err)
	assert.Equal(t, "Pinturas", out.Name)
	assert.Equal(t, "vinilos y esmaltes", out.Description)

	_, err = uc.Update(ctx, a.ID, dto.UpdateCategoryRequest{Name: strPtr("Plomería")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, "nope", dto.UpdateCategoryRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Pinturas", list[0].Name)
}

func TestCategoryUseCase_EliminarConProductosEsConflicto(t *testing.T) {
	ctx := context.Background()
	uc, store := newCategoryUC()
	c, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Jardín"})
	require.NoError(t, err)
	require.NoError(t, memory.NewProductRepository(store).Create(ctx, &entity.Product{ID: "p1", Name: "Pala", CategoryID: c.ID}))

	err = uc.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.GetByID(ctx, c.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, "nope"), domain.ErrNotFound)
}
