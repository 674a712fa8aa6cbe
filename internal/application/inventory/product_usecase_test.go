package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/memory"
)

type fixture struct {
	store      *memory.Store
	categories *memory.CategoryRepo
	products   *memory.ProductRepo
	productUC  *inventory.ProductUseCase
	returnUC   *inventory.ReturnUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	tx := memory.NewTxRunner(store)
	f := &fixture{
		store:      store,
		categories: memory.NewCategoryRepository(store),
		products:   memory.NewProductRepository(store),
	}
	f.productUC = inventory.NewProductUseCase(tx, f.products, f.categories)
	f.returnUC = inventory.NewReturnUseCase(tx, memory.NewReturnRepository(store))
	return f
}

func (f *fixture) category(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.categories.Create(context.Background(), &entity.Category{ID: id, Name: name}))
}

func (f *fixture) productCount(t *testing.T, id string) int {
	t.Helper()
	c, err := f.categories.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c.ProductCount
}

func intPtr(n int) *int               { return &n }
func strPtr(s string) *string         { return &s }
func decPtr(n int64) *decimal.Decimal { d := decimal.NewFromInt(n); return &d }

func newProduct(name, categoryID string, totalStock int) dto.CreateProductRequest {
	return dto.CreateProductRequest{Name: name, CategoryID: categoryID, TotalStock: intPtr(totalStock), Price: decPtr(10)}
}

func TestProductUseCase_ConteosDeCategoria(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.category(t, "a", "Herramientas")
	f.category(t, "b", "Pinturas")

	p1, err := f.productUC.Create(ctx, newProduct("Martillo", "a", 10))
	require.NoError(t, err)
	_, err = f.productUC.Create(ctx, newProduct("Llave", "a", 10))
	require.NoError(t, err)
	assert.Equal(t, 2, f.productCount(t, "a"))

	_, err = f.productUC.Update(ctx, p1.ID, dto.UpdateProductRequest{CategoryID: strPtr("b")})
	require.NoError(t, err)
	assert.Equal(t, 1, f.productCount(t, "a"))
	assert.Equal(t, 1, f.productCount(t, "b"))

	// Actualizar sin cambiar categoría no mueve conteos.
	_, err = f.productUC.Update(ctx, p1.ID, dto.UpdateProductRequest{Name: strPtr("Martillo grande")})
	require.NoError(t, err)
	assert.Equal(t, 1, f.productCount(t, "b"))

	require.NoError(t, f.productUC.Delete(ctx, p1.ID))
	assert.Equal(t, 0, f.productCount(t, "b"))
	assert.Equal(t, 1, f.productCount(t, "a"))
}

func TestProductUseCase_CategoriaInexistente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.category(t, "a", "Herramientas")

	_, err := f.productUC.Create(ctx, newProduct("Martillo", "zzz", 10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := f.productUC.Create(ctx, newProduct("Martillo", "a", 10))
	require.NoError(t, err)
	_, err = f.productUC.Update(ctx, p.ID, dto.UpdateProductRequest{CategoryID: strPtr("zzz")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, f.productCount(t, "a"), "un fallo no deja conteos a medias")
}

func TestProductUseCase_DerivaStockYEstado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.category(t, "a", "Herramientas")

	req := newProduct("Taladro", "a", 12)
	req.Sold = intPtr(12)
	p, err := f.productUC.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, string(entity.StatusOutOfStock), p.Status)

	// Devolución parcial vía update: returned 0 -> 4 deja stock 4 (Low Stock).
	out, err := f.productUC.Update(ctx, p.ID, dto.UpdateProductRequest{Returned: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Stock)
	assert.Equal(t, string(entity.StatusLowStock), out.Status)
	assert.Equal(t, 12, out.TotalStock, "campos ausentes no cambian")

	// Cero explícito sí se aplica.
	out, err = f.productUC.Update(ctx, p.ID, dto.UpdateProductRequest{Sold: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 16, out.Stock)
	assert.Equal(t, string(entity.StatusInStock), out.Status)
}

func TestProductUseCase_Validaciones(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.category(t, "a", "Herramientas")

	cases := map[string]dto.CreateProductRequest{
		"sin nombre":         {CategoryID: "a", TotalStock: intPtr(1), Price: decPtr(1)},
		"sin categoría":      {Name: "X", TotalStock: intPtr(1), Price: decPtr(1)},
		"sin totalStock":     {Name: "X", CategoryID: "a", Price: decPtr(1)},
		"sin precio":         {Name: "X", CategoryID: "a", TotalStock: intPtr(1)},
		"precio negativo":    {Name: "X", CategoryID: "a", TotalStock: intPtr(1), Price: decPtr(-1)},
		"vendidos negativos": {Name: "X", CategoryID: "a", TotalStock: intPtr(1), Sold: intPtr(-2), Price: decPtr(1)},
	}
	for name, req := range cases {
		_, err := f.productUC.Create(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
	assert.Equal(t, 0, f.productCount(t, "a"))
}

func TestProductUseCase_SKUDuplicadoNoAfectaConteo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.category(t, "a", "Herramientas")

	req := newProduct("Martillo", "a", 10)
	req.SKU = strPtr("mar-1")
	_, err := f.productUC.Create(ctx, req)
	require.NoError(t, err)

	req.SKU = strPtr("MAR-1 ")
	_, err = f.productUC.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, f.productCount(t, "a"))
}

func TestProductUseCase_NoEncontrado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.productUC.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.productUC.Update(ctx, "nope", dto.UpdateProductRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.productUC.Delete(ctx, "nope"), domain.ErrNotFound)
}

func TestProductUseCase_Stats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.category(t, "a", "Herramientas")

	for _, stock := range []int{0, 5, 20} {
		_, err := f.productUC.Create(ctx, newProduct("P", "a", stock))
		require.NoError(t, err)
	}
	s, err := f.productUC.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalProducts)
	assert.Equal(t, 25, s.TotalStockAdded)
	assert.Equal(t, 25, s.TotalRemaining)
	assert.Equal(t, 1, s.LowStockCount)
	assert.Equal(t, 1, s.OutOfStockCount)
	assert.True(t, decimal.NewFromInt(250).Equal(s.InventoryValue))

	list, err := f.productUC.List(ctx, dto.ListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 2, list.TotalPages)
	assert.Equal(t, "Herramientas", list.Items[0].Category.Name)

	_, err = f.productUC.List(ctx, dto.ListQuery{Page: 1, Limit: 2, Filter: "raro"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
