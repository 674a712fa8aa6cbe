package analytics_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/application/analytics"
	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	stockcalc "github.com/jhoicas/ferreteria-api/internal/domain/inventory"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/memory"
)

type seeded struct {
	products   *memory.ProductRepo
	categories *memory.CategoryRepo
}

// seed crea una categoría y productos ya derivados, uno por día a partir del 1 de mayo.
func seed(t *testing.T, specs ...entity.Product) seeded {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	s := seeded{products: memory.NewProductRepository(store), categories: memory.NewCategoryRepository(store)}
	require.NoError(t, s.categories.Create(ctx, &entity.Category{ID: "c1", Name: "Herramientas"}))
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, p := range specs {
		p.ID = fmt.Sprintf("p%03d", i)
		p.CategoryID = "c1"
		p.Price = decimal.NewFromInt(10)
		p.CreatedAt = base.AddDate(0, 0, i)
		p = stockcalc.DeriveStockAndStatus(p)
		require.NoError(t, s.products.Create(ctx, &p))
	}
	return s
}

func TestSearchProducts_ResumenIgnoraPaginacion(t *testing.T) {
	s := seed(t,
		entity.Product{Name: "Tornillo", TotalStock: 100, Sold: 95},
		entity.Product{Name: "Tuerca", TotalStock: 8},
		entity.Product{Name: "Arandela", TotalStock: 30},
		entity.Product{Name: "Clavo", TotalStock: 3, Sold: 3},
	)
	uc := analytics.NewSearchUseCase(s.products, s.categories)

	out, err := uc.SearchProducts(context.Background(), dto.ListQuery{Filter: "lowStock", Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 2, out.TotalPages)
	assert.Equal(t, 2, out.Summary.TotalProducts)
	assert.Equal(t, 2, out.Summary.LowStockCount)
	assert.Equal(t, 13, out.Summary.TotalRemaining)
	assert.Equal(t, "Tuerca", out.Items[0].Name, "más reciente primero")
	assert.Equal(t, "Herramientas", out.Items[0].Category.Name)

	out, err = uc.SearchProducts(context.Background(), dto.ListQuery{Filter: "outOfStock", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Clavo", out.Items[0].Name)
	assert.Equal(t, 1, out.Summary.OutOfStockCount)
}

func TestSearchProducts_LowStockConKeywordYFechas(t *testing.T) {
	s := seed(t,
		entity.Product{Name: "Tornillo drywall", TotalStock: 5},    // 1 may, fuera del rango
		entity.Product{Name: "Tornillo madera", TotalStock: 4},     // 2 may
		entity.Product{Name: "Tornillo hexagonal", TotalStock: 50}, // 3 may, In Stock
		entity.Product{Name: "Martillo", TotalStock: 2},            // 4 may, no coincide keyword
		entity.Product{Name: "Tornillo mariposa", TotalStock: 7},   // 5 may, fuera del rango
	)
	uc := analytics.NewSearchUseCase(s.products, s.categories)

	from := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 4, 23, 59, 59, 0, time.UTC)
	out, err := uc.SearchProducts(context.Background(), dto.ListQuery{
		Keyword: "tornillo", Filter: "lowStock", StartDate: &from, EndDate: &to, Page: 1, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Tornillo madera", out.Items[0].Name)
	assert.Equal(t, "Low Stock", out.Items[0].Status)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, 1, out.Summary.TotalProducts)
	assert.Equal(t, 1, out.Summary.LowStockCount)
	assert.Equal(t, 4, out.Summary.TotalRemaining)
}

func TestSearchProducts_KeywordYFechas(t *testing.T) {
	s := seed(t,
		entity.Product{Name: "Tornillo drywall", TotalStock: 10},
		entity.Product{Name: "Tornillo madera", TotalStock: 10},
		entity.Product{Name: "Martillo", TotalStock: 10},
	)
	uc := analytics.NewSearchUseCase(s.products, s.categories)

	out, err := uc.SearchProducts(context.Background(), dto.ListQuery{Keyword: "TORNILLO", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)

	start := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 2, 23, 59, 59, 0, time.UTC)
	out, err = uc.SearchProducts(context.Background(), dto.ListQuery{StartDate: &start, EndDate: &end, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Tornillo madera", out.Items[0].Name)
}

func TestSearchProducts_SinResultados(t *testing.T) {
	s := seed(t)
	uc := analytics.NewSearchUseCase(s.products, s.categories)

	out, err := uc.SearchProducts(context.Background(), dto.ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
	assert.Equal(t, 0, out.Total)
	assert.True(t, out.Summary.InventoryValue.IsZero())
}

func TestSearchProducts_FiltroInvalido(t *testing.T) {
	s := seed(t)
	uc := analytics.NewSearchUseCase(s.products, s.categories)

	_, err := uc.SearchProducts(context.Background(), dto.ListQuery{Filter: "vendidos", Page: 1, Limit: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListReturnedProducts_IgnoraSelector(t *testing.T) {
	s := seed(t,
		entity.Product{Name: "Taladro", TotalStock: 5, Returned: 2},
		entity.Product{Name: "Sierra", TotalStock: 5},
	)
	uc := analytics.NewSearchUseCase(s.products, s.categories)

	out, err := uc.ListReturnedProducts(context.Background(), dto.ListQuery{Filter: "outOfStock", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Taladro", out.Items[0].Name)
	assert.Equal(t, 2, out.Summary.TotalReturned)
	assert.True(t, decimal.NewFromInt(20).Equal(out.Summary.ReturnedValue))
}
