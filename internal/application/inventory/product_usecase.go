package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	stockcalc "github.com/jhoicas/ferreteria-api/internal/domain/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// ProductUseCase libro de productos. Toda escritura deriva Stock/Status y ajusta los conteos
// de categoría dentro de la misma transacción.
type ProductUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	now          func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// Create valida, deriva stock/estado, inserta el producto e incrementa productCount de su categoría.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name es requerido")
	}
	categoryID := strings.TrimSpace(in.CategoryID)
	if categoryID == "" {
		return nil, domain.Invalid("categoryId es requerido")
	}
	if in.TotalStock == nil {
		return nil, domain.Invalid("totalStock es requerido")
	}
	if in.Price == nil {
		return nil, domain.Invalid("price es requerido")
	}
	sold, returned := intOr(in.Sold, 0), intOr(in.Returned, 0)
	if err := validateQuantities(*in.TotalStock, sold, returned); err != nil {
		return nil, err
	}
	if err := validatePrice(*in.Price); err != nil {
		return nil, err
	}

	now := uc.now()
	product := stockcalc.DeriveStockAndStatus(entity.Product{
		ID:         uuid.New().String(),
		Name:       name,
		SKU:        NormalizeSKU(in.SKU),
		CategoryID: categoryID,
		TotalStock: *in.TotalStock,
		Sold:       sold,
		Returned:   returned,
		Price:      *in.Price,
		CreatedAt:  now,
		UpdatedAt:  now,
	})

	var categoryName string
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		category, err := tx.Categories.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.Invalid("la categoría %s no existe", categoryID)
		}
		categoryName = category.Name
		if err := tx.Products.Create(ctx, &product); err != nil {
			return err
		}
		return tx.Categories.AdjustProductCount(ctx, categoryID, 1)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(&product, categoryName)
	return &out, nil
}

// GetByID obtiene un producto con el nombre de su categoría.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto")
	}
	category, err := uc.categoryRepo.GetByID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	var categoryName string
	if category != nil {
		categoryName = category.Name
	}
	out := dto.NewProductResponse(product, categoryName)
	return &out, nil
}

// Update aplica solo los campos presentes, re-deriva stock/estado y, si cambia la categoría,
// mueve el conteo de la categoría anterior a la nueva en la misma transacción.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateUpdate(in); err != nil {
		return nil, err
	}

	var out dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		product, err := tx.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto")
		}
		oldCategoryID := product.CategoryID

		if in.Name != nil {
			product.Name = strings.TrimSpace(*in.Name)
		}
		if in.SKU != nil {
			product.SKU = NormalizeSKU(in.SKU)
		}
		if in.CategoryID != nil {
			product.CategoryID = strings.TrimSpace(*in.CategoryID)
		}
		if in.TotalStock != nil {
			product.TotalStock = *in.TotalStock
		}
		if in.Sold != nil {
			product.Sold = *in.Sold
		}
		if in.Returned != nil {
			product.Returned = *in.Returned
		}
		if in.Price != nil {
			product.Price = *in.Price
		}
		updated := stockcalc.DeriveStockAndStatus(*product)
		updated.UpdatedAt = uc.now()

		category, err := tx.Categories.GetByID(ctx, updated.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.Invalid("la categoría %s no existe", updated.CategoryID)
		}
		if updated.CategoryID != oldCategoryID {
			if err := moveProductCount(ctx, tx.Categories, oldCategoryID, updated.CategoryID); err != nil {
				return err
			}
		}
		if err := tx.Products.Update(ctx, &updated); err != nil {
			return err
		}
		out = dto.NewProductResponse(&updated, category.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete decrementa el conteo de la categoría (piso 0) y elimina el producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(tx TxRepos) error {
		product, err := tx.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto")
		}
		if err := tx.Categories.AdjustProductCount(ctx, product.CategoryID, -1); err != nil {
			return err
		}
		return tx.Products.Delete(ctx, id)
	})
}

// List lista productos filtrando por keyword (nombre/SKU) y rango de fechas, sin resumen.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.ProductListResponse, error) {
	filter, err := q.ProductFilter()
	if err != nil {
		return nil, err
	}
	page := q.PageRequest()
	list, total, err := uc.productRepo.Search(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	items, err := ProductResponses(ctx, uc.categoryRepo, list)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Items: items, PageResponse: dto.NewPageResponse(total, page)}, nil
}

// Stats agrega sobre todos los productos: stock total, vendidos, devueltos, restante y conteos por estado.
func (uc *ProductUseCase) Stats(ctx context.Context) (*dto.ProductSummaryResponse, error) {
	summary, err := uc.productRepo.Summarize(ctx, repository.ProductFilter{Stock: repository.FilterAll})
	if err != nil {
		return nil, err
	}
	out := dto.NewProductSummaryResponse(summary)
	return &out, nil
}

// ProductResponses mapea productos resolviendo el nombre de categoría con una sola lectura.
func ProductResponses(ctx context.Context, categories repository.CategoryRepository, list []*entity.Product) ([]dto.ProductResponse, error) {
	items := make([]dto.ProductResponse, 0, len(list))
	if len(list) == 0 {
		return items, nil
	}
	all, err := categories.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, c := range all {
		names[c.ID] = c.Name
	}
	for _, p := range list {
		items = append(items, dto.NewProductResponse(p, names[p.CategoryID]))
	}
	return items, nil
}

// NormalizeSKU recorta y pasa a mayúsculas; vacío equivale a sin SKU.
func NormalizeSKU(sku *string) *string {
	if sku == nil {
		return nil
	}
	s := strings.ToUpper(strings.TrimSpace(*sku))
	if s == "" {
		return nil
	}
	return &s
}

// moveProductCount ajusta ambas categorías en orden ascendente de id para que dos
// reasignaciones cruzadas no se bloqueen mutuamente.
func moveProductCount(ctx context.Context, categories repository.CategoryRepository, fromID, toID string) error {
	first, firstDelta, second, secondDelta := fromID, -1, toID, 1
	if toID < fromID {
		first, firstDelta, second, secondDelta = toID, 1, fromID, -1
	}
	if err := categories.AdjustProductCount(ctx, first, firstDelta); err != nil {
		return err
	}
	return categories.AdjustProductCount(ctx, second, secondDelta)
}

func validateUpdate(in dto.UpdateProductRequest) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return domain.Invalid("name no puede estar vacío")
	}
	if in.CategoryID != nil && strings.TrimSpace(*in.CategoryID) == "" {
		return domain.Invalid("categoryId no puede estar vacío")
	}
	for field, v := range map[string]*int{"totalStock": in.TotalStock, "sold": in.Sold, "returned": in.Returned} {
		if v != nil && *v < 0 {
			return domain.Invalid("%s debe ser >= 0", field)
		}
	}
	if in.Price != nil {
		return validatePrice(*in.Price)
	}
	return nil
}

func validateQuantities(totalStock, sold, returned int) error {
	switch {
	case totalStock < 0:
		return domain.Invalid("totalStock debe ser >= 0")
	case sold < 0:
		return domain.Invalid("sold debe ser >= 0")
	case returned < 0:
		return domain.Invalid("returned debe ser >= 0")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.Invalid("price debe ser >= 0")
	}
	return nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
