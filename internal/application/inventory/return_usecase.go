package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	stockcalc "github.com/jhoicas/ferreteria-api/internal/domain/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// ReturnUseCase libro de devoluciones. Registrar una devolución incrementa Product.Returned
// en la misma transacción: o quedan ambos cambios o ninguno.
type ReturnUseCase struct {
	txRunner   TxRunner
	returnRepo repository.ReturnRepository
	now        func() time.Time
}

// NewReturnUseCase construye el caso de uso.
func NewReturnUseCase(txRunner TxRunner, returnRepo repository.ReturnRepository) *ReturnUseCase {
	return &ReturnUseCase{txRunner: txRunner, returnRepo: returnRepo, now: time.Now}
}

// Create bloquea el producto, suma la cantidad devuelta, re-deriva stock/estado y guarda la devolución
// con totalValue = returnedQty × price.
func (uc *ReturnUseCase) Create(ctx context.Context, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, domain.Invalid("productId es requerido")
	}
	if in.ReturnedQty < 1 {
		return nil, domain.Invalid("returnedQty debe ser >= 1")
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return nil, err
		}
	}

	var ret entity.ProductReturn
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		product, err := tx.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto")
		}
		now := uc.now()

		product.Returned += in.ReturnedQty
		updated := stockcalc.DeriveStockAndStatus(*product)
		updated.UpdatedAt = now
		if err := tx.Products.Update(ctx, &updated); err != nil {
			return err
		}

		categoryLabel := strings.TrimSpace(in.Category)
		if categoryLabel == "" {
			category, err := tx.Categories.GetByID(ctx, product.CategoryID)
			if err != nil {
				return err
			}
			if category != nil {
				categoryLabel = category.Name
			}
		}
		price := product.Price
		if in.Price != nil {
			price = *in.Price
		}
		ret = entity.ProductReturn{
			ID:         uuid.New().String(),
			ProductID:  product.ID,
			Name:       firstNonEmpty(in.Name, product.Name),
			SKU:        firstNonEmpty(in.SKU, product.SKUValue()),
			Category:   categoryLabel,
			Quantity:   in.ReturnedQty,
			Price:      price,
			TotalValue: stockcalc.ReturnValue(in.ReturnedQty, price),
			Date:       now,
			CreatedAt:  now,
		}
		return tx.Returns.Create(ctx, &ret)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewReturnResponse(&ret)
	return &out, nil
}

// List lista devoluciones por keyword (nombre/SKU) y rango de fechas.
func (uc *ReturnUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.ReturnListResponse, error) {
	page := q.PageRequest()
	list, total, err := uc.returnRepo.List(ctx, repository.ReturnFilter{Keyword: q.Keyword, Created: q.DateRange()}, page)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReturnResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.NewReturnResponse(r))
	}
	return &dto.ReturnListResponse{Items: items, PageResponse: dto.NewPageResponse(total, page)}, nil
}

// Stats suma cantidades y valores de todas las devoluciones registradas.
func (uc *ReturnUseCase) Stats(ctx context.Context) (*dto.ReturnStatsResponse, error) {
	s, err := uc.returnRepo.Summarize(ctx, repository.ReturnFilter{})
	if err != nil {
		return nil, err
	}
	return &dto.ReturnStatsResponse{
		TotalReturned:      s.TotalReturned,
		TotalValue:         s.TotalValue,
		TotalReturnRecords: s.TotalRecords,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
