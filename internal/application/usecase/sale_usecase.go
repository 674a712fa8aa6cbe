package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// maxSaleIDAttempts reintentos ante colisión de saleId (restricción única del almacén).
const maxSaleIDAttempts = 3

// SaleUseCase libro de ventas. Las ventas no descuentan stock.
type SaleUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.SaleRepository
	ids      IdentifierGenerator
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner inventory.TxRunner, repo repository.SaleRepository, ids IdentifierGenerator) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, repo: repo, ids: ids, now: time.Now}
}

// Create registra la venta con un saleId nuevo; si el almacén reporta duplicado se reintenta.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	customer := strings.TrimSpace(in.Customer)
	if customer == "" {
		return nil, domain.Invalid("customer es requerido")
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if in.ItemCount < 1 {
		return nil, domain.Invalid("itemCount debe ser >= 1")
	}
	if in.Total == nil {
		return nil, domain.Invalid("total es requerido")
	}
	if err := validateTotal(*in.Total); err != nil {
		return nil, err
	}
	status := entity.SaleStatusPending
	if in.Status != "" {
		if status, err = parseSaleStatus(in.Status); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		Customer:  customer,
		Email:     email,
		ItemCount: in.ItemCount,
		Total:     *in.Total,
		Status:    status,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for attempt := 1; ; attempt++ {
		if sale.SaleID, err = uc.ids.NextSaleID(ctx); err != nil {
			return nil, err
		}
		err = uc.repo.Create(ctx, sale)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrDuplicate) || attempt == maxSaleIDAttempts {
			return nil, err
		}
	}
	out := dto.NewSaleResponse(sale)
	return &out, nil
}

// GetByID obtiene una venta por ID.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("venta")
	}
	out := dto.NewSaleResponse(sale)
	return &out, nil
}

// Update aplica solo los campos presentes. Lectura y escritura van en la misma transacción con la
// fila bloqueada, así dos actualizaciones parciales concurrentes no se pisan.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	var out dto.SaleResponse
	err := uc.txRunner.Run(ctx, func(tx inventory.TxRepos) error {
		sale, err := tx.Sales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.NotFound("venta")
		}
		if err := applySaleChanges(sale, in); err != nil {
			return err
		}
		sale.UpdatedAt = uc.now()
		if err := tx.Sales.Update(ctx, sale); err != nil {
			return err
		}
		out = dto.NewSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func applySaleChanges(sale *entity.Sale, in dto.UpdateSaleRequest) error {
	var err error
	if in.Customer != nil {
		customer := strings.TrimSpace(*in.Customer)
		if customer == "" {
			return domain.Invalid("customer no puede estar vacío")
		}
		sale.Customer = customer
	}
	if in.Email != nil {
		if sale.Email, err = normalizeEmail(*in.Email); err != nil {
			return err
		}
	}
	if in.ItemCount != nil {
		if *in.ItemCount < 1 {
			return domain.Invalid("itemCount debe ser >= 1")
		}
		sale.ItemCount = *in.ItemCount
	}
	if in.Total != nil {
		if err := validateTotal(*in.Total); err != nil {
			return err
		}
		sale.Total = *in.Total
	}
	if in.Status != nil {
		if sale.Status, err = parseSaleStatus(*in.Status); err != nil {
			return err
		}
	}
	return nil
}

// Delete elimina una venta.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.NotFound("venta")
	}
	return uc.repo.Delete(ctx, id)
}

// List lista ventas por keyword (saleId, cliente, email), rango de fechas y estado.
func (uc *SaleUseCase) List(ctx context.Context, q dto.ListQuery) (*dto.SaleListResponse, error) {
	if q.Status != "" {
		if _, err := parseSaleStatus(q.Status); err != nil {
			return nil, err
		}
	}
	page := q.PageRequest()
	filter := repository.SaleFilter{Keyword: q.Keyword, Created: q.DateRange(), Status: q.Status}
	list, total, err := uc.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.NewSaleResponse(s))
	}
	return &dto.SaleListResponse{Items: items, PageResponse: dto.NewPageResponse(total, page)}, nil
}

func parseSaleStatus(s string) (entity.SaleStatus, error) {
	status := entity.SaleStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", domain.Invalid("status inválido: %q", s)
	}
	return status, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.Invalid("email inválido")
	}
	return email, nil
}

func validateTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return domain.Invalid("total debe ser >= 0")
	}
	return nil
}
