package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
// productCount no se edita aquí: lo mantiene el libro de productos.
type CategoryUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(txRunner inventory.TxRunner, repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{txRunner: txRunner, repo: repo}
}

// Create crea una categoría con productCount 0. Nombre repetido -> ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name es requerido")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("name")
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	out := dto.NewCategoryResponse(category)
	return &out, nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NotFound("categoría")
	}
	out := dto.NewCategoryResponse(category)
	return &out, nil
}

// List lista todas las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.NewCategoryResponse(c))
	}
	return items, nil
}

// Update actualiza nombre y/o descripción sobre la fila bloqueada (GetForUpdate) dentro de una transacción.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	err := uc.txRunner.Run(ctx, func(tx inventory.TxRepos) error {
		category, err := tx.Categories.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.NotFound("categoría")
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.Invalid("name no puede estar vacío")
			}
			if name != category.Name {
				existing, err := tx.Categories.GetByName(ctx, name)
				if err != nil {
					return err
				}
				if existing != nil && existing.ID != category.ID {
					return domain.Duplicate("name")
				}
			}
			category.Name = name
		}
		if in.Description != nil {
			category.Description = strings.TrimSpace(*in.Description)
		}
		category.UpdatedAt = time.Now()
		if err := tx.Categories.Update(ctx, category); err != nil {
			return err
		}
		out = dto.NewCategoryResponse(category)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina una categoría solo si ningún producto vivo la referencia; si no, ErrConflict.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(tx inventory.TxRepos) error {
		category, err := tx.Categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.NotFound("categoría")
		}
		n, err := tx.Products.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.Conflict("la categoría tiene %d productos asociados", n)
		}
		return tx.Categories.Delete(ctx, id)
	})
}
