package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	db access
}

// NewCategoryRepository construye el repositorio sobre el almacén.
func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{db: s}
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	return r.db.write(ctx, func(st *state) error {
		for _, c := range st.categories {
			if c.Name == category.Name {
				return domain.Duplicate("name")
			}
		}
		st.categories[category.ID] = *category
		return nil
	})
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.db.read(ctx, func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Category, error) {
	return r.GetByID(ctx, id)
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	err := r.db.read(ctx, func(st *state) error {
		for _, c := range st.categories {
			if c.Name == name {
				c := c
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	return r.db.write(ctx, func(st *state) error {
		current, ok := st.categories[category.ID]
		if !ok {
			return domain.NotFound("categoría")
		}
		for _, c := range st.categories {
			if c.ID != category.ID && c.Name == category.Name {
				return domain.Duplicate("name")
			}
		}
		current.Name = category.Name
		current.Description = category.Description
		current.UpdatedAt = category.UpdatedAt
		st.categories[category.ID] = current
		category.ProductCount = current.ProductCount
		return nil
	})
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var list []*entity.Category
	err := r.db.read(ctx, func(st *state) error {
		list = make([]*entity.Category, 0, len(st.categories))
		for _, c := range st.categories {
			c := c
			list = append(list, &c)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, err
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(st *state) error {
		if _, ok := st.categories[id]; !ok {
			return domain.NotFound("categoría")
		}
		delete(st.categories, id)
		return nil
	})
}

// AdjustProductCount suma delta con piso 0.
func (r *CategoryRepo) AdjustProductCount(ctx context.Context, id string, delta int) error {
	return r.db.write(ctx, func(st *state) error {
		c, ok := st.categories[id]
		if !ok {
			return domain.NotFound("categoría")
		}
		c.ProductCount = max(c.ProductCount+delta, 0)
		st.categories[id] = c
		return nil
	})
}
