package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository adaptador en memoria para categorías.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*entity.Category
}

// NewCategoryRepository construye el repositorio vacío.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[string]*entity.Category)}
}

// Create guarda una categoría.
func (r *CategoryRepository) Create(category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

// GetByID devuelve la categoría o nil si no existe.
func (r *CategoryRepository) GetByID(id string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

// List lista categorías por nombre.
func (r *CategoryRepository) List(limit, offset int) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Category
	for _, c := range r.categories {
		clone := *c
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Update reemplaza la categoría.
func (r *CategoryRepository) Update(category *entity.Category) error {
	return r.Create(category)
}

// Delete borra una categoría.
func (r *CategoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}
