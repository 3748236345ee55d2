package menu

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// MemoryRepository keeps the catalog in a map. Used in tests.
type MemoryRepository struct {
	recipes map[string]Recipe
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{recipes: make(map[string]Recipe)}
}

func (r *MemoryRepository) List(ctx context.Context) ([]Recipe, error) {
	out := make([]Recipe, 0, len(r.recipes))
	for _, rec := range r.recipes {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) GetByName(ctx context.Context, name string) (*Recipe, error) {
	rec, ok := r.recipes[strings.ToLower(name)]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (r *MemoryRepository) Create(ctx context.Context, recipe *Recipe) error {
	recipe.ID = uuid.New().String()
	r.recipes[strings.ToLower(recipe.Name)] = *recipe
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, name string) error {
	key := strings.ToLower(name)
	if _, ok := r.recipes[key]; !ok {
		return ErrNotFound
	}
	delete(r.recipes, key)
	return nil
}

func (r *MemoryRepository) SetIconURL(ctx context.Context, name string, url string) error {
	rec, ok := r.recipes[strings.ToLower(name)]
	if !ok {
		return ErrNotFound
	}
	rec.IconURL = url
	r.recipes[strings.ToLower(name)] = rec
	return nil
}
