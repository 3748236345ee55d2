package inventory

import (
	"context"
	"sort"
)

// MemoryRepository keeps rows in a map. Used in tests and when
// running without a database.
type MemoryRepository struct {
	rows map[string]Ingredient
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[string]Ingredient)}
}

func (r *MemoryRepository) List(ctx context.Context) ([]Ingredient, error) {
	out := make([]Ingredient, 0, len(r.rows))
	for _, ing := range r.rows {
		out = append(out, ing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) Upsert(ctx context.Context, ing Ingredient) error {
	ing.Name = NormalizeName(ing.Name)
	ing.Unit = NormalizeUnit(ing.Unit)
	r.rows[ing.Name] = ing
	return nil
}

func (r *MemoryRepository) SetQuantity(ctx context.Context, name string, quantity float64) error {
	key := NormalizeName(name)
	if ing, ok := r.rows[key]; ok {
		ing.Quantity = quantity
		r.rows[key] = ing
	}
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, name string) error {
	delete(r.rows, NormalizeName(name))
	return nil
}

func (r *MemoryRepository) SaveAll(ctx context.Context, batch []Ingredient) error {
	for _, ing := range batch {
		if err := r.Upsert(ctx, ing); err != nil {
			return err
		}
	}
	return nil
}
