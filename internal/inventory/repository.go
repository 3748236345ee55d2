package inventory

import "context"

// Repository persists ledger rows. The in-memory ledger stays
// authoritative during a session; the repository is written behind it
// and read once at boot.
type Repository interface {
	// List returns all active rows, ordered by name.
	List(ctx context.Context) ([]Ingredient, error)

	// Upsert inserts or replaces a row matched by normalized name.
	Upsert(ctx context.Context, ing Ingredient) error

	// SetQuantity replaces the stored quantity of the named row.
	SetQuantity(ctx context.Context, name string, quantity float64) error

	// Delete deactivates the named row.
	Delete(ctx context.Context, name string) error

	// SaveAll upserts every row in a single transaction. Used by the
	// bulk import commit, which is all-or-nothing.
	SaveAll(ctx context.Context, rows []Ingredient) error
}
