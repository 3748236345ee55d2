package menu

import "context"

// Repository defines all database operations for the menu catalog.
type Repository interface {
	// List returns the whole catalog with requirements hydrated.
	List(ctx context.Context) ([]Recipe, error)

	// GetByName returns one recipe, matched case-insensitively.
	GetByName(ctx context.Context, name string) (*Recipe, error)

	// Create stores a recipe and its requirement rows atomically.
	Create(ctx context.Context, recipe *Recipe) error

	Delete(ctx context.Context, name string) error

	SetIconURL(ctx context.Context, name string, url string) error
}
