package order

import "context"

// Repository persists fulfilled orders.
type Repository interface {
	// Save writes the receipt and its items atomically.
	Save(ctx context.Context, receipt *Receipt) error

	// List returns receipts newest first.
	List(ctx context.Context) ([]Receipt, error)
}
