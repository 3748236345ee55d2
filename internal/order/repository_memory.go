package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps receipts in a slice. Used in tests.
type MemoryRepository struct {
	receipts []Receipt
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Save(ctx context.Context, receipt *Receipt) error {
	receipt.ID = uuid.New().String()
	receipt.CreatedAt = time.Now().UTC()
	r.receipts = append(r.receipts, *receipt)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]Receipt, error) {
	out := make([]Receipt, len(r.receipts))
	copy(out, r.receipts)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
