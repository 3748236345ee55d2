package order

import (
	"context"
	"errors"
	"fmt"

	"comanda/internal/inventory"
	"comanda/internal/menu"
)

var (
	// ErrUnavailable gates adding a line whose recipe cannot be
	// prepared even once from the current ledger.
	ErrUnavailable = errors.New("menu is not available")

	// ErrInsufficientStock means the consolidated demand of the whole
	// order could not be subtracted. Nothing was decremented.
	ErrInsufficientStock = errors.New("insufficient stock for order")

	ErrEmptyOrder = errors.New("order is empty")
)

// Catalog resolves menu names to recipes. Implemented by the menu
// service.
type Catalog interface {
	Get(ctx context.Context, name string) (*menu.Recipe, error)
}

// StockSyncer pushes post-checkout ledger state to persistence.
// Implemented by the inventory repository.
type StockSyncer interface {
	SaveAll(ctx context.Context, rows []inventory.Ingredient) error
}

// Service runs the single active order of the session against the
// shared ledger, and records fulfilled orders for history.
type Service struct {
	order   *Order
	ledger  *inventory.Ledger
	catalog Catalog
	repo    Repository
	stock   StockSyncer
}

func NewService(ledger *inventory.Ledger, catalog Catalog, repo Repository, stock StockSyncer) *Service {
	return &Service{
		order:   New(),
		ledger:  ledger,
		catalog: catalog,
		repo:    repo,
		stock:   stock,
	}
}

// --------------------------------------------------
// Build the order
// --------------------------------------------------

// AddItem adds a menu item to the order, gated by a per-unit
// availability check. The quantity being ordered does not factor into
// the gate; the checkout subtract is what enforces total demand.
func (s *Service) AddItem(ctx context.Context, name string, quantity int) error {
	recipe, err := s.catalog.Get(ctx, name)
	if err != nil {
		return err
	}
	if !recipe.IsAvailable(s.ledger) {
		return ErrUnavailable
	}
	s.order.Add(*recipe, quantity)
	return nil
}

func (s *Service) RemoveItem(name string, quantity int) bool {
	return s.order.Remove(name, quantity)
}

func (s *Service) Lines() []Line {
	return s.order.Lines()
}

func (s *Service) Total() float64 {
	return s.order.Total()
}

// --------------------------------------------------
// Checkout
// --------------------------------------------------

// Checkout fulfills the order against the ledger: all ingredients of
// all lines are subtracted atomically or the order stays as it was.
// On success the receipt is persisted and the decremented balances
// are pushed to Postgres. If either write fails the in-memory ledger
// remains authoritative and the receipt is returned alongside the
// error, so the fulfilled sale is not lost to the caller.
func (s *Service) Checkout(ctx context.Context) (*Receipt, error) {
	lines := s.order.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	total := s.order.Total()

	if !s.order.Fulfill(s.ledger) {
		return nil, ErrInsufficientStock
	}

	receipt := &Receipt{Total: total}
	for _, line := range lines {
		receipt.Items = append(receipt.Items, ReceiptItem{
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	if err := s.repo.Save(ctx, receipt); err != nil {
		return receipt, fmt.Errorf("order fulfilled but not recorded: %w", err)
	}
	if err := s.stock.SaveAll(ctx, s.ledger.Items()); err != nil {
		return receipt, fmt.Errorf("order fulfilled but stock not synced: %w", err)
	}
	return receipt, nil
}

// History lists fulfilled orders, newest first.
func (s *Service) History(ctx context.Context) ([]Receipt, error) {
	return s.repo.List(ctx)
}
