package inventory

import (
	"context"
	"errors"
	"io"
	"sort"
)

type Service struct {
	ledger     *Ledger
	repo       Repository
	reconciler *Reconciler
}

func NewService(ledger *Ledger, repo Repository) *Service {
	return &Service{
		ledger:     ledger,
		repo:       repo,
		reconciler: NewReconciler(ledger),
	}
}

// Load rebuilds the ledger wholesale from the database. Called once
// at boot; the ledger is authoritative afterwards.
func (s *Service) Load(ctx context.Context) error {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	s.ledger.ReplaceAll(rows)
	return nil
}

// --------------------------------------------------
// Ledger operations (write-behind to Postgres)
// --------------------------------------------------

func (s *Service) Add(ctx context.Context, ing Ingredient) (Ingredient, error) {
	if NormalizeName(ing.Name) == "" {
		return Ingredient{}, errors.New("ingredient name is required")
	}
	if ing.Quantity <= 0 {
		return Ingredient{}, errors.New("quantity must be greater than zero")
	}
	if NormalizeUnit(ing.Unit) == "" {
		ing.Unit = "unid"
	}

	s.ledger.Upsert(ing)

	merged, _ := s.ledger.FindByName(ing.Name)
	if err := s.repo.Upsert(ctx, merged); err != nil {
		return merged, err
	}
	return merged, nil
}

func (s *Service) SetQuantity(ctx context.Context, name string, quantity float64) (bool, error) {
	if quantity < 0 {
		return false, errors.New("quantity cannot be negative")
	}
	if !s.ledger.SetQuantity(name, quantity) {
		return false, nil
	}
	return true, s.repo.SetQuantity(ctx, name, quantity)
}

func (s *Service) Remove(ctx context.Context, name string) error {
	s.ledger.Remove(name)
	return s.repo.Delete(ctx, name)
}

func (s *Service) List() []Ingredient {
	items := s.ledger.Items()
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

// --------------------------------------------------
// Stock reporting
// --------------------------------------------------

type Stats struct {
	TotalItems int     `json:"total_items"`
	TotalStock float64 `json:"total_stock"`
	LowStock   int     `json:"low_stock"`
}

func (s *Service) Stats() Stats {
	items := s.ledger.Items()
	st := Stats{TotalItems: len(items)}
	for _, ing := range items {
		st.TotalStock += ing.Quantity
		if belowMinimum(ing) {
			st.LowStock++
		}
	}
	return st
}

// LowStock lists entries that have fallen under their configured
// minimum, for replenishment planning.
func (s *Service) LowStock() []Ingredient {
	var out []Ingredient
	for _, ing := range s.ledger.Items() {
		if belowMinimum(ing) {
			out = append(out, ing)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func belowMinimum(ing Ingredient) bool {
	return ing.MinQuantity > 0 && ing.Quantity < ing.MinQuantity
}

// --------------------------------------------------
// Bulk import (whole batch commits or nothing does)
// --------------------------------------------------

// Import reconciles a CSV feed into the ledger. Row-level problems
// are collected in the summary without aborting the batch; the staged
// result is then committed to Postgres in one transaction and applied
// to the ledger only after that succeeds. A failed commit adds a
// single error to the summary and changes nothing.
func (s *Service) Import(ctx context.Context, src io.Reader) ImportSummary {
	sum, staged := s.reconciler.Stage(src)
	if len(staged) == 0 {
		return sum
	}

	if err := s.repo.SaveAll(ctx, staged); err != nil {
		sum.Created = 0
		sum.Updated = 0
		sum.Errors++
		sum.Details = append(sum.Details, "commit failed: "+err.Error())
		return sum
	}

	s.ledger.Reconcile(staged)
	return sum
}
