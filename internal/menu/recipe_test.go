package menu

import (
	"context"
	"errors"
	"testing"

	"comanda/internal/inventory"
)

func TestScaledIngredients(t *testing.T) {
	recipe := Recipe{
		Name: "Completo",
		Ingredients: []inventory.Ingredient{
			{Name: "pan", Unit: "unid", Quantity: 1},
			{Name: "palta", Unit: "kg", Quantity: 0.25},
		},
		Price:    2500,
		Quantity: 3,
	}

	scaled := recipe.ScaledIngredients()
	if scaled[0].Quantity != 3 || scaled[1].Quantity != 0.75 {
		t.Fatalf("wrong scaling: %+v", scaled)
	}

	// the recipe itself must be untouched
	if recipe.Ingredients[0].Quantity != 1 || recipe.Ingredients[1].Quantity != 0.25 {
		t.Fatalf("ScaledIngredients mutated the recipe: %+v", recipe.Ingredients)
	}
}

func TestIsAvailableIgnoresOrderedQuantity(t *testing.T) {
	ledger := inventory.NewLedger()
	ledger.Upsert(inventory.Ingredient{Name: "tomate", Unit: "kg", Quantity: 1})

	recipe := Recipe{
		Name: "Ensalada",
		Ingredients: []inventory.Ingredient{
			{Name: "tomate", Unit: "kg", Quantity: 1},
		},
		Quantity: 100,
	}

	// availability is per single unit; the multiplier never applies
	if !recipe.IsAvailable(ledger) {
		t.Fatalf("per-unit requirement is satisfiable; recipe should be available")
	}
}

func TestIsAvailableMatchesUnitSynonyms(t *testing.T) {
	ledger := inventory.NewLedger()
	ledger.Upsert(inventory.Ingredient{Name: "Palta", Unit: "Kilogramos", Quantity: 0.5})

	recipe := Recipe{
		Name: "Tostada",
		Ingredients: []inventory.Ingredient{
			{Name: "palta", Unit: "kg", Quantity: 0.2},
		},
	}
	if !recipe.IsAvailable(ledger) {
		t.Fatalf("synonym units should satisfy the requirement")
	}

	recipe.Ingredients[0].Quantity = 1
	if recipe.IsAvailable(ledger) {
		t.Fatalf("requirement above stock reported available")
	}
}

func TestZeroRequirementRecipeAlwaysAvailable(t *testing.T) {
	recipe := Recipe{Name: "Agua"}
	if !recipe.IsAvailable(inventory.NewLedger()) {
		t.Fatalf("recipe with no requirements must be available")
	}
}

func TestCreateValidatesRecipe(t *testing.T) {
	svc := NewService(NewMemoryRepository(), inventory.NewLedger(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, Recipe{Name: "  ", Price: 100}); err == nil {
		t.Fatalf("blank name accepted")
	}
	if _, err := svc.Create(ctx, Recipe{
		Name:        "Completo",
		Ingredients: []inventory.Ingredient{{Name: "pan", Unit: "unid", Quantity: 0}},
	}); err == nil {
		t.Fatalf("zero-quantity requirement accepted")
	}

	if _, err := svc.Create(ctx, Recipe{Name: "Completo", Price: 2500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(ctx, Recipe{Name: "completo", Price: 2000}); err == nil {
		t.Fatalf("duplicate name accepted")
	}
}

func TestDeleteUnknownMenuReturnsNotFound(t *testing.T) {
	svc := NewService(NewMemoryRepository(), inventory.NewLedger(), nil)
	ctx := context.Background()

	if err := svc.Delete(ctx, "Completo"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := svc.Create(ctx, Recipe{Name: "Completo", Price: 2500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, "completo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, "Completo"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should report ErrNotFound, got %v", err)
	}
}

func TestCatalogAvailabilityFlags(t *testing.T) {
	ledger := inventory.NewLedger()
	ledger.Upsert(inventory.Ingredient{Name: "pan", Unit: "unid", Quantity: 2})

	svc := NewService(NewMemoryRepository(), ledger, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, Recipe{
		Name:        "Marraqueta",
		Price:       500,
		Ingredients: []inventory.Ingredient{{Name: "pan", Unit: "unid", Quantity: 1}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(ctx, Recipe{
		Name:        "Completo",
		Price:       2500,
		Ingredients: []inventory.Ingredient{{Name: "vienesa", Unit: "unid", Quantity: 1}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		switch e.Name {
		case "Marraqueta":
			if !e.Available {
				t.Fatalf("Marraqueta should be available")
			}
		case "Completo":
			if e.Available {
				t.Fatalf("Completo lacks vienesa and should be unavailable")
			}
		}
	}
}
