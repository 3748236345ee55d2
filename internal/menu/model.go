package menu

import "comanda/internal/inventory"

// Recipe is a menu item: a fixed bill of ingredient requirements for
// one unit, a price, and the quantity being ordered. Requirements are
// value copies, never ledger rows.
type Recipe struct {
	ID          string                 `json:"id,omitempty"`
	Name        string                 `json:"name"`
	Ingredients []inventory.Ingredient `json:"ingredients"`
	Price       float64                `json:"price"`
	IconURL     string                 `json:"icon_url,omitempty"`
	Quantity    int                    `json:"quantity"`
}

// ScaledIngredients returns requirement copies with each quantity
// multiplied by the ordered quantity. Pure; the recipe is unchanged.
func (r Recipe) ScaledIngredients() []inventory.Ingredient {
	qty := r.Quantity
	if qty < 1 {
		qty = 1
	}
	out := make([]inventory.Ingredient, len(r.Ingredients))
	for i, req := range r.Ingredients {
		req.Quantity *= float64(qty)
		out[i] = req
	}
	return out
}

// IsAvailable reports whether one unit of the recipe can be prepared
// from the ledger. The ordered quantity is deliberately ignored here:
// availability gates adding a line to an order, while the atomic
// subtract on checkout is what enforces the full scaled demand.
// A recipe with no requirements is always available.
func (r Recipe) IsAvailable(ledger *inventory.Ledger) bool {
	return ledger.CheckAvailable(r.Ingredients)
}

// Accessors satisfying order.MenuItem.

func (r Recipe) ItemName() string { return r.Name }

func (r Recipe) ItemPrice() float64 { return r.Price }

func (r Recipe) PerUnit() []inventory.Ingredient {
	out := make([]inventory.Ingredient, len(r.Ingredients))
	copy(out, r.Ingredients)
	return out
}
