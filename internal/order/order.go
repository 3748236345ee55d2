package order

import (
	"sync"

	"comanda/internal/inventory"
)

// MenuItem is the capability an item needs to be ordered: identity,
// pricing, its per-unit ingredient requirements, and an availability
// check against the current ledger. menu.Recipe is the concrete
// implementation.
type MenuItem interface {
	ItemName() string
	ItemPrice() float64
	PerUnit() []inventory.Ingredient
	IsAvailable(ledger *inventory.Ledger) bool
}

// Line is a value-copy of an ordered item. Lines are unique by name
// within an order; re-adding the same item bumps Quantity instead of
// appending a duplicate row.
type Line struct {
	Name      string                 `json:"name"`
	UnitPrice float64                `json:"unit_price"`
	PerUnit   []inventory.Ingredient `json:"-"`
	Quantity  int                    `json:"quantity"`
}

// Order accumulates lines and turns them into one consolidated
// ingredient demand at fulfillment time. Single writer; reads hand
// out snapshots.
type Order struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Order {
	return &Order{}
}

// Add appends a line for the item, or bumps the quantity of an
// existing line with the same name.
func (o *Order) Add(item MenuItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	for i := range o.lines {
		if o.lines[i].Name == item.ItemName() {
			o.lines[i].Quantity += quantity
			return
		}
	}
	o.lines = append(o.lines, Line{
		Name:      item.ItemName(),
		UnitPrice: item.ItemPrice(),
		PerUnit:   item.PerUnit(),
		Quantity:  quantity,
	})
}

// Remove decrements a line by quantity, dropping it entirely when the
// decrement consumes it. Reports whether the line was found.
func (o *Order) Remove(name string, quantity int) bool {
	if quantity < 1 {
		quantity = 1
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	for i := range o.lines {
		if o.lines[i].Name != name {
			continue
		}
		if o.lines[i].Quantity > quantity {
			o.lines[i].Quantity -= quantity
		} else {
			o.lines = append(o.lines[:i], o.lines[i+1:]...)
		}
		return true
	}
	return false
}

// Total is the sum of price × quantity over all lines.
func (o *Order) Total() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	var total float64
	for _, line := range o.lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// Lines returns a snapshot copy of the current lines.
func (o *Order) Lines() []Line {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// Fulfill consolidates the scaled demand of every line into one
// requirement list and asks the ledger for an atomic subtract. Two
// lines consuming the same ingredient must be summed first, otherwise
// each could pass an availability check the combination fails. On
// success the order is cleared; on failure both the order and the
// ledger are untouched.
func (o *Order) Fulfill(ledger *inventory.Ledger) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	demand := consolidate(o.lines)
	if !ledger.Subtract(demand) {
		return false
	}
	o.lines = nil
	return true
}

func consolidate(lines []Line) []inventory.Ingredient {
	var (
		demand []inventory.Ingredient
		index  = make(map[inventory.Key]int)
	)
	for _, line := range lines {
		for _, req := range line.PerUnit {
			req.Quantity *= float64(line.Quantity)
			key := req.Key()
			if i, ok := index[key]; ok {
				demand[i].Quantity += req.Quantity
				continue
			}
			index[key] = len(demand)
			demand = append(demand, req)
		}
	}
	return demand
}
