package inventory

import "sync"

// Ledger is the authoritative in-memory table of ingredient balances.
// Entries are unique by normalized (name, unit) key. Every quantity is
// >= 0 at every observable point. All mutation goes through one mutex;
// Subtract's check-then-commit in particular must not interleave with
// other writers.
type Ledger struct {
	mu    sync.Mutex
	items []Ingredient
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Upsert merges an incoming ingredient into the ledger. An existing
// entry with the same key has its quantity incremented; otherwise the
// ingredient is appended. Stored name and unit are the normalized
// forms.
func (l *Ledger) Upsert(ing Ingredient) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ing.Name = NormalizeName(ing.Name)
	ing.Unit = NormalizeUnit(ing.Unit)

	if i := l.indexOf(ing.Key()); i >= 0 {
		l.items[i].Quantity += ing.Quantity
		l.items[i].Name = ing.Name
		l.items[i].Unit = ing.Unit
		if ing.MinQuantity != 0 {
			l.items[i].MinQuantity = ing.MinQuantity
		}
		if ing.UnitPrice != 0 {
			l.items[i].UnitPrice = ing.UnitPrice
		}
		return
	}
	l.items = append(l.items, ing)
}

// Remove drops every entry whose normalized name matches, regardless
// of unit. Removing an absent name is a no-op.
func (l *Ledger) Remove(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := NormalizeName(name)
	kept := l.items[:0]
	for _, ing := range l.items {
		if NormalizeName(ing.Name) != key {
			kept = append(kept, ing)
		}
	}
	l.items = kept
}

// SetQuantity replaces (not merges) the quantity of the first entry
// matching the normalized name. Reports whether a match was found.
func (l *Ledger) SetQuantity(name string, quantity float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := NormalizeName(name)
	for i := range l.items {
		if NormalizeName(l.items[i].Name) == key {
			l.items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// FindByName returns a copy of the first entry matching the
// normalized name.
func (l *Ledger) FindByName(name string) (Ingredient, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := NormalizeName(name)
	for _, ing := range l.items {
		if NormalizeName(ing.Name) == key {
			return ing, true
		}
	}
	return Ingredient{}, false
}

// CheckAvailable reports whether every requirement is satisfied by an
// entry with the same normalized key and enough quantity. Read-only.
func (l *Ledger) CheckAvailable(requirements []Ingredient) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.available(requirements)
}

// Subtract decrements the ledger by the given requirements, all or
// nothing. If any requirement is unsatisfiable the ledger is left
// completely unchanged and false is returned. Both phases run under
// the same lock acquisition.
func (l *Ledger) Subtract(requirements []Ingredient) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.available(requirements) {
		return false
	}

	for _, req := range requirements {
		if i := l.indexOf(req.Key()); i >= 0 {
			l.items[i].Quantity -= req.Quantity
			if l.items[i].Quantity < 0 {
				// unreachable after the availability pass; floor anyway
				l.items[i].Quantity = 0
			}
		}
	}
	return true
}

// Items returns a snapshot copy of all entries.
func (l *Ledger) Items() []Ingredient {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Ingredient, len(l.items))
	copy(out, l.items)
	return out
}

// ReplaceAll swaps the whole ledger content, normalizing as it goes.
// Used when reloading from the database at boot.
func (l *Ledger) ReplaceAll(items []Ingredient) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = make([]Ingredient, 0, len(items))
	for _, ing := range items {
		ing.Name = NormalizeName(ing.Name)
		ing.Unit = NormalizeUnit(ing.Unit)
		l.items = append(l.items, ing)
	}
}

// Reconcile applies committed bulk-import rows. The import matches on
// name alone and each row carries the final state for that name, so
// an existing same-name entry is replaced in place and anything else
// is appended.
func (l *Ledger) Reconcile(rows []Ingredient) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, row := range rows {
		row.Name = NormalizeName(row.Name)
		row.Unit = NormalizeUnit(row.Unit)
		replaced := false
		for i := range l.items {
			if NormalizeName(l.items[i].Name) == row.Name {
				l.items[i] = row
				replaced = true
				break
			}
		}
		if !replaced {
			l.items = append(l.items, row)
		}
	}
}

func (l *Ledger) available(requirements []Ingredient) bool {
	for _, req := range requirements {
		i := l.indexOf(req.Key())
		if i < 0 || l.items[i].Quantity < req.Quantity {
			return false
		}
	}
	return true
}

func (l *Ledger) indexOf(key Key) int {
	for i, ing := range l.items {
		if ing.Key() == key {
			return i
		}
	}
	return -1
}
