package inventory

// Ingredient is a ledger balance or a requirement against one.
// MinQuantity and UnitPrice only matter for ledger rows fed by the
// bulk import; requirement values leave them zero.
type Ingredient struct {
	Name        string  `json:"name"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	MinQuantity float64 `json:"min_quantity,omitempty"`
	UnitPrice   float64 `json:"unit_price,omitempty"`
}

// Key is the normalized (name, unit) identity used everywhere names
// or units are compared. Raw strings are never compared directly.
type Key struct {
	Name string
	Unit string
}

func KeyOf(name, unit string) Key {
	return Key{Name: NormalizeName(name), Unit: NormalizeUnit(unit)}
}

func (i Ingredient) Key() Key {
	return KeyOf(i.Name, i.Unit)
}
