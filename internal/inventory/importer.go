package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Bulk feed column names. Header matching is case-insensitive and
// trim-tolerant; the feed itself uses Spanish headers.
const (
	colName     = "nombre"
	colUnit     = "unidad"
	colStock    = "stock_actual"
	colMinStock = "stock_minimo"
	colPrice    = "precio_unitario"
	colQuantity = "cantidad"
)

var fullColumns = []string{colName, colUnit, colStock, colMinStock, colPrice}

// ImportSummary reports the outcome of one bulk feed: rows that
// created new ledger entries, rows merged into existing ones, and a
// per-row error list. Errors also counts structural and commit
// failures.
type ImportSummary struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  int      `json:"errors"`
	Details []string `json:"details"`
}

// Reconciler stages a CSV ingredient feed against a ledger snapshot.
// Staging never mutates the ledger; the staged rows are committed as
// one batch by the caller (database first, then Ledger.Reconcile), so
// a commit failure leaves everything untouched.
type Reconciler struct {
	ledger *Ledger
}

func NewReconciler(ledger *Ledger) *Reconciler {
	return &Reconciler{ledger: ledger}
}

// Stage parses the feed and computes the final ledger row for every
// valid line. Rows match existing entries by normalized name only: a
// single ingredient name is assumed to carry one canonical unit
// across a feed. Matched rows merge additively (incoming stock adds
// to the balance; unit, minimum and price overwrite only when the
// incoming value is non-empty). Unmatched rows create a new entry,
// which requires a strictly positive stock.
//
// Two header shapes are accepted: the full feed
// (nombre, unidad, stock_actual, stock_minimo, precio_unitario) and
// the simple two-column variant (nombre, cantidad, optional unidad).
func (rc *Reconciler) Stage(src io.Reader) (ImportSummary, []Ingredient) {
	header, rows, err := readTable(src)
	if err != nil {
		return ImportSummary{Errors: 1, Details: []string{err.Error()}}, nil
	}

	have := make(map[string]bool, len(header))
	for _, col := range header {
		have[col] = true
	}

	switch {
	case hasAll(have, fullColumns...):
		return rc.stageFull(rows)
	case hasAll(have, colName, colQuantity):
		return rc.stageSimple(rows)
	default:
		var missing []string
		for _, col := range fullColumns {
			if !have[col] {
				missing = append(missing, col)
			}
		}
		msg := fmt.Sprintf(
			"invalid CSV: need either columns %s or at least %s and %s (missing: %s)",
			strings.Join(fullColumns, ", "), colName, colQuantity,
			strings.Join(missing, ", "),
		)
		return ImportSummary{Errors: 1, Details: []string{msg}}, nil
	}
}

func (rc *Reconciler) stageFull(rows []map[string]string) (ImportSummary, []Ingredient) {
	sum := ImportSummary{Details: []string{}}
	staging := newStaging(rc.ledger)

	for n, row := range rows {
		lineno := n + 1
		name := row[colName]
		if name == "" {
			sum.Details = append(sum.Details, fmt.Sprintf("row %d: empty name", lineno))
			continue
		}

		stock, err := parseNumber(row[colStock])
		if err != nil {
			sum.Details = append(sum.Details,
				fmt.Sprintf("row %d (%s): invalid %s %q", lineno, name, colStock, row[colStock]))
			continue
		}
		minStock, err := parseNumber(row[colMinStock])
		if err != nil {
			sum.Details = append(sum.Details,
				fmt.Sprintf("row %d (%s): invalid %s %q", lineno, name, colMinStock, row[colMinStock]))
			continue
		}
		price, err := parseNumber(row[colPrice])
		if err != nil {
			sum.Details = append(sum.Details,
				fmt.Sprintf("row %d (%s): invalid %s %q", lineno, name, colPrice, row[colPrice]))
			continue
		}
		unit := row[colUnit]

		if existing, ok := staging.find(name); ok {
			existing.Quantity += stock
			if unit != "" {
				existing.Unit = NormalizeUnit(unit)
			}
			if minStock != 0 {
				existing.MinQuantity = minStock
			}
			if price != 0 {
				existing.UnitPrice = price
			}
			staging.put(*existing)
			sum.Updated++
			continue
		}

		if stock <= 0 {
			sum.Details = append(sum.Details,
				fmt.Sprintf("row %d (%s): %s must be > 0 for a new ingredient", lineno, name, colStock))
			continue
		}
		if unit == "" {
			unit = "unid"
		}
		staging.put(Ingredient{
			Name:        name,
			Unit:        NormalizeUnit(unit),
			Quantity:    stock,
			MinQuantity: minStock,
			UnitPrice:   price,
		})
		sum.Created++
	}

	sum.Errors = len(sum.Details)
	return sum, staging.rows()
}

func (rc *Reconciler) stageSimple(rows []map[string]string) (ImportSummary, []Ingredient) {
	sum := ImportSummary{Details: []string{}}
	staging := newStaging(rc.ledger)

	for n, row := range rows {
		lineno := n + 1
		name := row[colName]
		if name == "" {
			sum.Details = append(sum.Details, fmt.Sprintf("row %d: empty name", lineno))
			continue
		}

		quantity, err := strconv.ParseFloat(row[colQuantity], 64)
		if err != nil {
			sum.Details = append(sum.Details,
				fmt.Sprintf("row %d (%s): invalid %s %q", lineno, name, colQuantity, row[colQuantity]))
			continue
		}
		if quantity <= 0 {
			sum.Details = append(sum.Details,
				fmt.Sprintf("row %d (%s): %s must be > 0", lineno, name, colQuantity))
			continue
		}

		unit := row[colUnit]

		if existing, ok := staging.find(name); ok {
			existing.Quantity += quantity
			if unit != "" {
				existing.Unit = NormalizeUnit(unit)
			}
			staging.put(*existing)
			sum.Updated++
			continue
		}

		if unit == "" {
			unit = "unid"
		}
		staging.put(Ingredient{
			Name:     name,
			Unit:     NormalizeUnit(unit),
			Quantity: quantity,
		})
		sum.Created++
	}

	sum.Errors = len(sum.Details)
	return sum, staging.rows()
}

// staging accumulates the final row per normalized name, seeded
// lazily from the ledger so that later feed rows see the effect of
// earlier ones.
type staging struct {
	ledger *Ledger
	byName map[string]int
	order  []Ingredient
}

func newStaging(ledger *Ledger) *staging {
	return &staging{ledger: ledger, byName: make(map[string]int)}
}

func (s *staging) find(name string) (*Ingredient, bool) {
	key := NormalizeName(name)
	if i, ok := s.byName[key]; ok {
		row := s.order[i]
		return &row, true
	}
	if ing, ok := s.ledger.FindByName(name); ok {
		return &ing, true
	}
	return nil, false
}

func (s *staging) put(row Ingredient) {
	key := NormalizeName(row.Name)
	if i, ok := s.byName[key]; ok {
		s.order[i] = row
		return
	}
	s.byName[key] = len(s.order)
	s.order = append(s.order, row)
}

func (s *staging) rows() []Ingredient {
	return s.order
}

// readTable reads a delimited file into trimmed per-row column maps.
// It tolerates a UTF-8 BOM and sniffs ';' as an alternate delimiter,
// both of which show up in spreadsheet exports.
func readTable(src io.Reader) ([]string, []map[string]string, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, nil, fmt.Errorf("unreadable CSV: %w", err)
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")
	if strings.TrimSpace(text) == "" {
		return nil, nil, fmt.Errorf("CSV has no header row")
	}

	headerLine := text
	if i := strings.IndexByte(headerLine, '\n'); i >= 0 {
		headerLine = headerLine[:i]
	}

	r := csv.NewReader(strings.NewReader(text))
	if strings.Count(headerLine, ";") > strings.Count(headerLine, ",") {
		r.Comma = ';'
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("malformed CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("CSV has no header row")
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func hasAll(have map[string]bool, cols ...string) bool {
	for _, col := range cols {
		if !have[col] {
			return false
		}
	}
	return true
}

// parseNumber parses an optional numeric field. Blank means zero;
// anything else must be a valid float.
func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
