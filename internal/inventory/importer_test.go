package inventory

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestImportMergesStockAdditively(t *testing.T) {
	ledger := NewLedger()
	ledger.Upsert(Ingredient{Name: "tomate", Unit: "kg", Quantity: 10})
	svc := NewService(ledger, NewMemoryRepository())

	csv := "nombre,unidad,stock_actual,stock_minimo,precio_unitario\n" +
		"Tomate,kg,5,2,800\n"
	sum := svc.Import(context.Background(), strings.NewReader(csv))

	if sum.Updated != 1 || sum.Created != 0 || sum.Errors != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	got, _ := ledger.FindByName("tomate")
	if got.Quantity != 15 {
		t.Fatalf("expected stock 15, got %v", got.Quantity)
	}
	if got.MinQuantity != 2 || got.UnitPrice != 800 {
		t.Fatalf("non-empty fields should overwrite: %+v", got)
	}
}

func TestImportCreatesOnlyWithPositiveStock(t *testing.T) {
	ledger := NewLedger()
	svc := NewService(ledger, NewMemoryRepository())

	csv := "nombre,unidad,stock_actual,stock_minimo,precio_unitario\n" +
		"Palta,kg,3,1,2500\n" +
		"Cebolla,kg,0,1,500\n"
	sum := svc.Import(context.Background(), strings.NewReader(csv))

	if sum.Created != 1 {
		t.Fatalf("expected 1 created, got %d", sum.Created)
	}
	if sum.Errors != 1 || len(sum.Details) != 1 {
		t.Fatalf("expected 1 row error, got %+v", sum)
	}
	if !strings.Contains(sum.Details[0], "row 2") || !strings.Contains(sum.Details[0], "Cebolla") {
		t.Fatalf("error should carry row number and name: %q", sum.Details[0])
	}
	if _, ok := ledger.FindByName("cebolla"); ok {
		t.Fatalf("zero-stock row must not create an entry")
	}
}

func TestImportBadNumberSkipsRowOnly(t *testing.T) {
	ledger := NewLedger()
	svc := NewService(ledger, NewMemoryRepository())

	csv := "nombre,unidad,stock_actual,stock_minimo,precio_unitario\n" +
		"Pan,unid,diez,0,0\n" +
		"Vienesa,unid,20,5,300\n" +
		",kg,1,0,0\n"
	sum := svc.Import(context.Background(), strings.NewReader(csv))

	if sum.Created != 1 || sum.Errors != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if _, ok := ledger.FindByName("vienesa"); !ok {
		t.Fatalf("valid row should commit despite sibling errors")
	}
}

func TestImportMissingColumnsIsStructuredFailure(t *testing.T) {
	svc := NewService(NewLedger(), NewMemoryRepository())

	sum := svc.Import(context.Background(), strings.NewReader("nombre,precio\nPan,100\n"))

	if sum.Created != 0 || sum.Updated != 0 || sum.Errors != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if len(sum.Details) != 1 || !strings.Contains(sum.Details[0], "invalid CSV") {
		t.Fatalf("expected descriptive column error, got %+v", sum.Details)
	}
}

func TestImportSimpleVariantDefaultsUnit(t *testing.T) {
	ledger := NewLedger()
	svc := NewService(ledger, NewMemoryRepository())

	csv := "nombre,cantidad\nPan,4\nPan,2\n"
	sum := svc.Import(context.Background(), strings.NewReader(csv))

	if sum.Created != 1 || sum.Updated != 1 || sum.Errors != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	got, ok := ledger.FindByName("pan")
	if !ok || got.Unit != "unid" || got.Quantity != 6 {
		t.Fatalf("expected 6 unid of pan, got %+v", got)
	}
}

func TestImportSimpleVariantKeepsUnitOnMerge(t *testing.T) {
	ledger := NewLedger()
	ledger.Upsert(Ingredient{Name: "queso", Unit: "kg", Quantity: 2})
	svc := NewService(ledger, NewMemoryRepository())

	// no unidad column: replenishment must not flip kg to the default
	csv := "nombre,cantidad\nQueso,3\n"
	sum := svc.Import(context.Background(), strings.NewReader(csv))

	if sum.Created != 0 || sum.Updated != 1 || sum.Errors != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	got, _ := ledger.FindByName("queso")
	if got.Unit != "kg" || got.Quantity != 5 {
		t.Fatalf("expected 5 kg of queso, got %+v", got)
	}
}

func TestImportSemicolonDelimiterAndBOM(t *testing.T) {
	ledger := NewLedger()
	svc := NewService(ledger, NewMemoryRepository())

	csv := "\ufeffnombre;cantidad;unidad\nQueso;2;Kilogramos\n"
	sum := svc.Import(context.Background(), strings.NewReader(csv))

	if sum.Created != 1 || sum.Errors != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	got, _ := ledger.FindByName("queso")
	if got.Unit != "kg" || got.Quantity != 2 {
		t.Fatalf("expected 2 kg of queso, got %+v", got)
	}
}

type failingRepo struct {
	*MemoryRepository
}

func (r *failingRepo) SaveAll(ctx context.Context, rows []Ingredient) error {
	return errors.New("connection reset")
}

func TestImportCommitFailureRollsBackWholeBatch(t *testing.T) {
	ledger := NewLedger()
	ledger.Upsert(Ingredient{Name: "tomate", Unit: "kg", Quantity: 10})
	svc := NewService(ledger, &failingRepo{NewMemoryRepository()})

	before := ledger.Items()

	csv := "nombre,cantidad\nTomate,5\nPan,1\n"
	sum := svc.Import(context.Background(), strings.NewReader(csv))

	if sum.Created != 0 || sum.Updated != 0 {
		t.Fatalf("failed commit must report zero applied rows: %+v", sum)
	}
	if sum.Errors != 1 || !strings.Contains(sum.Details[len(sum.Details)-1], "commit failed") {
		t.Fatalf("expected commit failure in summary: %+v", sum)
	}
	if !reflect.DeepEqual(before, ledger.Items()) {
		t.Fatalf("ledger changed despite failed commit")
	}
}
