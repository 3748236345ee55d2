package inventory

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewHandler(svc)
	r.GET("/ingredients", h.List)
	r.POST("/ingredients", h.Create)
	r.POST("/ingredients/import", h.Import)
	r.PATCH("/ingredients/:name/quantity", h.SetQuantity)

	return r
}

func TestCreateIngredientRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewService(NewLedger(), NewMemoryRepository())
	r := setupTestRouter(svc)

	body, _ := json.Marshal(map[string]any{
		"name": "Tomate", "unit": "kg", "quantity": 0,
	})
	req := httptest.NewRequest(http.MethodPost, "/ingredients", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestCreateThenListNormalizes(t *testing.T) {
	svc := NewService(NewLedger(), NewMemoryRepository())
	r := setupTestRouter(svc)

	body, _ := json.Marshal(map[string]any{
		"name": "  Tomate ", "unit": "Kilogramos", "quantity": 2.5,
	})
	req := httptest.NewRequest(http.MethodPost, "/ingredients", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/ingredients", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp struct {
		Ingredients []Ingredient `json:"ingredients"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Ingredients) != 1 {
		t.Fatalf("expected 1 ingredient, got %d", len(resp.Ingredients))
	}
	if resp.Ingredients[0].Name != "tomate" || resp.Ingredients[0].Unit != "kg" {
		t.Fatalf("not normalized: %+v", resp.Ingredients[0])
	}
}

func TestSetQuantityUnknownIngredient(t *testing.T) {
	svc := NewService(NewLedger(), NewMemoryRepository())
	r := setupTestRouter(svc)

	body, _ := json.Marshal(map[string]float64{"quantity": 3})
	req := httptest.NewRequest(http.MethodPatch, "/ingredients/cebolla/quantity", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestImportEndpointReturnsSummary(t *testing.T) {
	ledger := NewLedger()
	ledger.Upsert(Ingredient{Name: "tomate", Unit: "kg", Quantity: 10})
	svc := NewService(ledger, NewMemoryRepository())
	r := setupTestRouter(svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "stock.csv")
	fw.Write([]byte("nombre,unidad,stock_actual,stock_minimo,precio_unitario\n" +
		"Tomate,kg,5,2,800\n" +
		"Cebolla,kg,-1,0,0\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/ingredients/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var sum ImportSummary
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if sum.Updated != 1 || sum.Created != 0 || sum.Errors != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if got, _ := ledger.FindByName("tomate"); got.Quantity != 15 {
		t.Fatalf("expected merged stock 15, got %v", got.Quantity)
	}
}

func TestImportEndpointRejectsNonCSV(t *testing.T) {
	svc := NewService(NewLedger(), NewMemoryRepository())
	r := setupTestRouter(svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "stock.pdf")
	fw.Write([]byte("whatever"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/ingredients/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}
