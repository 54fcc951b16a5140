package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/veggiekiosk/backend/config"
	"github.com/veggiekiosk/backend/internal/domain"
	"github.com/veggiekiosk/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeCatalog struct {
	records []domain.VegetableRecord
}

func (f *fakeCatalog) ListVegetables(ctx context.Context) ([]domain.VegetableRecord, error) {
	return f.records, nil
}

func (f *fakeCatalog) FindByName(ctx context.Context, name string) (*domain.VegetableRecord, error) {
	for i := range f.records {
		if strings.EqualFold(f.records[i].Name, name) {
			record := f.records[i]
			return &record, nil
		}
	}
	return nil, domain.ErrVegetableNotFound
}

func (f *fakeCatalog) FindByNameContains(ctx context.Context, fragment string) (*domain.VegetableRecord, error) {
	for i := range f.records {
		if strings.Contains(strings.ToLower(f.records[i].Name), strings.ToLower(fragment)) {
			record := f.records[i]
			return &record, nil
		}
	}
	return nil, domain.ErrVegetableNotFound
}

func (f *fakeCatalog) FindByCanonicalName(ctx context.Context, name string) (*domain.VegetableRecord, error) {
	return f.FindByName(ctx, name)
}

type fakeCart struct {
	items []domain.CartLineItem
}

func (f *fakeCart) AddItem(ctx context.Context, item *domain.CartLineItem) error {
	if item.ID == "" {
		item.ID = "item-1"
	}
	f.items = append([]domain.CartLineItem{*item}, f.items...)
	return nil
}

func (f *fakeCart) ListItems(ctx context.Context, sessionID string) ([]domain.CartLineItem, error) {
	var out []domain.CartLineItem
	for _, item := range f.items {
		if item.SessionID == sessionID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeCart) CartTotal(ctx context.Context, sessionID string) (float64, error) {
	var total float64
	for _, item := range f.items {
		if item.SessionID == sessionID {
			total += item.TotalPrice
		}
	}
	return total, nil
}

func (f *fakeCart) RemoveItem(ctx context.Context, itemID string) error {
	for i, item := range f.items {
		if item.ID == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeCart) ClearSession(ctx context.Context, sessionID string) error {
	var kept []domain.CartLineItem
	for _, item := range f.items {
		if item.SessionID != sessionID {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

type fakeVision struct {
	text string
	err  error
}

func (f *fakeVision) Generate(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	return f.text, f.err
}

func setupTestRouter(vision domain.VisionClient, cart *fakeCart) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}

	catalog := &fakeCatalog{records: []domain.VegetableRecord{
		{ID: "v1", Name: "Potato", PricingMode: domain.PricePer500g, PricePer500g: 40},
		{ID: "v2", Name: "Carrot", PricingMode: domain.PricePer500g, PricePer500g: 45},
	}}

	resolver := usecase.NewNameResolver(catalog, nil, usecase.ResolverConfig{})
	analysis := usecase.NewAnalysisService(vision, resolver, usecase.AnalysisConfig{})

	handler := NewHandler(analysis, catalog, cart)
	return SetupRouter(cfg, handler)
}

func multipartScan(t *testing.T, sessionID string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("session_id", sessionID); err != nil {
		t.Fatal(err)
	}
	part, err := writer.CreateFormFile("image", "scan.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("fake-jpeg-bytes")); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return body, writer.FormDataContentType()
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(&fakeVision{}, &fakeCart{})

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Run("matched scan returns priced result", func(t *testing.T) {
		vision := &fakeVision{text: `{"vegetable_name": "potatoes", "confidence": "91", "estimated_weight": "750"}`}
		router := setupTestRouter(vision, &fakeCart{})

		body, contentType := multipartScan(t, "session-1")
		req, _ := http.NewRequest("POST", "/api/v1/analyze", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, body = %s", w.Code, w.Body.String())
		}

		var result domain.PricedResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to unmarshal result: %v", err)
		}
		if !result.Matched {
			t.Error("database_match = false, want true")
		}
		if result.UnitPrice != 40 || result.TotalPrice != 60 {
			t.Errorf("prices = %v/%v, want 40/60", result.UnitPrice, result.TotalPrice)
		}
	})

	t.Run("missing session id is rejected", func(t *testing.T) {
		router := setupTestRouter(&fakeVision{}, &fakeCart{})

		body, contentType := multipartScan(t, "")
		req, _ := http.NewRequest("POST", "/api/v1/analyze", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("vision failure maps to 502", func(t *testing.T) {
		vision := &fakeVision{err: context.DeadlineExceeded}
		router := setupTestRouter(vision, &fakeCart{})

		body, contentType := multipartScan(t, "session-1")
		req, _ := http.NewRequest("POST", "/api/v1/analyze", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadGateway)
		}
	})
}

func TestVegetablesEndpoint(t *testing.T) {
	router := setupTestRouter(&fakeVision{}, &fakeCart{})

	req, _ := http.NewRequest("GET", "/api/v1/vegetables", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}

	var response struct {
		Vegetables []domain.VegetableRecord `json:"vegetables"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Vegetables) != 2 {
		t.Errorf("len(vegetables) = %d, want 2", len(response.Vegetables))
	}
}

func TestCartEndpoints(t *testing.T) {
	cart := &fakeCart{}
	router := setupTestRouter(&fakeVision{}, cart)

	t.Run("add item", func(t *testing.T) {
		payload := `{"session_id": "session-1", "vegetable_id": "v1", "vegetable_name": "Potato",
			"weight_g": 750, "unit_price": 40, "total_price": 60, "confidence_score": 91}`
		req, _ := http.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Status = %d, body = %s", w.Code, w.Body.String())
		}
	})

	t.Run("add item requires vegetable name", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"session_id": "session-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("list items with total", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/cart/session-1/items", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d", w.Code)
		}

		var response struct {
			Items []domain.CartLineItem `json:"items"`
			Total float64               `json:"total"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(response.Items) != 1 {
			t.Fatalf("len(items) = %d, want 1", len(response.Items))
		}
		if response.Total != 60 {
			t.Errorf("total = %v, want 60", response.Total)
		}
	})

	t.Run("session total", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/api/v1/cart/session-1/total", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d", w.Code)
		}
	})

	t.Run("remove item", func(t *testing.T) {
		req, _ := http.NewRequest("DELETE", "/api/v1/cart/items/item-1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNoContent)
		}
	})

	t.Run("clear session", func(t *testing.T) {
		req, _ := http.NewRequest("DELETE", "/api/v1/cart/session-1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNoContent)
		}

		items, _ := cart.ListItems(context.Background(), "session-1")
		if len(items) != 0 {
			t.Errorf("len(items) = %d after clear, want 0", len(items))
		}
	})
}

func TestReceiptQREndpoint(t *testing.T) {
	router := setupTestRouter(&fakeVision{}, &fakeCart{})

	t.Run("renders png", func(t *testing.T) {
		payload := `{"vegetable": "Potato", "weight": 750, "price": 60, "sessionId": "session-1"}`
		req, _ := http.NewRequest("POST", "/api/v1/receipt/qr", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, body = %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("Content-Type = %q, want image/png", ct)
		}
		if !bytes.HasPrefix(w.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}) {
			t.Error("body is not a PNG")
		}
	})

	t.Run("requires session id", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/api/v1/receipt/qr", strings.NewReader(`{"vegetable": "Potato"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
