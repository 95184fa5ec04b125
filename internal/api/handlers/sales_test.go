package handlers_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/handlers"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
	"github.com/ndewijer/Author-Ledger-Backend/internal/testutil"
)

func newSaleHandler(t *testing.T) (*handlers.SaleHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return handlers.NewSaleHandler(testutil.NewTestSaleService(t, db)), db
}

func decodeSale(t *testing.T, w *httptest.ResponseRecorder) handlers.SaleResponse {
	t.Helper()
	var response handlers.SaleResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response
}

func TestSaleHandler_GetSales(t *testing.T) {
	t.Run("filters by type", func(t *testing.T) {
		handler, db := newSaleHandler(t)
		book := testutil.NewBook().Build(t, db)
		testutil.NewSale(book.ID).Build(t, db)
		testutil.NewSale(book.ID).WithType(model.SaleDirect).WithPlatform("Book fair").Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/sale", map[string]string{"type": "DIRECT_SALE"})
		w := httptest.NewRecorder()

		handler.GetSales(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []handlers.SaleResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 1 {
			t.Fatalf("Expected 1 sale, got %d", len(response))
		}
		if response[0].Platform != "Book fair" {
			t.Errorf("Expected platform 'Book fair', got '%s'", response[0].Platform)
		}
		if response[0].TypeLabel != "Direct Sale" {
			t.Errorf("Expected label 'Direct Sale', got '%s'", response[0].TypeLabel)
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		handler, _ := newSaleHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/sale", map[string]string{"type": "WHOLESALE"})
		w := httptest.NewRecorder()

		handler.GetSales(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestSaleHandler_CRUD(t *testing.T) {
	t.Run("creates a sale with a derived total", func(t *testing.T) {
		handler, db := newSaleHandler(t)
		book := testutil.NewBook().Build(t, db)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/sale", map[string]any{
			"bookId":      book.ID,
			"type":        "ONLINE_STORE",
			"platform":    "Amazon",
			"quantity":    3,
			"unitPrice":   "12.99",
			"royaltyRate": 70,
			"date":        "2024-03-15",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateSale(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		response := decodeSale(t, w)
		if response.TotalAmount != 38.97 {
			t.Errorf("Expected total 38.97, got %v", response.TotalAmount)
		}
		if response.RoyaltyRate == nil || *response.RoyaltyRate != 70 {
			t.Errorf("Expected royalty rate 70, got %v", response.RoyaltyRate)
		}
		if response.RoyaltyAmount != nil {
			t.Errorf("Expected no royalty amount, got %v", *response.RoyaltyAmount)
		}
		testutil.AssertRowCount(t, db, "sale", 1)
	})

	t.Run("create keeps an explicit total", func(t *testing.T) {
		handler, db := newSaleHandler(t)
		book := testutil.NewBook().Build(t, db)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/sale", map[string]any{
			"bookId":      book.ID,
			"type":        "PUBLISHER_SALE",
			"quantity":    10,
			"unitPrice":   "9.99",
			"totalAmount": "95.00",
			"date":        "2024-03-15",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateSale(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}
		if response := decodeSale(t, w); response.TotalAmount != 95 {
			t.Errorf("Expected total 95, got %v", response.TotalAmount)
		}
	})

	t.Run("create validates fields", func(t *testing.T) {
		handler, db := newSaleHandler(t)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/sale", map[string]any{
			"bookId":    "nope",
			"type":      "WHOLESALE",
			"quantity":  0,
			"unitPrice": "-1",
			"date":      "yesterday",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateSale(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", w.Code)
		}

		var response struct {
			Details map[string]string `json:"details"`
		}
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		for _, field := range []string{"bookId", "type", "quantity", "unitPrice", "date"} {
			if _, ok := response.Details[field]; !ok {
				t.Errorf("Expected error for field %s, got %v", field, response.Details)
			}
		}
		testutil.AssertRowCount(t, db, "sale", 0)
	})

	t.Run("create against unknown book is 404", func(t *testing.T) {
		handler, _ := newSaleHandler(t)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/sale", map[string]any{
			"bookId":    testutil.MakeID(),
			"type":      "OTHER",
			"quantity":  1,
			"unitPrice": 5,
			"date":      "2024-03-15",
		}, nil)
		w := httptest.NewRecorder()

		handler.CreateSale(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("updates a sale", func(t *testing.T) {
		handler, db := newSaleHandler(t)
		book := testutil.NewBook().Build(t, db)
		sale := testutil.NewSale(book.ID).Build(t, db)

		req := testutil.NewJSONRequest(http.MethodPut, "/api/sale/"+sale.ID,
			map[string]any{"platform": "Kobo", "platformFees": "1.50"}, map[string]string{"uuid": sale.ID})
		w := httptest.NewRecorder()

		handler.UpdateSale(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		response := decodeSale(t, w)
		if response.Platform != "Kobo" {
			t.Errorf("Expected platform 'Kobo', got '%s'", response.Platform)
		}
		if response.PlatformFees != 1.5 {
			t.Errorf("Expected platform fees 1.5, got %v", response.PlatformFees)
		}
		if response.TotalAmount != 10 {
			t.Errorf("Expected total to stay 10, got %v", response.TotalAmount)
		}
	})

	t.Run("deletes a sale", func(t *testing.T) {
		handler, db := newSaleHandler(t)
		book := testutil.NewBook().Build(t, db)
		sale := testutil.NewSale(book.ID).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/sale/"+sale.ID, map[string]string{"uuid": sale.ID})
		w := httptest.NewRecorder()

		handler.DeleteSale(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, "sale", 0)
	})

	t.Run("get unknown sale is 404", func(t *testing.T) {
		handler, _ := newSaleHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/sale/"+id, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.GetSale(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}
