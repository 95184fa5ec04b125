package handlers_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/handlers"
	"github.com/ndewijer/Author-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Author-Ledger-Backend/internal/model"
	"github.com/ndewijer/Author-Ledger-Backend/internal/testutil"
)

func newAnalyticsHandler(t *testing.T) (*handlers.AnalyticsHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return handlers.NewAnalyticsHandler(
		testutil.NewTestAnalyticsService(t, db, fixedNow),
		testutil.NewTestSnapshotService(t, db, fixedNow),
	), db
}

// seedCatalogue creates two books plus an unassigned website expense.
func seedCatalogue(t *testing.T, db *sql.DB) (model.Book, model.Book) {
	t.Helper()
	alpha := testutil.NewBook().WithTitle("Alpha").Build(t, db)
	beta := testutil.NewBook().WithTitle("Beta").Build(t, db)

	testutil.NewExpense(alpha.ID).WithAmount(testutil.Dec("200")).WithDate(testutil.Date(2024, time.February, 5)).Build(t, db)
	testutil.NewExpense(beta.ID).WithAmount(testutil.Dec("300")).WithDate(testutil.Date(2024, time.February, 6)).Build(t, db)
	testutil.NewExpense("").WithCategory(model.ExpenseWebsite).WithAmount(testutil.Dec("50")).
		WithDate(testutil.Date(2024, time.March, 1)).Build(t, db)

	testutil.NewSale(alpha.ID).WithQuantity(40).WithUnitPrice(testutil.Dec("10")).Build(t, db)
	testutil.NewSale(beta.ID).WithType(model.SaleDirect).WithQuantity(5).WithUnitPrice(testutil.Dec("20")).Build(t, db)

	return alpha, beta
}

func TestAnalyticsHandler_Global(t *testing.T) {
	t.Run("totals include unassigned expenses", func(t *testing.T) {
		handler, db := newAnalyticsHandler(t)
		seedCatalogue(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/totals", nil)
		w := httptest.NewRecorder()

		handler.Totals(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response handlers.TotalsResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.TotalExpenses != 550 {
			t.Errorf("Expected expenses 550, got %v", response.TotalExpenses)
		}
		if response.TotalIncome != 500 {
			t.Errorf("Expected income 500, got %v", response.TotalIncome)
		}
		if response.NetProfit != -50 {
			t.Errorf("Expected net profit -50, got %v", response.NetProfit)
		}
		if response.BreakevenStatus != "Still Negative" {
			t.Errorf("Expected 'Still Negative', got '%s'", response.BreakevenStatus)
		}
	})

	t.Run("channels split revenue", func(t *testing.T) {
		handler, db := newAnalyticsHandler(t)
		seedCatalogue(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/channels", nil)
		w := httptest.NewRecorder()

		handler.Channels(w, req)

		var response []handlers.ChannelResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 2 {
			t.Fatalf("Expected 2 channels, got %d", len(response))
		}
		if response[0].Channel != "DIRECT_SALE" || response[0].Percentage != 20 {
			t.Errorf("Expected DIRECT_SALE at 20%%, got %s at %v", response[0].Channel, response[0].Percentage)
		}
		if response[1].Channel != "ONLINE_STORE" || response[1].Percentage != 80 {
			t.Errorf("Expected ONLINE_STORE at 80%%, got %s at %v", response[1].Channel, response[1].Percentage)
		}
	})

	t.Run("monthly trend is chronological", func(t *testing.T) {
		handler, db := newAnalyticsHandler(t)
		seedCatalogue(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/monthly", nil)
		w := httptest.NewRecorder()

		handler.Monthly(w, req)

		var response []handlers.MonthlyResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 2 {
			t.Fatalf("Expected 2 months, got %d", len(response))
		}
		if response[0].Month != "Feb 2024" || response[0].Expenses != 500 {
			t.Errorf("Unexpected first month: %+v", response[0])
		}
		if response[1].Month != "Mar 2024" || response[1].Expenses != 50 || response[1].Sales != 500 {
			t.Errorf("Unexpected second month: %+v", response[1])
		}
	})

	t.Run("overview returns a report per book", func(t *testing.T) {
		handler, db := newAnalyticsHandler(t)
		alpha, beta := seedCatalogue(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/overview", nil)
		w := httptest.NewRecorder()

		handler.Overview(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []handlers.ReportResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 2 {
			t.Fatalf("Expected 2 reports, got %d", len(response))
		}

		byID := map[string]handlers.ReportResponse{}
		for _, r := range response {
			byID[r.BookID] = r
		}
		if byID[alpha.ID].FinancialHealth != "EXCELLENT" {
			t.Errorf("Expected Alpha EXCELLENT, got %s", byID[alpha.ID].FinancialHealth)
		}
		if byID[beta.ID].FinancialHealth != "LOSS" {
			t.Errorf("Expected Beta LOSS, got %s", byID[beta.ID].FinancialHealth)
		}
	})
}

func TestAnalyticsHandler_Snapshots(t *testing.T) {
	t.Run("empty before the first refresh", func(t *testing.T) {
		handler, _ := newAnalyticsHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/snapshots", nil)
		w := httptest.NewRecorder()

		handler.Snapshots(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response []handlers.SnapshotResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 0 {
			t.Errorf("Expected no snapshots, got %d", len(response))
		}
	})

	t.Run("refresh then read back", func(t *testing.T) {
		handler, db := newAnalyticsHandler(t)
		alpha, _ := seedCatalogue(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/analytics/snapshots/refresh", nil)
		w := httptest.NewRecorder()

		handler.RefreshSnapshots(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var refreshed handlers.RefreshResponse
		if err := json.NewDecoder(w.Body).Decode(&refreshed); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if refreshed.Refreshed != 2 {
			t.Errorf("Expected 2 refreshed snapshots, got %d", refreshed.Refreshed)
		}
		testutil.AssertRowCount(t, db, "report_snapshot", 2)

		req = httptest.NewRequest(http.MethodGet, "/api/analytics/snapshots", nil)
		w = httptest.NewRecorder()
		handler.Snapshots(w, req)

		var summaries []handlers.SnapshotResponse
		if err := json.NewDecoder(w.Body).Decode(&summaries); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("Expected 2 snapshots, got %d", len(summaries))
		}
		for _, s := range summaries {
			if s.CalculatedAt != fixedNow.Format(time.RFC3339) {
				t.Errorf("Expected calculatedAt %s, got %s", fixedNow.Format(time.RFC3339), s.CalculatedAt)
			}
		}

		req = testutil.NewRequestWithURLParams(http.MethodGet, "/api/analytics/snapshots/"+alpha.ID, map[string]string{"uuid": alpha.ID})
		w = httptest.NewRecorder()
		handler.Snapshot(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var report handlers.ReportResponse
		if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if report.BookTitle != "Alpha" || report.NetProfit != 200 {
			t.Errorf("Unexpected snapshot report: %s net %v", report.BookTitle, report.NetProfit)
		}
	})

	t.Run("missing snapshot is 404", func(t *testing.T) {
		handler, _ := newAnalyticsHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/analytics/snapshots/"+id, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.Snapshot(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}

		var response map[string]any
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response["error"] != apperrors.ErrSnapshotNotFound.Error() {
			t.Errorf("Expected '%s' error, got '%v'", apperrors.ErrSnapshotNotFound.Error(), response["error"])
		}
	})
}
