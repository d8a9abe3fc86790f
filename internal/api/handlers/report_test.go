package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/testutil"
)

// seedTrades stores a buy of 10 Xanax at 100 two days ago and a sell of 4 at 150 yesterday,
// on top of a snapshot of 5 taken three days ago. Realized profit is 4 * 50 = 200.
func seedTrades(t *testing.T, db *sql.DB) (sellTime time.Time) {
	t.Helper()
	now := time.Now().UTC()
	sellTime = now.Add(-24 * time.Hour)

	testutil.NewItem("286").WithName("Xanax").WithMarketPrice(830000).Build(t, db)
	testutil.NewSnapshot().WithQuantity("286", 5).At(now.Add(-72 * time.Hour)).Build(t, db)
	testutil.NewTradeLog().Buy().WithItem("286", 10).WithCostEach(100).At(now.Add(-48 * time.Hour)).Build(t, db)
	testutil.NewTradeLog().Sell().WithItem("286", 4).WithCostEach(150).At(sellTime).Build(t, db)
	return sellTime
}

func TestReportHandler_Inventory(t *testing.T) {
	setupHandler := func(t *testing.T) (*ReportHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewReportHandler(testutil.NewTestReportService(t, db)), db
	}

	t.Run("returns empty object without snapshot", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
		w := httptest.NewRecorder()

		handler.Inventory(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if body := strings.TrimSpace(w.Body.String()); body != "{}" {
			t.Errorf("Expected empty object, got %s", body)
		}
	})

	t.Run("reconciles snapshot with later trades", func(t *testing.T) {
		handler, db := setupHandler(t)
		seedTrades(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
		w := httptest.NewRecorder()

		handler.Inventory(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response map[string]model.InventoryEntry
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		entry, ok := response["286"]
		if !ok {
			t.Fatalf("Expected item 286 in inventory, got %v", response)
		}
		if entry.Quantity != 11 {
			t.Errorf("Expected quantity 11, got %d", entry.Quantity)
		}
		if entry.Name != "Xanax" {
			t.Errorf("Expected name 'Xanax', got '%s'", entry.Name)
		}
		if entry.AvgBuyPrice != 100 || entry.AvgSellPrice != 150 {
			t.Errorf("Expected averages 100/150, got %v/%v", entry.AvgBuyPrice, entry.AvgSellPrice)
		}
		if entry.MarketPrice == nil || *entry.MarketPrice != 830000 {
			t.Errorf("Expected market price 830000, got %v", entry.MarketPrice)
		}
	})

	t.Run("returns 500 when database is closed", func(t *testing.T) {
		handler, db := setupHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
		w := httptest.NewRecorder()

		handler.Inventory(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestReportHandler_DailyProfit(t *testing.T) {
	setupHandler := func(t *testing.T) (*ReportHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewReportHandler(testutil.NewTestReportService(t, db)), db
	}

	t.Run("returns 30 days by default with realized profit", func(t *testing.T) {
		handler, db := setupHandler(t)
		sellTime := seedTrades(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/profit/daily", nil)
		w := httptest.NewRecorder()

		handler.DailyProfit(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response map[string]float64
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 30 {
			t.Errorf("Expected 30 days, got %d", len(response))
		}
		if got := response[sellTime.Format("2006-01-02")]; got != 200 {
			t.Errorf("Expected profit 200 on sell day, got %v", got)
		}
	})

	t.Run("keys are ordered most recent first", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/profit/daily", map[string]string{"days": "3"})
		w := httptest.NewRecorder()

		handler.DailyProfit(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		today := time.Now().UTC()
		want := `{"` + today.Format("2006-01-02") + `":0,"` +
			today.AddDate(0, 0, -1).Format("2006-01-02") + `":0,"` +
			today.AddDate(0, 0, -2).Format("2006-01-02") + `":0}`
		if body := strings.TrimSpace(w.Body.String()); body != want {
			t.Errorf("Expected %s, got %s", want, body)
		}
	})

	t.Run("rejects invalid window", func(t *testing.T) {
		handler, _ := setupHandler(t)

		for _, days := range []string{"0", "-1", "366", "abc"} {
			req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/profit/daily", map[string]string{"days": days})
			w := httptest.NewRecorder()

			handler.DailyProfit(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("days=%s: expected 400, got %d", days, w.Code)
			}
		}
	})
}

func TestReportHandler_ItemStats(t *testing.T) {
	setupHandler := func(t *testing.T) (*ReportHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewReportHandler(testutil.NewTestReportService(t, db)), db
	}

	t.Run("returns lifetime statistics per item", func(t *testing.T) {
		handler, db := setupHandler(t)
		seedTrades(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/stats/items", nil)
		w := httptest.NewRecorder()

		handler.ItemStats(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response map[string]model.ItemStats
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		stats, ok := response["286"]
		if !ok {
			t.Fatalf("Expected item 286 in stats, got %v", response)
		}
		if stats.Name != "Xanax" {
			t.Errorf("Expected name 'Xanax', got '%s'", stats.Name)
		}
		if stats.BoughtQty != 10 || stats.SoldQty != 4 {
			t.Errorf("Expected 10 bought and 4 sold, got %d and %d", stats.BoughtQty, stats.SoldQty)
		}
		if stats.FifoProfit != 200 {
			t.Errorf("Expected fifo profit 200, got %v", stats.FifoProfit)
		}
		if stats.AvgProfitPerItem != 50 {
			t.Errorf("Expected avg profit per item 50, got %v", stats.AvgProfitPerItem)
		}
	})

	t.Run("returns empty object without trades", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/stats/items", nil)
		w := httptest.NewRecorder()

		handler.ItemStats(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if body := strings.TrimSpace(w.Body.String()); body != "{}" {
			t.Errorf("Expected empty object, got %s", body)
		}
	})
}
