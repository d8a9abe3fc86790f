package api_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/config"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/logging"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	client := testutil.NewMockTornClient()

	cfg := config.Default()
	services := api.Services{
		System:     testutil.NewTestSystemService(t, db),
		TradeLog:   testutil.NewTestTradeLogService(t, db, client),
		Item:       testutil.NewTestItemService(t, db, client),
		Snapshot:   testutil.NewTestSnapshotService(t, db),
		Report:     testutil.NewTestReportService(t, db),
		TornConfig: testutil.NewTestTornConfigService(t, db, ""),
	}
	return api.NewRouter(services, cfg, logging.Discard()), db
}

// TestRouter verifies that every endpoint is mounted with the expected method.
func TestRouter(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/system/health", "", http.StatusOK},
		{http.MethodGet, "/api/system/version", "", http.StatusOK},
		{http.MethodGet, "/api/inventory", "", http.StatusOK},
		{http.MethodPost, "/api/inventory", `{"286": 4}`, http.StatusCreated},
		{http.MethodGet, "/api/snapshot", "", http.StatusOK},
		{http.MethodGet, "/api/snapshot/latest", "", http.StatusOK},
		{http.MethodGet, "/api/snapshot/550e8400-e29b-41d4-a716-446655440000", "", http.StatusNotFound},
		{http.MethodGet, "/api/snapshot/not-a-uuid", "", http.StatusBadRequest},
		{http.MethodGet, "/api/logs", "", http.StatusOK},
		{http.MethodPost, "/api/logs", "", http.StatusOK},
		{http.MethodPost, "/api/items", "", http.StatusOK},
		{http.MethodGet, "/api/profit/daily?days=7", "", http.StatusOK},
		{http.MethodGet, "/api/stats/items", "", http.StatusOK},
		{http.MethodGet, "/api/torn/config", "", http.StatusOK},
		{http.MethodPut, "/api/torn/config", `{"apiKey": "short"}`, http.StatusBadRequest},
		{http.MethodDelete, "/api/inventory", "", http.StatusMethodNotAllowed},
	}

	// Requests run in order; the snapshot created above makes /latest succeed.
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRouter_CORS(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("Expected CORS header for allowed origin")
	}
}
