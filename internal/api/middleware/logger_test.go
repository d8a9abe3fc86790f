package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/api/middleware"
)

func TestNewLogger(t *testing.T) {
	serve := func(t *testing.T, status int, path string) *test.Hook {
		t.Helper()
		logger, hook := test.NewNullLogger()

		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		})
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		middleware.NewLogger(logger)(next).ServeHTTP(w, req)

		if w.Code != status {
			t.Fatalf("Expected %d, got %d", status, w.Code)
		}
		if len(hook.Entries) != 1 {
			t.Fatalf("Expected 1 log entry, got %d", len(hook.Entries))
		}
		return hook
	}

	t.Run("logs successful requests at info level", func(t *testing.T) {
		entry := serve(t, http.StatusOK, "/api/inventory").LastEntry()

		if entry.Level != logrus.InfoLevel {
			t.Errorf("Expected info level, got %s", entry.Level)
		}
		if entry.Data["status"] != http.StatusOK {
			t.Errorf("Expected status field 200, got %v", entry.Data["status"])
		}
		if entry.Data["path"] != "/api/inventory" {
			t.Errorf("Expected path field '/api/inventory', got %v", entry.Data["path"])
		}
	})

	t.Run("logs client errors at warn level", func(t *testing.T) {
		entry := serve(t, http.StatusBadRequest, "/api/profit/daily").LastEntry()

		if entry.Level != logrus.WarnLevel {
			t.Errorf("Expected warn level, got %s", entry.Level)
		}
	})

	t.Run("logs server errors at error level", func(t *testing.T) {
		entry := serve(t, http.StatusInternalServerError, "/api/stats/items").LastEntry()

		if entry.Level != logrus.ErrorLevel {
			t.Errorf("Expected error level, got %s", entry.Level)
		}
	})

	t.Run("records 200 when handler never writes a header", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		middleware.NewLogger(logger)(next).ServeHTTP(httptest.NewRecorder(), req)

		if hook.LastEntry().Data["status"] != http.StatusOK {
			t.Errorf("Expected status field 200, got %v", hook.LastEntry().Data["status"])
		}
	})
}
