package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/logging"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/secret"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/service"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/torn"
)

// NewTestTradeLogService creates a TradeLogService backed by db and client.
func NewTestTradeLogService(t *testing.T, db *sql.DB, client torn.Client) *service.TradeLogService {
	t.Helper()
	return service.NewTradeLogService(
		db,
		repository.NewTradeLogRepository(db),
		client,
		logging.Discard(),
	)
}

// NewTestItemService creates an ItemService backed by db and client.
func NewTestItemService(t *testing.T, db *sql.DB, client torn.Client) *service.ItemService {
	t.Helper()
	return service.NewItemService(
		db,
		repository.NewItemRepository(db),
		client,
		logging.Discard(),
	)
}

// NewTestSnapshotService creates a SnapshotService backed by db.
func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()
	return service.NewSnapshotService(
		db,
		repository.NewSnapshotRepository(db),
		logging.Discard(),
	)
}

// NewTestReportService creates a ReportService reading from db with a 30 day window.
func NewTestReportService(t *testing.T, db *sql.DB) *service.ReportService {
	t.Helper()
	return service.NewReportService(
		repository.NewTradeLogRepository(db),
		repository.NewSnapshotRepository(db),
		repository.NewItemRepository(db),
		logging.Discard(),
		30,
	)
}

// NewTestTornConfigService creates a TornConfigService with a fresh encryption key and
// the given environment fallback key.
func NewTestTornConfigService(t *testing.T, db *sql.DB, envKey string) *service.TornConfigService {
	t.Helper()

	key, err := secret.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate encryption key: %v", err)
	}
	cipher, err := secret.NewCipher(key)
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}

	return service.NewTornConfigService(
		repository.NewTornConfigRepository(db),
		cipher,
		envKey,
		logging.Discard(),
	)
}

// NewTestSystemService creates a SystemService backed by db.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeLogID generates a Torn style log ID for testing.
//
// Example usage:
//
//	id := testutil.MakeLogID()
//	// Returns: "a1B2c3D4e5F6g7H8i9J0"
func MakeLogID() string {
	return randomAlphanumeric(20)
}

// MakeItemName generates a unique item name for testing.
//
// Example usage:
//
//	name := testutil.MakeItemName("Plushie")
//	// Returns: "Plushie ABC123"
func MakeItemName(base string) string {
	if base == "" {
		base = "Item"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
