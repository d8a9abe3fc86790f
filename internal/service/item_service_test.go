package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/testutil"
)

func TestItemService_Sync(t *testing.T) {
	t.Run("upserts the catalogue", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.NewItem("286").WithName("Old Name").Build(t, db)
		price := 830000.0
		client := testutil.NewMockTornClient().WithItems(
			model.Item{ID: "286", Name: "Xanax", MarketPrice: &price},
			model.Item{ID: "287", Name: "Beer"},
		)
		svc := testutil.NewTestItemService(t, db, client)

		// Execute
		result, err := svc.Sync(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("Sync() returned unexpected error: %v", err)
		}
		if result.Stored != 2 {
			t.Errorf("Expected 2 stored items, got %d", result.Stored)
		}

		items, err := svc.GetItems(context.Background(), nil)
		if err != nil {
			t.Fatalf("GetItems() returned unexpected error: %v", err)
		}
		if items["286"].Name != "Xanax" {
			t.Errorf("Expected name to be updated, got %q", items["286"].Name)
		}
		if len(items) != 2 {
			t.Errorf("Expected 2 items, got %d", len(items))
		}
	})

	t.Run("wraps client errors", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestItemService(t, db, testutil.NewMockTornClient().WithError(errors.New("offline")))

		// Execute
		_, err := svc.Sync(context.Background())

		// Assert
		if !errors.Is(err, apperrors.ErrFailedToSyncItems) {
			t.Errorf("Expected ErrFailedToSyncItems, got %v", err)
		}
	})
}
