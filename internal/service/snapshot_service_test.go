package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/testutil"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/validation"
)

func TestSnapshotService_CreateSnapshot(t *testing.T) {
	t.Run("records snapshot and makes it the latest", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		testutil.NewSnapshot().WithQuantity("1", 1).At(time.Now().Add(-24 * time.Hour)).Build(t, db)
		svc := testutil.NewTestSnapshotService(t, db)

		// Execute
		created, err := svc.CreateSnapshot(context.Background(), map[string]int64{"286": 1, "287": 15})

		// Assert
		if err != nil {
			t.Fatalf("CreateSnapshot() returned unexpected error: %v", err)
		}
		if err := validation.ValidateUUID(created.ID); err != nil {
			t.Errorf("Expected UUID snapshot id, got %q", created.ID)
		}

		latest, err := svc.LatestSnapshot(context.Background())
		if err != nil {
			t.Fatalf("LatestSnapshot() returned unexpected error: %v", err)
		}
		if latest.ID != created.ID {
			t.Errorf("Expected latest snapshot %s, got %s", created.ID, latest.ID)
		}
		if latest.Quantities["287"] != 15 {
			t.Errorf("Expected quantity 15, got %d", latest.Quantities["287"])
		}

		summaries, err := svc.ListSnapshots(context.Background())
		if err != nil {
			t.Fatalf("ListSnapshots() returned unexpected error: %v", err)
		}
		if len(summaries) != 2 {
			t.Errorf("Expected 2 snapshots, got %d", len(summaries))
		}
	})
}
