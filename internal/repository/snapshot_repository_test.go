package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/testutil"
)

func TestSnapshotRepository(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("latest is nil without snapshots", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		snapshot, err := repository.NewSnapshotRepository(db).GetLatestSnapshot(context.Background())
		if err != nil {
			t.Fatalf("GetLatestSnapshot() returned unexpected error: %v", err)
		}
		if snapshot != nil {
			t.Errorf("Expected nil snapshot, got %+v", snapshot)
		}
	})

	t.Run("returns the most recent snapshot with quantities", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSnapshotRepository(db)

		testutil.NewSnapshot().WithQuantity("286", 1).At(now.Add(-48 * time.Hour)).Build(t, db)
		want := testutil.NewSnapshot().WithQuantity("286", 10).WithQuantity("287", 0).At(now.Add(-time.Hour)).Build(t, db)

		got, err := repo.GetLatestSnapshot(context.Background())
		if err != nil {
			t.Fatalf("GetLatestSnapshot() returned unexpected error: %v", err)
		}
		if got == nil || got.ID != want.ID {
			t.Fatalf("Expected snapshot %s, got %+v", want.ID, got)
		}
		if !got.Timestamp.Equal(want.Timestamp) {
			t.Errorf("Expected timestamp %s, got %s", want.Timestamp, got.Timestamp)
		}
		if len(got.Quantities) != 2 || got.Quantities["286"] != 10 || got.Quantities["287"] != 0 {
			t.Errorf("Unexpected quantities %v", got.Quantities)
		}
	})

	t.Run("gets by id and reports missing snapshots", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSnapshotRepository(db)
		want := testutil.NewSnapshot().WithQuantity("1", 5).Build(t, db)

		got, err := repo.GetSnapshot(context.Background(), want.ID)
		if err != nil {
			t.Fatalf("GetSnapshot() returned unexpected error: %v", err)
		}
		if got.Quantities["1"] != 5 {
			t.Errorf("Expected quantity 5, got %d", got.Quantities["1"])
		}

		_, err = repo.GetSnapshot(context.Background(), testutil.MakeID())
		if !errors.Is(err, apperrors.ErrSnapshotNotFound) {
			t.Errorf("Expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("lists newest first with item counts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSnapshotRepository(db)

		older := testutil.NewSnapshot().WithQuantity("1", 1).At(now.Add(-2 * time.Hour)).Build(t, db)
		newer := testutil.NewSnapshot().WithQuantity("1", 1).WithQuantity("2", 2).At(now.Add(-time.Hour)).Build(t, db)
		empty := testutil.NewSnapshot().At(now.Add(-3 * time.Hour)).Build(t, db)

		summaries, err := repo.ListSnapshots(context.Background())
		if err != nil {
			t.Fatalf("ListSnapshots() returned unexpected error: %v", err)
		}
		if len(summaries) != 3 {
			t.Fatalf("Expected 3 summaries, got %d", len(summaries))
		}
		if summaries[0].ID != newer.ID || summaries[0].ItemCount != 2 {
			t.Errorf("Unexpected first summary %+v", summaries[0])
		}
		if summaries[1].ID != older.ID || summaries[1].ItemCount != 1 {
			t.Errorf("Unexpected second summary %+v", summaries[1])
		}
		if summaries[2].ID != empty.ID || summaries[2].ItemCount != 0 {
			t.Errorf("Unexpected third summary %+v", summaries[2])
		}
	})
}
