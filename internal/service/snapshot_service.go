package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/repository"
)

// SnapshotService handles recording and reading inventory snapshots.
type SnapshotService struct {
	db           *sql.DB
	snapshotRepo *repository.SnapshotRepository
	logger       logrus.FieldLogger
	now          func() time.Time
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	db *sql.DB,
	snapshotRepo *repository.SnapshotRepository,
	logger logrus.FieldLogger,
) *SnapshotService {
	return &SnapshotService{
		db:           db,
		snapshotRepo: snapshotRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateSnapshot records quantities as the authoritative inventory as of now.
// Quantities are expected to be validated by the caller.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, quantities map[string]int64) (*model.Snapshot, error) {
	snapshot := &model.Snapshot{
		ID:         uuid.New().String(),
		Timestamp:  s.now().UTC().Truncate(time.Second),
		Quantities: make(map[string]int64, len(quantities)),
	}
	for itemID, qty := range quantities {
		snapshot.Quantities[itemID] = qty
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := s.snapshotRepo.WithTx(tx).InsertSnapshot(ctx, *snapshot); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"snapshot_id": snapshot.ID,
		"items":       len(snapshot.Quantities),
	}).Info("inventory snapshot recorded")

	return snapshot, nil
}

// LatestSnapshot returns the most recent snapshot, or nil when none exists.
func (s *SnapshotService) LatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	return s.snapshotRepo.GetLatestSnapshot(ctx)
}

// GetSnapshot returns the snapshot with the given ID.
func (s *SnapshotService) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	return s.snapshotRepo.GetSnapshot(ctx, id)
}

// ListSnapshots returns summaries of all snapshots, newest first.
func (s *SnapshotService) ListSnapshots(ctx context.Context) ([]model.SnapshotSummary, error) {
	return s.snapshotRepo.ListSnapshots(ctx)
}
