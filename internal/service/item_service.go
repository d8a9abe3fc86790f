package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/torn"
)

// ItemService maintains the local copy of the Torn item catalogue.
type ItemService struct {
	db       *sql.DB
	itemRepo *repository.ItemRepository
	client   torn.Client
	logger   logrus.FieldLogger

	syncMu sync.Mutex
}

// NewItemService creates a new ItemService with the provided dependencies.
func NewItemService(
	db *sql.DB,
	itemRepo *repository.ItemRepository,
	client torn.Client,
	logger logrus.FieldLogger,
) *ItemService {
	return &ItemService{
		db:       db,
		itemRepo: itemRepo,
		client:   client,
		logger:   logger,
	}
}

// Sync fetches the catalogue and upserts every item in a single transaction.
func (s *ItemService) Sync(ctx context.Context) (model.SyncResult, error) {
	if !s.syncMu.TryLock() {
		return model.SyncResult{}, apperrors.ErrSyncInProgress
	}
	defer s.syncMu.Unlock()

	items, err := s.client.FetchItems(ctx)
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSyncItems, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := s.itemRepo.WithTx(tx).UpsertItems(ctx, items); err != nil {
		return model.SyncResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSyncItems, err)
	}
	if err := tx.Commit(); err != nil {
		return model.SyncResult{}, fmt.Errorf("failed to commit items: %w", err)
	}

	s.logger.WithField("items", len(items)).Info("item catalogue sync finished")

	return model.SyncResult{
		Fetched:    len(items),
		Stored:     len(items),
		FinishedAt: time.Now().UTC(),
	}, nil
}

// GetItems returns the stored catalogue entries for ids, or the full catalogue when ids is empty.
func (s *ItemService) GetItems(ctx context.Context, ids []string) (map[string]model.Item, error) {
	return s.itemRepo.GetItems(ctx, ids)
}
