package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/accounting"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/torn"
)

// TradeLogService keeps the local trade log store in step with the Torn API and
// exposes the stored history as transactions.
type TradeLogService struct {
	db      *sql.DB
	logRepo *repository.TradeLogRepository
	client  torn.Client
	logger  logrus.FieldLogger

	// syncMu is held for the duration of a sync; overlapping syncs are rejected.
	syncMu sync.Mutex
}

// NewTradeLogService creates a new TradeLogService with the provided dependencies.
func NewTradeLogService(
	db *sql.DB,
	logRepo *repository.TradeLogRepository,
	client torn.Client,
	logger logrus.FieldLogger,
) *TradeLogService {
	return &TradeLogService{
		db:      db,
		logRepo: logRepo,
		client:  client,
		logger:  logger,
	}
}

// Sync fetches new logs of every trade category and stores the ones not seen before.
//
// Each category is fetched from the newest stored timestamp of that category onward. A
// failing category is logged and recorded in the result; the remaining categories are
// still synced. The returned error is non-nil only when every category failed or another
// sync is already running.
func (s *TradeLogService) Sync(ctx context.Context) (model.SyncResult, error) {
	if !s.syncMu.TryLock() {
		return model.SyncResult{}, apperrors.ErrSyncInProgress
	}
	defer s.syncMu.Unlock()

	result := model.SyncResult{}
	var errs []error

	for _, categoryID := range accounting.TradeCategories {
		fetched, stored, err := s.syncCategory(ctx, categoryID)
		result.Fetched += fetched
		result.Stored += stored
		if err != nil {
			s.logger.WithError(err).WithField("category", categoryID).Error("failed to sync trade logs")
			result.FailedCategories = append(result.FailedCategories, categoryID)
			errs = append(errs, fmt.Errorf("category %d: %w", categoryID, err))
		}
	}
	result.FinishedAt = time.Now().UTC()

	s.logger.WithFields(logrus.Fields{
		"fetched": result.Fetched,
		"stored":  result.Stored,
		"failed":  len(result.FailedCategories),
	}).Info("trade log sync finished")

	if len(errs) == len(accounting.TradeCategories) {
		return result, fmt.Errorf("%w: %w", apperrors.ErrFailedToSyncLogs, errors.Join(errs...))
	}
	return result, nil
}

func (s *TradeLogService) syncCategory(ctx context.Context, categoryID int) (int, int, error) {
	from, err := s.logRepo.LatestTimestamp(ctx, categoryID)
	if err != nil {
		return 0, 0, err
	}

	logs, err := s.client.FetchLogs(ctx, categoryID, from)
	if err != nil {
		return 0, 0, err
	}
	if len(logs) == 0 {
		return 0, 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return len(logs), 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	repo := s.logRepo.WithTx(tx)
	stored := 0
	for _, log := range logs {
		inserted, err := repo.InsertLog(ctx, log)
		if err != nil {
			return len(logs), 0, err
		}
		if inserted {
			stored++
		}
	}

	if err := tx.Commit(); err != nil {
		return len(logs), 0, fmt.Errorf("failed to commit trade logs: %w", err)
	}
	return len(logs), stored, nil
}

// GetTransactions returns the stored transactions matching filters, oldest first, in
// their API representation. Empty filters return the complete history.
func (s *TradeLogService) GetTransactions(ctx context.Context, filters model.TradeLogFilters) ([]model.TransactionResponse, error) {
	transactions, err := s.logRepo.GetTransactions(ctx, filters.Since)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	responses := make([]model.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		direction := accounting.Classify(t.CategoryID).String()
		if filters.Direction != "" && direction != filters.Direction {
			continue
		}
		if filters.ItemID != "" && t.ItemID != filters.ItemID {
			continue
		}

		r := model.TransactionResponse{
			LogID:      t.LogID,
			ItemID:     t.ItemID,
			Quantity:   t.Quantity,
			CategoryID: t.CategoryID,
			Direction:  direction,
			Timestamp:  t.Timestamp,
		}
		if t.UnitPrice.Valid {
			price := t.UnitPrice.Decimal.InexactFloat64()
			r.UnitPrice = &price
		}
		responses = append(responses, r)
	}
	return responses, nil
}
