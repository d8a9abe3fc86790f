package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/accounting"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

// MaxWindowDays is the longest trailing window a daily profit report accepts.
const MaxWindowDays = 365

// TransactionSource loads flattened transactions ordered by timestamp ascending.
type TransactionSource interface {
	GetTransactions(ctx context.Context, since time.Time) ([]model.Transaction, error)
}

// SnapshotSource loads the latest inventory snapshot; nil when none exists.
type SnapshotSource interface {
	GetLatestSnapshot(ctx context.Context) (*model.Snapshot, error)
}

// ItemCatalog loads item metadata keyed by item ID.
type ItemCatalog interface {
	GetItems(ctx context.Context, ids []string) (map[string]model.Item, error)
}

// ReportService loads the data a report needs and hands it to the accounting package.
// It never writes; every report is a pure function of the stored state at load time.
type ReportService struct {
	transactions TransactionSource
	snapshots    SnapshotSource
	items        ItemCatalog
	logger       logrus.FieldLogger

	windowDays int
	location   *time.Location
	now        func() time.Time
}

// NewReportService creates a new ReportService with the provided data sources.
// windowDays is the default trailing window; a non-positive value selects 30 days.
func NewReportService(
	transactions TransactionSource,
	snapshots SnapshotSource,
	items ItemCatalog,
	logger logrus.FieldLogger,
	windowDays int,
) *ReportService {
	if windowDays <= 0 {
		windowDays = accounting.DefaultWindowDays
	}
	return &ReportService{
		transactions: transactions,
		snapshots:    snapshots,
		items:        items,
		logger:       logger,
		windowDays:   windowDays,
		location:     time.UTC,
		now:          time.Now,
	}
}

func (s *ReportService) options(days int) accounting.Options {
	return accounting.Options{
		WindowDays: days,
		Now:        s.now(),
		Location:   s.location,
	}
}

// Inventory reconciles the latest snapshot with every trade recorded since, and prices the
// holdings with the default trailing window. Without a snapshot the inventory is empty.
func (s *ReportService) Inventory(ctx context.Context) (map[string]model.InventoryEntry, error) {
	opts := s.options(s.windowDays)

	snapshot, err := s.snapshots.GetLatestSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveInventory, err)
	}
	if snapshot == nil {
		return map[string]model.InventoryEntry{}, nil
	}

	since := opts.WindowStart()
	if snapshot.Timestamp.Before(since) {
		since = snapshot.Timestamp
	}

	var transactions []model.Transaction
	var items map[string]model.Item

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactions.GetTransactions(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.items.GetItems(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveInventory, err)
	}

	s.logSkipped(transactions, "inventory")
	return accounting.Reconcile(transactions, snapshot, items, opts), nil
}

// DailyProfit returns the realized profit per day over the last days days, most recent first.
// days must be between 1 and MaxWindowDays; 0 selects the default window.
func (s *ReportService) DailyProfit(ctx context.Context, days int) (model.DailyProfit, error) {
	if days == 0 {
		days = s.windowDays
	}
	if days < 1 || days > MaxWindowDays {
		return nil, apperrors.ErrInvalidWindow
	}
	opts := s.options(days)

	transactions, err := s.transactions.GetTransactions(ctx, opts.WindowStart())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveProfit, err)
	}

	s.logSkipped(transactions, "daily_profit")
	return accounting.DailyProfit(transactions, opts), nil
}

// ItemStats replays the complete history and returns the lifetime statistics per item.
func (s *ReportService) ItemStats(ctx context.Context) (map[string]model.ItemStats, error) {
	var transactions []model.Transaction
	var items map[string]model.Item

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactions.GetTransactions(gctx, time.Time{})
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.items.GetItems(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveItemStats, err)
	}

	s.logSkipped(transactions, "item_stats")
	stats := accounting.LifetimeStats(transactions, items)

	for itemID, st := range stats {
		if st.UnmatchedSellQty > 0 {
			s.logger.WithFields(logrus.Fields{
				"item_id":   itemID,
				"unmatched": st.UnmatchedSellQty,
			}).Warn("sold quantity exceeds recorded purchases")
		}
	}
	return stats, nil
}

// logSkipped reports transactions the calculations will ignore.
func (s *ReportService) logSkipped(transactions []model.Transaction, report string) {
	var malformed, unknown int
	for _, tx := range transactions {
		switch {
		case !accounting.Valid(tx):
			malformed++
		case accounting.Classify(tx.CategoryID) == accounting.DirectionUnknown:
			unknown++
		}
	}
	if malformed > 0 || unknown > 0 {
		s.logger.WithFields(logrus.Fields{
			"report":    report,
			"malformed": malformed,
			"unknown":   unknown,
		}).Debug("skipped transactions")
	}
}
