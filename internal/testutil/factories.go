package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/accounting"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/repository"
)

// TradeLogBuilder provides a fluent interface for creating test trade logs.
//
// Example usage:
//
//	// A bazaar buy of 10 Xanax at 100 each, one hour ago
//	log := testutil.NewTradeLog().Build(t, db)
//
//	// Customized log
//	log := testutil.NewTradeLog().
//	    Sell().
//	    WithItem("287", 3).
//	    WithCostEach(250).
//	    At(time.Now().AddDate(0, 0, -2)).
//	    Build(t, db)
type TradeLogBuilder struct {
	log model.TradeLog
}

// NewTradeLog creates a TradeLogBuilder for a bazaar buy of item 286 with sensible defaults.
func NewTradeLog() *TradeLogBuilder {
	costEach := 100.0
	return &TradeLogBuilder{
		log: model.TradeLog{
			ID:         MakeLogID(),
			Timestamp:  time.Now().UTC().Add(-time.Hour).Truncate(time.Second),
			CategoryID: accounting.CategoryBazaarBuy,
			Title:      "Bazaar buy",
			CostEach:   &costEach,
		},
	}
}

// WithID sets a custom ID.
func (b *TradeLogBuilder) WithID(id string) *TradeLogBuilder {
	b.log.ID = id
	return b
}

// WithCategory sets the log category.
func (b *TradeLogBuilder) WithCategory(categoryID int) *TradeLogBuilder {
	b.log.CategoryID = categoryID
	return b
}

// Buy marks the log as a bazaar buy.
func (b *TradeLogBuilder) Buy() *TradeLogBuilder {
	b.log.CategoryID = accounting.CategoryBazaarBuy
	b.log.Title = "Bazaar buy"
	return b
}

// Sell marks the log as a bazaar sell.
func (b *TradeLogBuilder) Sell() *TradeLogBuilder {
	b.log.CategoryID = accounting.CategoryBazaarSell
	b.log.Title = "Bazaar sell"
	return b
}

// At sets the log timestamp.
func (b *TradeLogBuilder) At(ts time.Time) *TradeLogBuilder {
	b.log.Timestamp = ts.UTC().Truncate(time.Second)
	return b
}

// WithItem adds an item line. Without any WithItem call the log carries 10 of item 286.
func (b *TradeLogBuilder) WithItem(itemID string, qty int64) *TradeLogBuilder {
	b.log.Items = append(b.log.Items, model.TradeLogItem{ItemID: itemID, Quantity: qty})
	return b
}

// WithCostEach sets the unit price.
func (b *TradeLogBuilder) WithCostEach(cost float64) *TradeLogBuilder {
	b.log.CostEach = &cost
	return b
}

// WithoutCostEach stores the log without a unit price.
func (b *TradeLogBuilder) WithoutCostEach() *TradeLogBuilder {
	b.log.CostEach = nil
	return b
}

// Log returns the built log without storing it.
func (b *TradeLogBuilder) Log() model.TradeLog {
	log := b.log
	if len(log.Items) == 0 {
		log.Items = []model.TradeLogItem{{ItemID: "286", Quantity: 10}}
	}
	if log.CostEach != nil {
		total := *log.CostEach * float64(sumQuantity(log.Items))
		log.CostTotal = &total
	}
	return log
}

// Build stores the trade log in the database and returns it.
func (b *TradeLogBuilder) Build(t *testing.T, db *sql.DB) model.TradeLog {
	t.Helper()

	log := b.Log()
	if _, err := repository.NewTradeLogRepository(db).InsertLog(context.Background(), log); err != nil {
		t.Fatalf("Failed to create trade log: %v", err)
	}
	return log
}

func sumQuantity(items []model.TradeLogItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// ItemBuilder provides a fluent interface for creating catalogue items.
//
// Example usage:
//
//	item := testutil.NewItem("286").WithName("Xanax").WithMarketPrice(830000).Build(t, db)
type ItemBuilder struct {
	item model.Item
}

// NewItem creates an ItemBuilder for the given ID with a generated name and no market price.
func NewItem(id string) *ItemBuilder {
	return &ItemBuilder{
		item: model.Item{
			ID:        id,
			Name:      MakeItemName("Item"),
			Type:      "Other",
			UpdatedAt: time.Now().UTC().Truncate(time.Second),
		},
	}
}

// WithName sets a custom name.
func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.item.Name = name
	return b
}

// WithMarketPrice sets the market price.
func (b *ItemBuilder) WithMarketPrice(price float64) *ItemBuilder {
	b.item.MarketPrice = &price
	return b
}

// Build stores the item in the database and returns it.
func (b *ItemBuilder) Build(t *testing.T, db *sql.DB) model.Item {
	t.Helper()

	if err := repository.NewItemRepository(db).UpsertItems(context.Background(), []model.Item{b.item}); err != nil {
		t.Fatalf("Failed to create item: %v", err)
	}
	return b.item
}

// SnapshotBuilder provides a fluent interface for creating inventory snapshots.
//
// Example usage:
//
//	snap := testutil.NewSnapshot().WithQuantity("286", 10).At(ts).Build(t, db)
type SnapshotBuilder struct {
	snapshot model.Snapshot
}

// NewSnapshot creates an empty SnapshotBuilder timestamped two hours ago.
func NewSnapshot() *SnapshotBuilder {
	return &SnapshotBuilder{
		snapshot: model.Snapshot{
			ID:         MakeID(),
			Timestamp:  time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Second),
			Quantities: make(map[string]int64),
		},
	}
}

// WithQuantity sets the quantity of an item.
func (b *SnapshotBuilder) WithQuantity(itemID string, qty int64) *SnapshotBuilder {
	b.snapshot.Quantities[itemID] = qty
	return b
}

// At sets the snapshot timestamp.
func (b *SnapshotBuilder) At(ts time.Time) *SnapshotBuilder {
	b.snapshot.Timestamp = ts.UTC().Truncate(time.Second)
	return b
}

// Build stores the snapshot in the database and returns it.
func (b *SnapshotBuilder) Build(t *testing.T, db *sql.DB) model.Snapshot {
	t.Helper()

	if err := repository.NewSnapshotRepository(db).InsertSnapshot(context.Background(), b.snapshot); err != nil {
		t.Fatalf("Failed to create snapshot: %v", err)
	}
	return b.snapshot
}
