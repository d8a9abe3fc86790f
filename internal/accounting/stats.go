package accounting

import (
	"runtime"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

// UnknownItemName is used for item statistics whose item is missing from the catalogue.
const UnknownItemName = "Unknown"

// itemTotals accumulates the lifetime figures of one item.
type itemTotals struct {
	boughtQty, soldQty, buyCount, sellCount int64
	totalBuySpent, totalSellRevenue         decimal.Decimal
	fifoProfit                              decimal.Decimal
	unmatchedSellQty                        int64
}

// groupByItem splits the valid, classified transactions per item, keeping input order within
// each item. Item IDs are returned in order of first appearance.
func groupByItem(transactions []model.Transaction) ([]string, map[string][]model.Transaction) {
	var order []string
	byItem := make(map[string][]model.Transaction)
	for _, tx := range transactions {
		if !Valid(tx) || Classify(tx.CategoryID) == DirectionUnknown {
			continue
		}
		if _, seen := byItem[tx.ItemID]; !seen {
			order = append(order, tx.ItemID)
		}
		byItem[tx.ItemID] = append(byItem[tx.ItemID], tx)
	}
	return order, byItem
}

// replayItem runs one item's full transaction history through its own ledger.
func replayItem(itemID string, transactions []model.Transaction) itemTotals {
	ledger := NewLedger()
	totals := itemTotals{}

	for _, tx := range transactions {
		price := tx.UnitPrice.Decimal
		amount := price.Mul(decimal.NewFromInt(tx.Quantity))

		switch Classify(tx.CategoryID) {
		case DirectionBuy:
			totals.boughtQty += tx.Quantity
			totals.buyCount++
			totals.totalBuySpent = totals.totalBuySpent.Add(amount)
			ledger.RecordBuy(itemID, tx.Quantity, price)
		case DirectionSell:
			totals.soldQty += tx.Quantity
			totals.sellCount++
			totals.totalSellRevenue = totals.totalSellRevenue.Add(amount)
			profit, unmatched := ledger.RecordSell(itemID, tx.Quantity, price)
			totals.fifoProfit = totals.fifoProfit.Add(profit)
			totals.unmatchedSellQty += unmatched
		case DirectionUnknown:
		}
	}
	return totals
}

// average divides total by qty, returning 0 when qty is 0.
func average(total decimal.Decimal, qty int64) float64 {
	if qty == 0 {
		return 0
	}
	return total.Div(decimal.NewFromInt(qty)).InexactFloat64()
}

// LifetimeStats replays the complete transaction history and returns per-item lifetime
// trading statistics keyed by item ID.
//
// Each item owns an independent ledger, so items are replayed concurrently; the order of
// transactions within an item is preserved. Names come from items and default to "Unknown".
func LifetimeStats(transactions []model.Transaction, items map[string]model.Item) map[string]model.ItemStats {
	order, byItem := groupByItem(transactions)

	results := make([]itemTotals, len(order))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, itemID := range order {
		i, itemID := i, itemID
		g.Go(func() error {
			results[i] = replayItem(itemID, byItem[itemID])
			return nil
		})
	}
	// replayItem never fails.
	_ = g.Wait()

	stats := make(map[string]model.ItemStats, len(order))
	for i, itemID := range order {
		t := results[i]

		name := UnknownItemName
		if item, ok := items[itemID]; ok && item.Name != "" {
			name = item.Name
		}

		stats[itemID] = model.ItemStats{
			ItemID:           itemID,
			Name:             name,
			BoughtQty:        t.boughtQty,
			SoldQty:          t.soldQty,
			BuyCount:         t.buyCount,
			SellCount:        t.sellCount,
			TotalBuySpent:    t.totalBuySpent.InexactFloat64(),
			TotalSellRevenue: t.totalSellRevenue.InexactFloat64(),
			FifoProfit:       t.fifoProfit.InexactFloat64(),
			AvgBuyPrice:      average(t.totalBuySpent, t.boughtQty),
			AvgSellPrice:     average(t.totalSellRevenue, t.soldQty),
			AvgProfitPerItem: average(t.fifoProfit, t.soldQty),
			UnmatchedSellQty: t.unmatchedSellQty,
		}
	}
	return stats
}
