package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

// priceTotals holds the buy/sell totals of one item inside the trailing window.
type priceTotals struct {
	buySpent, sellRevenue decimal.Decimal
	buyQty, sellQty       int64
}

// FallbackItemName returns the display name used for inventory items missing from the catalogue.
func FallbackItemName(itemID string) string {
	return fmt.Sprintf("Item %s", itemID)
}

// Reconcile derives the live inventory from the latest snapshot and the trades that followed it.
//
// The live quantity of an item is its snapshot quantity plus every buy and minus every sell
// with a timestamp at or after the snapshot. Average buy and sell prices are computed over the
// trailing window independently of the snapshot age. Only items with a positive live quantity
// are returned. A nil snapshot yields an empty result.
func Reconcile(transactions []model.Transaction, snapshot *model.Snapshot, items map[string]model.Item, opts Options) map[string]model.InventoryEntry {
	result := make(map[string]model.InventoryEntry)
	if snapshot == nil {
		return result
	}
	opts = opts.normalize()
	cutoff := opts.WindowStart()

	referenced := make(map[string]struct{}, len(snapshot.Quantities))
	for itemID := range snapshot.Quantities {
		referenced[itemID] = struct{}{}
	}

	deltas := make(map[string]int64)
	prices := make(map[string]*priceTotals)

	for _, tx := range transactions {
		if !Valid(tx) {
			continue
		}
		direction := Classify(tx.CategoryID)
		if direction == DirectionUnknown {
			continue
		}

		afterSnapshot := !tx.Timestamp.Before(snapshot.Timestamp)
		inWindow := !tx.Timestamp.Before(cutoff)
		if !afterSnapshot && !inWindow {
			continue
		}
		referenced[tx.ItemID] = struct{}{}

		var p *priceTotals
		if inWindow {
			p = prices[tx.ItemID]
			if p == nil {
				p = &priceTotals{}
				prices[tx.ItemID] = p
			}
		}
		amount := tx.UnitPrice.Decimal.Mul(decimal.NewFromInt(tx.Quantity))

		switch direction {
		case DirectionBuy:
			if afterSnapshot {
				deltas[tx.ItemID] += tx.Quantity
			}
			if p != nil {
				p.buySpent = p.buySpent.Add(amount)
				p.buyQty += tx.Quantity
			}
		case DirectionSell:
			if afterSnapshot {
				deltas[tx.ItemID] -= tx.Quantity
			}
			if p != nil {
				p.sellRevenue = p.sellRevenue.Add(amount)
				p.sellQty += tx.Quantity
			}
		case DirectionUnknown:
		}
	}

	for itemID := range referenced {
		quantity := snapshot.Quantities[itemID] + deltas[itemID]
		if quantity <= 0 {
			continue
		}

		entry := model.InventoryEntry{
			ItemID:   itemID,
			Quantity: quantity,
			Name:     FallbackItemName(itemID),
		}
		if p := prices[itemID]; p != nil {
			entry.AvgBuyPrice = average(p.buySpent, p.buyQty)
			entry.AvgSellPrice = average(p.sellRevenue, p.sellQty)
		}
		if item, ok := items[itemID]; ok {
			if item.Name != "" {
				entry.Name = item.Name
			}
			if item.MarketPrice != nil && *item.MarketPrice > 0 {
				price := *item.MarketPrice
				entry.MarketPrice = &price
			}
		}
		result[itemID] = entry
	}
	return result
}
