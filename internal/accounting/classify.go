// Package accounting implements FIFO cost-basis accounting over trade transactions and
// derives the inventory, daily profit and lifetime item statistics reports from it.
//
// Every function in this package is a pure computation over in-memory data: no I/O, no
// shared state between calls. Callers are expected to pass transactions sorted ascending
// by timestamp; within one item that order is the only ordering that affects results.
package accounting

import (
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

// Trade log categories that carry item trades.
const (
	CategoryItemMarketBuy  = 1112
	CategoryItemMarketSell = 1113
	CategoryBazaarBuy      = 1225
	CategoryBazaarSell     = 1226
)

// TradeCategories lists every category that is fetched and accounted for.
var TradeCategories = []int{
	CategoryBazaarBuy,
	CategoryBazaarSell,
	CategoryItemMarketBuy,
	CategoryItemMarketSell,
}

// Direction is the side of a trade derived from its category.
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionBuy
	DirectionSell
)

func (d Direction) String() string {
	switch d {
	case DirectionBuy:
		return "buy"
	case DirectionSell:
		return "sell"
	case DirectionUnknown:
		return "unknown"
	}
	return "unknown"
}

// Classify maps a trade log category to a Direction.
// Unrecognized categories yield DirectionUnknown, which is a valid outcome and not an error.
func Classify(categoryID int) Direction {
	switch categoryID {
	case CategoryItemMarketBuy, CategoryBazaarBuy:
		return DirectionBuy
	case CategoryItemMarketSell, CategoryBazaarSell:
		return DirectionSell
	default:
		return DirectionUnknown
	}
}

// Valid reports whether a transaction carries everything accounting needs:
// an item ID, a positive quantity and a known, non-negative unit price.
// Invalid transactions are skipped by every report without aborting it.
func Valid(tx model.Transaction) bool {
	if tx.ItemID == "" || tx.Quantity <= 0 {
		return false
	}
	if !tx.UnitPrice.Valid || tx.UnitPrice.Decimal.IsNegative() {
		return false
	}
	return true
}
