package accounting

import "github.com/shopspring/decimal"

// CostLot is a purchased batch of an item that has not been fully sold yet.
type CostLot struct {
	Remaining int64
	UnitPrice decimal.Decimal
}

// lotQueue holds the open lots of one item, oldest first.
// Consumed lots are dropped by advancing head; a lot in lots[head:] always has Remaining > 0.
type lotQueue struct {
	lots []CostLot
	head int
}

func (q *lotQueue) push(lot CostLot) {
	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head > 0 && q.head >= len(q.lots)/2 {
		n := copy(q.lots, q.lots[q.head:])
		clear(q.lots[n:])
		q.lots = q.lots[:n]
		q.head = 0
	}
	q.lots = append(q.lots, lot)
}

func (q *lotQueue) empty() bool {
	return q.head >= len(q.lots)
}

// Ledger is a FIFO cost-basis ledger keeping one queue of cost lots per item.
// Items are fully independent. A Ledger is not safe for concurrent use; build one per
// calculation (or one per item when fanning out).
type Ledger struct {
	queues map[string]*lotQueue
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{queues: make(map[string]*lotQueue)}
}

func (l *Ledger) queue(itemID string) *lotQueue {
	q, ok := l.queues[itemID]
	if !ok {
		q = &lotQueue{}
		l.queues[itemID] = q
	}
	return q
}

// RecordBuy appends a new cost lot for the item.
// Non-positive quantities are ignored; callers filter them out with Valid.
func (l *Ledger) RecordBuy(itemID string, quantity int64, unitPrice decimal.Decimal) {
	if quantity <= 0 {
		return
	}
	l.queue(itemID).push(CostLot{Remaining: quantity, UnitPrice: unitPrice})
}

// RecordSell matches quantity against the item's oldest lots first and returns the realized
// profit, sum of used * (unitPrice - lot.UnitPrice) over the consumed lots.
//
// When the item runs out of lots before the sell is fully matched, the remainder is returned as
// unmatched and contributes no profit. No cost basis is assumed for it.
func (l *Ledger) RecordSell(itemID string, quantity int64, unitPrice decimal.Decimal) (profit decimal.Decimal, unmatched int64) {
	profit = decimal.Zero
	if quantity <= 0 {
		return profit, 0
	}

	q := l.queue(itemID)
	remaining := quantity
	for remaining > 0 && !q.empty() {
		lot := &q.lots[q.head]
		used := min(remaining, lot.Remaining)

		profit = profit.Add(unitPrice.Sub(lot.UnitPrice).Mul(decimal.NewFromInt(used)))

		lot.Remaining -= used
		remaining -= used
		if lot.Remaining == 0 {
			q.lots[q.head] = CostLot{}
			q.head++
		}
	}

	return profit, remaining
}
