package accounting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

// DefaultWindowDays is the length of the trailing window used by the daily profit and
// inventory price statistics.
const DefaultWindowDays = 30

// DayLayout is the layout of calendar-day keys.
const DayLayout = "2006-01-02"

// Options controls the trailing window of a report.
//
// Location is the calendar-day truncation rule: a transaction belongs to the day its
// timestamp falls on in Location, with days starting at midnight. It defaults to UTC.
type Options struct {
	WindowDays int
	Now        time.Time
	Location   *time.Location
}

func (o Options) normalize() Options {
	if o.WindowDays <= 0 {
		o.WindowDays = DefaultWindowDays
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	return o
}

// WindowStart returns the earliest timestamp still inside the trailing window.
func (o Options) WindowStart() time.Time {
	o = o.normalize()
	return o.Now.AddDate(0, 0, -o.WindowDays)
}

// DayKey returns the calendar-day key of t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DayLayout)
}

// windowDays returns the WindowDays day keys ending at Now's calendar day, most recent first.
func windowDays(o Options) []string {
	today := o.Now.In(o.Location)
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, o.Location)

	keys := make([]string, o.WindowDays)
	for i := range keys {
		keys[i] = midnight.AddDate(0, 0, -i).Format(DayLayout)
	}
	return keys
}

// DailyProfit replays the transactions inside the trailing window through a fresh FIFO ledger
// and buckets the realized profit of every sell by the sell's calendar day.
//
// The result holds exactly WindowDays contiguous days ending at Now's day, most recent first;
// days without sells are zero. Profit realized on a day outside those keys (the partial day at
// the start of the window) is not reported.
func DailyProfit(transactions []model.Transaction, opts Options) model.DailyProfit {
	opts = opts.normalize()
	cutoff := opts.WindowStart()

	ledger := NewLedger()
	buckets := make(map[string]decimal.Decimal)

	for _, tx := range transactions {
		if tx.Timestamp.Before(cutoff) || !Valid(tx) {
			continue
		}

		switch Classify(tx.CategoryID) {
		case DirectionBuy:
			ledger.RecordBuy(tx.ItemID, tx.Quantity, tx.UnitPrice.Decimal)
		case DirectionSell:
			profit, _ := ledger.RecordSell(tx.ItemID, tx.Quantity, tx.UnitPrice.Decimal)
			day := DayKey(tx.Timestamp, opts.Location)
			buckets[day] = buckets[day].Add(profit)
		case DirectionUnknown:
		}
	}

	keys := windowDays(opts)
	series := make(model.DailyProfit, len(keys))
	for i, day := range keys {
		series[i] = model.DayProfit{
			Date:   day,
			Profit: buckets[day].InexactFloat64(),
		}
	}
	return series
}
