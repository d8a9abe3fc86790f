package accounting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

var refNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func buy(itemID string, qty int64, price float64, ts time.Time) model.Transaction {
	return trade(itemID, CategoryBazaarBuy, qty, price, ts)
}

func sell(itemID string, qty int64, price float64, ts time.Time) model.Transaction {
	return trade(itemID, CategoryBazaarSell, qty, price, ts)
}

func trade(itemID string, category int, qty int64, price float64, ts time.Time) model.Transaction {
	return model.Transaction{
		ItemID:     itemID,
		Quantity:   qty,
		UnitPrice:  decimal.NewNullDecimal(decimal.NewFromFloat(price)),
		CategoryID: category,
		Timestamp:  ts,
	}
}

func daysAgo(n int) time.Time {
	return refNow.AddDate(0, 0, -n)
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}
