package model

import (
	"bytes"
	"encoding/json"
)

// DayProfit is the realized profit booked on one calendar day.
type DayProfit struct {
	Date   string  `json:"date"`
	Profit float64 `json:"profit"`
}

// DailyProfit is the realized profit series over a trailing window, most recent day first.
// It encodes to JSON as an object keyed by date (YYYY-MM-DD) that keeps the descending order.
type DailyProfit []DayProfit

// Get returns the profit for the given date key and whether the key is part of the series.
func (d DailyProfit) Get(date string) (float64, bool) {
	for _, day := range d {
		if day.Date == date {
			return day.Profit, true
		}
	}
	return 0, false
}

// MarshalJSON writes the series as a JSON object in slice order.
func (d DailyProfit) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(day.Date)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(day.Profit)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ItemStats is the lifetime trading summary for one item.
// UnmatchedSellQty counts sold units for which no purchase lot was available; they add no profit.
type ItemStats struct {
	ItemID           string  `json:"-"`
	Name             string  `json:"name"`
	BoughtQty        int64   `json:"boughtQty"`
	SoldQty          int64   `json:"soldQty"`
	BuyCount         int64   `json:"buyCount"`
	SellCount        int64   `json:"sellCount"`
	TotalBuySpent    float64 `json:"totalBuySpent"`
	TotalSellRevenue float64 `json:"totalSellRevenue"`
	FifoProfit       float64 `json:"fifoProfit"`
	AvgBuyPrice      float64 `json:"avgBuyPrice"`
	AvgSellPrice     float64 `json:"avgSellPrice"`
	AvgProfitPerItem float64 `json:"avgProfitPerItem"`
	UnmatchedSellQty int64   `json:"unmatchedSellQty"`
}

// InventoryEntry is the reconciled current holding for one item.
// MarketPrice is nil when no market price is known.
type InventoryEntry struct {
	ItemID       string   `json:"-"`
	Quantity     int64    `json:"quantity"`
	AvgBuyPrice  float64  `json:"avgBuyPrice"`
	AvgSellPrice float64  `json:"avgSellPrice"`
	MarketPrice  *float64 `json:"marketPrice"`
	Name         string   `json:"name"`
}
