package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one buy or sell of a single item, flattened from a trade log.
// A trade log carrying several items produces one Transaction per item, all at the
// log's unit price. Used as the input of every report calculation.
type Transaction struct {
	LogID      string              `json:"logId"`
	ItemID     string              `json:"itemId"`
	Quantity   int64               `json:"quantity"`
	UnitPrice  decimal.NullDecimal `json:"unitPrice"`
	CategoryID int                 `json:"categoryId"`
	Timestamp  time.Time           `json:"timestamp"`
}

// TradeLog is a raw trade log entry as received from the Torn API and stored in the trade_log table.
type TradeLog struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	CategoryID int            `json:"categoryId"`
	Title      string         `json:"title"`
	Seller     int64          `json:"seller,omitempty"`
	CostEach   *float64       `json:"costEach"`
	CostTotal  *float64       `json:"costTotal,omitempty"`
	Items      []TradeLogItem `json:"items"`
}

// TradeLogItem is a single item line of a trade log.
type TradeLogItem struct {
	ItemID   string `json:"itemId"`
	UID      int64  `json:"uid,omitempty"`
	Quantity int64  `json:"quantity"`
}

// TransactionResponse is the API representation of a flattened transaction.
// UnitPrice is nil when the stored log has no unit price.
type TransactionResponse struct {
	LogID      string    `json:"logId"`
	ItemID     string    `json:"itemId"`
	Quantity   int64     `json:"quantity"`
	UnitPrice  *float64  `json:"unitPrice"`
	CategoryID int       `json:"categoryId"`
	Direction  string    `json:"direction"`
	Timestamp  time.Time `json:"timestamp"`
}

// TradeLogFilters narrows the transactions returned by the logs listing.
// Zero values do not filter.
type TradeLogFilters struct {
	Since     time.Time
	Direction string
	ItemID    string
}
