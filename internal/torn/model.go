package torn

import (
	"encoding/json"
	"fmt"
)

// ErrorBody is the error object the Torn API returns with HTTP 200 when a request is rejected.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// LogResponse represents the raw JSON response of GET /v2/user/log.
//
// The structure includes:
//   - Log: the log entries, newest first
//   - Error: set instead of Log when the request was rejected
type LogResponse struct {
	Log   []LogEntry `json:"log"`
	Error *ErrorBody `json:"error,omitempty"`
}

// LogEntry is a single user log entry. Only trade entries are requested, so Data is
// decoded into the trade layout shared by item market and bazaar logs.
type LogEntry struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Details   struct {
		ID       int    `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
	} `json:"details"`
	Data struct {
		Seller    int64     `json:"seller"`
		Buyer     int64     `json:"buyer"`
		Items     []LogItem `json:"items"`
		CostEach  *float64  `json:"cost_each"`
		CostTotal *float64  `json:"cost_total"`
	} `json:"data"`
}

// LogItem is an item line of a trade log entry.
type LogItem struct {
	ID  int64 `json:"id"`
	UID int64 `json:"uid"`
	Qty int64 `json:"qty"`
}

// ItemsResponse represents the raw JSON response of GET /v2/torn/items.
// Items is kept raw because the API has served it both as an array and as an object keyed
// by item ID; use Decode to read either shape.
type ItemsResponse struct {
	Items json.RawMessage `json:"items"`
	Error *ErrorBody      `json:"error,omitempty"`
}

// CatalogItem is a single entry of the item catalogue.
type CatalogItem struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value struct {
		MarketPrice *float64 `json:"market_price"`
		BuyPrice    *float64 `json:"buy_price"`
		SellPrice   *float64 `json:"sell_price"`
	} `json:"value"`
}

// Decode returns the catalogue entries in either supported shape.
// A missing or null items field yields an empty slice.
func (r ItemsResponse) Decode() ([]CatalogItem, error) {
	if len(r.Items) == 0 || string(r.Items) == "null" {
		return []CatalogItem{}, nil
	}

	var list []CatalogItem
	if err := json.Unmarshal(r.Items, &list); err == nil {
		return list, nil
	}

	var byID map[string]CatalogItem
	if err := json.Unmarshal(r.Items, &byID); err != nil {
		return nil, fmt.Errorf("unexpected items payload: %w", err)
	}
	list = make([]CatalogItem, 0, len(byID))
	for _, item := range byID {
		list = append(list, item)
	}
	return list, nil
}
