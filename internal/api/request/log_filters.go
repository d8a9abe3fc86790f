package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

// ParseTradeLogFilters extracts and validates trade log filters from query parameters.
// All parameters are optional.
//
// Validation rules:
//   - since: Must be a valid date/datetime string (YYYY-MM-DD or RFC3339)
//   - direction: Must be "buy" or "sell"
//   - item: Must be a numeric item ID
//
// Returns an error if any parameter fails validation.
func ParseTradeLogFilters(sinceParam, directionParam, itemParam string) (model.TradeLogFilters, error) {
	var filters model.TradeLogFilters

	if sinceParam != "" {
		since, err := parseFilterTime(sinceParam)
		if err != nil {
			return model.TradeLogFilters{}, fmt.Errorf("invalid since format: %w", err)
		}
		filters.Since = since
	}

	if directionParam != "" {
		direction := strings.TrimSpace(strings.ToLower(directionParam))
		if direction != "buy" && direction != "sell" {
			return model.TradeLogFilters{}, fmt.Errorf("invalid direction: must be 'buy' or 'sell'")
		}
		filters.Direction = direction
	}

	if itemParam != "" {
		itemID := strings.TrimSpace(itemParam)
		for _, r := range itemID {
			if r < '0' || r > '9' {
				return model.TradeLogFilters{}, fmt.Errorf("invalid item: must be a numeric item id")
			}
		}
		filters.ItemID = itemID
	}

	return filters, nil
}

// parseFilterTime parses date strings for filter parameters.
// Accepts YYYY-MM-DD, RFC3339, and RFC3339 with milliseconds formats.
func parseFilterTime(str string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05.000Z07:00"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date or datetime", str)
}
