package model

import "time"

// Item holds catalogue metadata for a tradable item.
// It is used for display enrichment of reports only and never for accounting.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type,omitempty"`
	MarketPrice *float64  `json:"marketPrice"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}
