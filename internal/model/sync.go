package model

import "time"

// SyncResult summarizes one refresh of data from the Torn API.
type SyncResult struct {
	Fetched          int       `json:"fetched"`
	Stored           int       `json:"stored"`
	FailedCategories []int     `json:"failedCategories,omitempty"`
	FinishedAt       time.Time `json:"finishedAt"`
}

// TornConfigStatus reports whether an API key is available, without exposing it.
// Source is "database", "environment" or empty when no key is configured.
type TornConfigStatus struct {
	Configured bool       `json:"configured"`
	Source     string     `json:"source,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}
