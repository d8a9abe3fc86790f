package model

import "time"

// Snapshot is an authoritative absolute inventory state at one instant.
// Quantities maps item ID to quantity held.
type Snapshot struct {
	ID         string           `json:"id"`
	Timestamp  time.Time        `json:"timestamp"`
	Quantities map[string]int64 `json:"quantities"`
}

// SnapshotSummary is the list representation of a snapshot.
type SnapshotSummary struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ItemCount int       `json:"itemCount"`
}
