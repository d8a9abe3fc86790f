package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the snapshot and snapshot_item tables.
type SnapshotRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// WithTx returns a copy of the repository that runs its statements inside tx.
func (r *SnapshotRepository) WithTx(tx *sql.Tx) *SnapshotRepository {
	return &SnapshotRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *SnapshotRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertSnapshot stores the snapshot header and one row per item quantity.
// Callers should run it inside a transaction so a snapshot is never stored partially.
func (r *SnapshotRepository) InsertSnapshot(ctx context.Context, s model.Snapshot) error {
	q := r.getQuerier()

	_, err := q.ExecContext(ctx,
		`INSERT INTO snapshot (id, timestamp) VALUES (?, ?)`,
		s.ID,
		FormatTime(s.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	for itemID, qty := range s.Quantities {
		_, err := q.ExecContext(ctx,
			`INSERT INTO snapshot_item (snapshot_id, item_id, quantity) VALUES (?, ?, ?)`,
			s.ID,
			itemID,
			qty,
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot_item: %w", err)
		}
	}

	return nil
}

// GetLatestSnapshot returns the snapshot with the most recent timestamp.
// Returns nil without error when no snapshot has been stored yet.
func (r *SnapshotRepository) GetLatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var id, timestampStr string

	err := r.getQuerier().QueryRowContext(ctx, `
        SELECT id, timestamp
        FROM snapshot
        ORDER BY timestamp DESC, rowid DESC
        LIMIT 1
    `).Scan(&id, &timestampStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot table: %w", err)
	}

	return r.loadSnapshot(ctx, id, timestampStr)
}

// GetSnapshot returns the snapshot with the given ID.
// Returns apperrors.ErrSnapshotNotFound when it does not exist.
func (r *SnapshotRepository) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	var timestampStr string

	err := r.getQuerier().QueryRowContext(ctx,
		`SELECT timestamp FROM snapshot WHERE id = ?`,
		id,
	).Scan(&timestampStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot table: %w", err)
	}

	return r.loadSnapshot(ctx, id, timestampStr)
}

func (r *SnapshotRepository) loadSnapshot(ctx context.Context, id, timestampStr string) (*model.Snapshot, error) {
	timestamp, err := ParseTime(timestampStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}

	rows, err := r.getQuerier().QueryContext(ctx,
		`SELECT item_id, quantity FROM snapshot_item WHERE snapshot_id = ?`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot_item table: %w", err)
	}
	defer rows.Close()

	snapshot := &model.Snapshot{
		ID:         id,
		Timestamp:  timestamp,
		Quantities: make(map[string]int64),
	}

	for rows.Next() {
		var itemID string
		var qty int64
		if err := rows.Scan(&itemID, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot_item table results: %w", err)
		}
		snapshot.Quantities[itemID] = qty
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot_item table: %w", err)
	}

	return snapshot, nil
}

// ListSnapshots returns a summary of every stored snapshot, newest first.
func (r *SnapshotRepository) ListSnapshots(ctx context.Context) ([]model.SnapshotSummary, error) {
	rows, err := r.getQuerier().QueryContext(ctx, `
        SELECT s.id, s.timestamp, COUNT(si.item_id)
        FROM snapshot s
        LEFT JOIN snapshot_item si ON si.snapshot_id = s.id
        GROUP BY s.id, s.timestamp
        ORDER BY s.timestamp DESC, s.rowid DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot table: %w", err)
	}
	defer rows.Close()

	summaries := []model.SnapshotSummary{}

	for rows.Next() {
		var s model.SnapshotSummary
		var timestampStr string

		if err := rows.Scan(&s.ID, &timestampStr, &s.ItemCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot table results: %w", err)
		}
		s.Timestamp, err = ParseTime(timestampStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot table: %w", err)
	}

	return summaries, nil
}
