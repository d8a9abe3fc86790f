package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

// TradeLogRepository provides data access methods for the trade_log and trade_log_item tables.
// It stores raw Torn trade logs and exposes them as flattened per-item transactions.
type TradeLogRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTradeLogRepository creates a new TradeLogRepository with the provided database connection.
func NewTradeLogRepository(db *sql.DB) *TradeLogRepository {
	return &TradeLogRepository{db: db}
}

// WithTx returns a copy of the repository that runs its statements inside tx.
func (r *TradeLogRepository) WithTx(tx *sql.Tx) *TradeLogRepository {
	return &TradeLogRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TradeLogRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertLog stores a trade log and its items. A log whose ID is already stored is left
// untouched, so re-fetching an overlapping page of logs is harmless.
//
// Returns true when the log was new.
func (r *TradeLogRepository) InsertLog(ctx context.Context, log model.TradeLog) (bool, error) {
	q := r.getQuerier()

	result, err := q.ExecContext(ctx, `
        INSERT OR IGNORE INTO trade_log (id, timestamp, category_id, title, seller, cost_each, cost_total)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `,
		log.ID,
		FormatTime(log.Timestamp),
		log.CategoryID,
		log.Title,
		log.Seller,
		log.CostEach,
		log.CostTotal,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert trade_log: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if inserted == 0 {
		return false, nil
	}

	for _, item := range log.Items {
		_, err := q.ExecContext(ctx, `
            INSERT INTO trade_log_item (log_id, item_id, uid, quantity)
            VALUES (?, ?, ?, ?)
        `,
			log.ID,
			item.ItemID,
			item.UID,
			item.Quantity,
		)
		if err != nil {
			return false, fmt.Errorf("failed to insert trade_log_item: %w", err)
		}
	}

	return true, nil
}

// GetTransactions returns one transaction per (log, item) pair for every log with a
// timestamp at or after since. A zero since returns the complete history.
//
// Transactions are ordered by timestamp ascending; logs sharing a timestamp keep their
// storage order and items keep their insertion order.
func (r *TradeLogRepository) GetTransactions(ctx context.Context, since time.Time) ([]model.Transaction, error) {
	query := `
        SELECT l.id, i.item_id, i.quantity, l.cost_each, l.category_id, l.timestamp
        FROM trade_log_item i
        INNER JOIN trade_log l ON l.id = i.log_id
    `
	var args []any
	if !since.IsZero() {
		query += ` WHERE l.timestamp >= ?`
		args = append(args, FormatTime(since))
	}
	query += ` ORDER BY l.timestamp ASC, l.rowid ASC, i.id ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade_log table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		var t model.Transaction
		var timestampStr string

		err := rows.Scan(
			&t.LogID,
			&t.ItemID,
			&t.Quantity,
			&t.UnitPrice,
			&t.CategoryID,
			&timestampStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade_log table results: %w", err)
		}

		t.Timestamp, err = ParseTime(timestampStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade_log table: %w", err)
	}

	return transactions, nil
}

// LatestTimestamp returns the timestamp of the newest stored log of the given category.
// Returns the zero time when no log of that category is stored.
func (r *TradeLogRepository) LatestTimestamp(ctx context.Context, categoryID int) (time.Time, error) {
	var latest sql.NullString

	err := r.getQuerier().QueryRowContext(ctx,
		`SELECT MAX(timestamp) FROM trade_log WHERE category_id = ?`,
		categoryID,
	).Scan(&latest)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query latest trade_log: %w", err)
	}
	if !latest.Valid {
		return time.Time{}, nil
	}

	return ParseTime(latest.String)
}
