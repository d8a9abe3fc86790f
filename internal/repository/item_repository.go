package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

// ItemRepository provides data access methods for the item table.
// It holds the item catalogue used to enrich reports with names and market prices.
type ItemRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewItemRepository creates a new ItemRepository with the provided database connection.
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// WithTx returns a copy of the repository that runs its statements inside tx.
func (r *ItemRepository) WithTx(tx *sql.Tx) *ItemRepository {
	return &ItemRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *ItemRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// UpsertItems inserts the items, replacing name, type, market price and update time of
// items that are already stored.
func (r *ItemRepository) UpsertItems(ctx context.Context, items []model.Item) error {
	query := `
        INSERT INTO item (id, name, type, market_price, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            type = excluded.type,
            market_price = excluded.market_price,
            updated_at = excluded.updated_at
    `

	q := r.getQuerier()
	for _, item := range items {
		_, err := q.ExecContext(ctx, query,
			item.ID,
			item.Name,
			item.Type,
			item.MarketPrice,
			FormatTime(item.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert item %s: %w", item.ID, err)
		}
	}

	return nil
}

// GetItems returns the catalogue entries for the given item IDs keyed by ID.
// IDs that are not stored are absent from the result. An empty ids slice returns the
// complete catalogue.
func (r *ItemRepository) GetItems(ctx context.Context, ids []string) (map[string]model.Item, error) {
	query := `SELECT id, name, type, market_price, updated_at FROM item`

	args := make([]any, 0, len(ids))
	if len(ids) > 0 {
		query += ` WHERE id IN (` + placeholders(len(ids)) + `)`
		for _, id := range ids {
			args = append(args, id)
		}
	}

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query item table: %w", err)
	}
	defer rows.Close()

	items := make(map[string]model.Item)

	for rows.Next() {
		var item model.Item
		var itemType sql.NullString
		var marketPrice sql.NullFloat64
		var updatedAtStr string

		if err := rows.Scan(&item.ID, &item.Name, &itemType, &marketPrice, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan item table results: %w", err)
		}

		item.Type = itemType.String
		if marketPrice.Valid {
			price := marketPrice.Float64
			item.MarketPrice = &price
		}
		item.UpdatedAt, err = ParseTime(updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		items[item.ID] = item
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item table: %w", err)
	}

	return items, nil
}
