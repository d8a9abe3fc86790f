package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/apperrors"
)

// TornConfigRepository provides data access methods for the single row torn_config table.
// It only ever sees the encrypted API key.
type TornConfigRepository struct {
	db *sql.DB
}

// NewTornConfigRepository creates a new TornConfigRepository with the provided database connection.
func NewTornConfigRepository(db *sql.DB) *TornConfigRepository {
	return &TornConfigRepository{db: db}
}

// GetEncryptedAPIKey returns the stored encrypted API key and the time it was set.
// Returns apperrors.ErrTornConfigNotFound when no key is stored.
func (r *TornConfigRepository) GetEncryptedAPIKey(ctx context.Context) (string, time.Time, error) {
	var key, updatedAtStr string

	err := r.db.QueryRowContext(ctx,
		`SELECT api_key_encrypted, updated_at FROM torn_config WHERE id = 1`,
	).Scan(&key, &updatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, apperrors.ErrTornConfigNotFound
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to query torn_config table: %w", err)
	}

	updatedAt, err := ParseTime(updatedAtStr)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return key, updatedAt, nil
}

// SetEncryptedAPIKey stores the encrypted API key, replacing any existing one.
func (r *TornConfigRepository) SetEncryptedAPIKey(ctx context.Context, encrypted string, updatedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO torn_config (id, api_key_encrypted, updated_at)
        VALUES (1, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            api_key_encrypted = excluded.api_key_encrypted,
            updated_at = excluded.updated_at
    `,
		encrypted,
		FormatTime(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to set torn_config: %w", err)
	}
	return nil
}
