package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// timestampLayout is the storage format of every DATETIME column. All values are UTC
// and fixed width, so text comparison in SQL orders them chronologically.
const timestampLayout = "2006-01-02T15:04:05Z"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// FormatTime renders t in the storage format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// placeholders returns "?,?,..." with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
