package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// nextReference draws the next number from a database sequence and formats
// a human-readable reference code: PREFIX/YYYY/NNNN.
func nextReference(ctx context.Context, q querier, seqName, prefix string) (string, error) {
	var n int64
	if err := q.QueryRowContext(ctx, fmt.Sprintf("SELECT nextval('%s')", seqName)).Scan(&n); err != nil {
		return "", fmt.Errorf("failed to draw sequence %s: %w", seqName, err)
	}
	return fmt.Sprintf("%s/%d/%04d", prefix, time.Now().Year(), n), nil
}
