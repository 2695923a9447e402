package counters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/okdong/marketplace/internal/dbx"
)

// PostgresRepository implements Repository over dbx.DBTX. Next only behaves
// atomically when the DBTX is a transaction handle; the row lock taken by
// SELECT ... FOR UPDATE is held until that transaction ends.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Next(ctx context.Context, marketType string) (int64, error) {

	selectQuery := `
		SELECT counter
		FROM document_counters
		WHERE market_type = $1
		FOR UPDATE
	`

	var current int64
	err := r.db.QueryRowContext(ctx, selectQuery, marketType).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		insertQuery := `
			INSERT INTO document_counters (market_type, counter)
			VALUES ($1, 1)
			RETURNING counter
		`
		var n int64
		if err := r.db.QueryRowContext(ctx, insertQuery, marketType).Scan(&n); err != nil {
			return 0, fmt.Errorf("db error: %w", err)
		}
		return n, nil
	}
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	updateQuery := `
		UPDATE document_counters
		SET counter = counter + 1
		WHERE market_type = $1
		RETURNING counter
	`
	var next int64
	if err := r.db.QueryRowContext(ctx, updateQuery, marketType).Scan(&next); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return next, nil
}
