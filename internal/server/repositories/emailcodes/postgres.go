package emailcodes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/okdong/marketplace/internal/common"
	"github.com/okdong/marketplace/internal/dbx"
	"github.com/okdong/marketplace/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, email, code string, validity time.Duration) error {
	query := `
		INSERT INTO email_codes (email, code, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at
	`
	if _, err := r.db.ExecContext(ctx, query, email, code, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, email string) (*models.EmailCode, error) {
	query := `
		SELECT email, code, expires_at
		FROM email_codes
		WHERE email = $1 AND expires_at > NOW()
	`
	record := &models.EmailCode{}
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&record.Email, &record.Code, &record.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return record, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, email string) error {
	query := `
		DELETE FROM email_codes
		WHERE email = $1
	`
	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
