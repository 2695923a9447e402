package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

const userColumns = `id, login_id, password_hash, display_name, is_admin, email, verification_code, is_verified`

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.LoginID, &user.PasswordHash, &user.DisplayName,
		&user.IsAdmin, &user.Email, &user.VerificationCode, &user.IsVerified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (login_id, password_hash, display_name, is_admin)
         VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.LoginID, user.PasswordHash, user.DisplayName, user.IsAdmin).Scan(&user.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login_id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, loginID))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) ExistsDisplayName(ctx context.Context, displayName string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE display_name = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, displayName).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRowAffected(res)
}

func (r *PostgresRepository) SetVerificationCode(ctx context.Context, id int64, code string) error {
	query := `UPDATE users SET verification_code = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, code)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRowAffected(res)
}

func (r *PostgresRepository) ConfirmVerification(ctx context.Context, id int64) error {
	query := `UPDATE users SET is_verified = TRUE, verification_code = NULL WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRowAffected(res)
}

func (r *PostgresRepository) SetEmail(ctx context.Context, id int64, email string) error {
	query := `UPDATE users SET email = $2, is_verified = TRUE WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRowAffected(res)
}

// requireRowAffected maps zero-row updates to common.ErrorNotFound so
// services can distinguish a missing principal from a db failure.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
