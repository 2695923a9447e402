package posts

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

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {

	query := `
		INSERT INTO posts (user_id, market_type, document_number, title, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		post.UserID, post.MarketType, post.DocumentNumber, post.Title, post.Content).
		Scan(&post.ID, &post.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT id, user_id, market_type, document_number, title, content, comment_count, bookmark_count, created_at
		FROM posts
		WHERE id = $1
	`

	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.UserID, &post.MarketType, &post.DocumentNumber,
		&post.Title, &post.Content, &post.CommentCount, &post.BookmarkCount, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

func (r *PostgresRepository) AdjustCommentCount(ctx context.Context, postID int64, delta int64) error {
	query := `
		UPDATE posts
		SET comment_count = comment_count + $2
		WHERE id = $1
	`
	return r.adjust(ctx, query, postID, delta)
}

func (r *PostgresRepository) AdjustBookmarkCount(ctx context.Context, postID int64, delta int64) error {
	query := `
		UPDATE posts
		SET bookmark_count = bookmark_count + $2
		WHERE id = $1
	`
	return r.adjust(ctx, query, postID, delta)
}

func (r *PostgresRepository) adjust(ctx context.Context, query string, postID, delta int64) error {
	res, err := r.db.ExecContext(ctx, query, postID, delta)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
