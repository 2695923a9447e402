// Package posts declares the repository contract for marketplace listings.
package posts

import (
	"context"

	"github.com/okdong/marketplace/internal/server/models"
)

// Repository defines persistence operations for posts. Count adjustments are
// separate single-row writes so services can pair them with comment/bookmark
// writes inside one transaction.
type Repository interface {
	// Create inserts a post (document number already allocated) and returns
	// it with the assigned id.
	Create(ctx context.Context, post *models.Post) (*models.Post, error)

	// GetByID returns a post or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.Post, error)

	// AdjustCommentCount adds delta to the post's comment counter.
	AdjustCommentCount(ctx context.Context, postID int64, delta int64) error

	// AdjustBookmarkCount adds delta to the post's bookmark counter.
	AdjustBookmarkCount(ctx context.Context, postID int64, delta int64) error
}
