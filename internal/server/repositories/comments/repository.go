// Package comments declares the repository contract for post comments.
package comments

import (
	"context"

	"github.com/okdong/marketplace/internal/server/models"
)

type Repository interface {
	// Create inserts a comment and returns it with the assigned id.
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)

	// GetByID returns a comment or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.Comment, error)

	// Delete removes a comment; missing rows yield common.ErrorNotFound.
	Delete(ctx context.Context, id int64) error
}
