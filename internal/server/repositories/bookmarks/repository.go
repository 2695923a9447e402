// Package bookmarks declares the repository contract for user bookmarks.
package bookmarks

import "context"

type Repository interface {
	// Create stores a bookmark; duplicates yield common.ErrConflict.
	Create(ctx context.Context, userID, postID int64) error

	// Delete removes a bookmark; missing rows yield common.ErrorNotFound.
	Delete(ctx context.Context, userID, postID int64) error

	// Exists reports whether the user has bookmarked the post.
	Exists(ctx context.Context, userID, postID int64) (bool, error)
}
