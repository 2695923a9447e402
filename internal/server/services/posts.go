package services

import (
	"context"
	"database/sql"

	"github.com/okdong/marketplace/internal/common"
	"github.com/okdong/marketplace/internal/dbx"
	"github.com/okdong/marketplace/internal/server/models"
	"github.com/okdong/marketplace/internal/server/repositories/repomanager"
)

// PostService owns the multi-write post operations. Every operation that
// touches more than one row runs under a single dbx.WithTx so the writes
// land or vanish together.
type PostService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, rm repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, rm: rm}
}

// Create allocates the next document number for the post's market type and
// inserts the post in the same transaction. The counter row stays locked
// until commit, so concurrent creations for one market type serialize and
// receive consecutive numbers.
func (s *PostService) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	var created *models.Post
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := s.rm.Counters(tx).Next(ctx, post.MarketType)
		if err != nil {
			return err
		}
		post.DocumentNumber = n
		created, err = s.rm.Posts(tx).Create(ctx, post)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID loads a single post.
func (s *PostService) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return s.rm.Posts(s.db).GetByID(ctx, id)
}

// AddComment inserts the comment and bumps the post's comment counter in one
// transaction.
func (s *PostService) AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	var created *models.Comment
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		created, err = s.rm.Comments(tx).Create(ctx, comment)
		if err != nil {
			return err
		}
		return s.rm.Posts(tx).AdjustCommentCount(ctx, comment.PostID, 1)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteComment removes the comment and decrements the post's comment
// counter in one transaction. Only the comment's author may delete it.
func (s *PostService) DeleteComment(ctx context.Context, commentID, userID int64) error {
	comment, err := s.rm.Comments(s.db).GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return common.ErrUnauthenticated
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Comments(tx).Delete(ctx, commentID); err != nil {
			return err
		}
		return s.rm.Posts(tx).AdjustCommentCount(ctx, comment.PostID, -1)
	})
}

// Bookmark stores the bookmark and bumps the post's bookmark counter in one
// transaction. Bookmarking twice yields ErrConflict and leaves the counter
// untouched.
func (s *PostService) Bookmark(ctx context.Context, userID, postID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Bookmarks(tx).Create(ctx, userID, postID); err != nil {
			return err
		}
		return s.rm.Posts(tx).AdjustBookmarkCount(ctx, postID, 1)
	})
}

// IsBookmarked reports whether the user has bookmarked the post.
func (s *PostService) IsBookmarked(ctx context.Context, userID, postID int64) (bool, error) {
	return s.rm.Bookmarks(s.db).Exists(ctx, userID, postID)
}

// Unbookmark removes the bookmark and decrements the post's bookmark counter
// in one transaction.
func (s *PostService) Unbookmark(ctx context.Context, userID, postID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Bookmarks(tx).Delete(ctx, userID, postID); err != nil {
			return err
		}
		return s.rm.Posts(tx).AdjustBookmarkCount(ctx, postID, -1)
	})
}
