package models

import "time"

// Post is a marketplace listing. DocumentNumber is allocated from the
// per-market counter in the same transaction that creates the row.
type Post struct {
	ID             int64
	UserID         int64
	MarketType     string
	DocumentNumber int64
	Title          string
	Content        string
	CommentCount   int64
	BookmarkCount  int64
	CreatedAt      time.Time
}

// Comment belongs to a post; creating or deleting one adjusts the post's
// CommentCount inside the same transaction.
type Comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

// Bookmark marks a post as saved by a user.
type Bookmark struct {
	UserID int64
	PostID int64
}
