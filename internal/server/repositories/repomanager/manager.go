// Package repomanager wires repository implementations to database handles.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/okdong/marketplace/internal/dbx"
	"github.com/okdong/marketplace/internal/server/repositories/bookmarks"
	"github.com/okdong/marketplace/internal/server/repositories/comments"
	"github.com/okdong/marketplace/internal/server/repositories/counters"
	"github.com/okdong/marketplace/internal/server/repositories/emailcodes"
	"github.com/okdong/marketplace/internal/server/repositories/posts"
	"github.com/okdong/marketplace/internal/server/repositories/users"
)

// RepositoryManager builds repositories bound to a DBTX. Passing *sql.DB
// yields standalone auto-commit repositories; passing the handle from
// dbx.WithTx binds the repository to that transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	EmailCodes(db dbx.DBTX) emailcodes.Repository
	Counters(db dbx.DBTX) counters.Repository
	Posts(db dbx.DBTX) posts.Repository
	Comments(db dbx.DBTX) comments.Repository
	Bookmarks(db dbx.DBTX) bookmarks.Repository
}
