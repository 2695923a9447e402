package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/okdong/marketplace/internal/common"
	"github.com/okdong/marketplace/internal/dbx"
	"github.com/okdong/marketplace/internal/logging"
	"github.com/okdong/marketplace/internal/server/mail"
	"github.com/okdong/marketplace/internal/server/models"
	bookmarksrepo "github.com/okdong/marketplace/internal/server/repositories/bookmarks"
	commentsrepo "github.com/okdong/marketplace/internal/server/repositories/comments"
	countersrepo "github.com/okdong/marketplace/internal/server/repositories/counters"
	emailcodesrepo "github.com/okdong/marketplace/internal/server/repositories/emailcodes"
	postsrepo "github.com/okdong/marketplace/internal/server/repositories/posts"
	usersrepo "github.com/okdong/marketplace/internal/server/repositories/users"
)

// In-memory fakes shared by the service tests. The fake manager hands out
// the same instances regardless of the DBTX, which is fine for tests that
// only assert on business behavior, not on transaction plumbing.

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	users  map[int64]*models.User
	nextID int64
	err    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUsersRepo) add(u *models.User) *models.User {
	if u.ID == 0 {
		u.ID = f.nextID
	}
	if u.ID >= f.nextID {
		f.nextID = u.ID + 1
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.add(u), nil
}

func (f *fakeUsersRepo) GetByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.LoginID == loginID {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email.Valid && u.Email.String == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) ExistsDisplayName(ctx context.Context, displayName string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, u := range f.users {
		if u.DisplayName == displayName {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUsersRepo) SetVerificationCode(ctx context.Context, id int64, code string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.VerificationCode = sql.NullString{String: code, Valid: true}
	return nil
}

func (f *fakeUsersRepo) ConfirmVerification(ctx context.Context, id int64) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.IsVerified = true
	u.VerificationCode = sql.NullString{}
	return nil
}

func (f *fakeUsersRepo) SetEmail(ctx context.Context, id int64, email string) error {
	u, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Email = sql.NullString{String: email, Valid: true}
	u.IsVerified = true
	return nil
}

type fakeCodeRecord struct {
	code      string
	expiresAt time.Time
}

type fakeEmailCodesRepo struct {
	records   map[string]fakeCodeRecord
	err       error
	deleteErr error
}

func newFakeEmailCodesRepo() *fakeEmailCodesRepo {
	return &fakeEmailCodesRepo{records: map[string]fakeCodeRecord{}}
}

func (f *fakeEmailCodesRepo) Upsert(ctx context.Context, email, code string, validity time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.records[email] = fakeCodeRecord{code: code, expiresAt: time.Now().Add(validity)}
	return nil
}

func (f *fakeEmailCodesRepo) Find(ctx context.Context, email string) (*models.EmailCode, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[email]
	if !ok || rec.expiresAt.Before(time.Now()) {
		return nil, common.ErrorNotFound
	}
	return &models.EmailCode{Email: email, Code: rec.code, ExpiresAt: rec.expiresAt}, nil
}

func (f *fakeEmailCodesRepo) Delete(ctx context.Context, email string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if f.err != nil {
		return f.err
	}
	delete(f.records, email)
	return nil
}

type fakeCountersRepo struct {
	counters map[string]int64
	err      error
}

func newFakeCountersRepo() *fakeCountersRepo {
	return &fakeCountersRepo{counters: map[string]int64{}}
}

func (f *fakeCountersRepo) Next(ctx context.Context, marketType string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counters[marketType]++
	return f.counters[marketType], nil
}

type fakePostsRepo struct {
	posts     map[int64]*models.Post
	nextID    int64
	createErr error
	adjustErr error
}

func newFakePostsRepo() *fakePostsRepo {
	return &fakePostsRepo{posts: map[int64]*models.Post{}, nextID: 1}
}

func (f *fakePostsRepo) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = f.nextID
	f.nextID++
	p.CreatedAt = time.Now()
	f.posts[p.ID] = p
	return p, nil
}

func (f *fakePostsRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	if p, ok := f.posts[id]; ok {
		return p, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakePostsRepo) AdjustCommentCount(ctx context.Context, postID int64, delta int64) error {
	if f.adjustErr != nil {
		return f.adjustErr
	}
	p, ok := f.posts[postID]
	if !ok {
		return common.ErrorNotFound
	}
	p.CommentCount += delta
	return nil
}

func (f *fakePostsRepo) AdjustBookmarkCount(ctx context.Context, postID int64, delta int64) error {
	if f.adjustErr != nil {
		return f.adjustErr
	}
	p, ok := f.posts[postID]
	if !ok {
		return common.ErrorNotFound
	}
	p.BookmarkCount += delta
	return nil
}

type fakeCommentsRepo struct {
	comments  map[int64]*models.Comment
	nextID    int64
	createErr error
}

func newFakeCommentsRepo() *fakeCommentsRepo {
	return &fakeCommentsRepo{comments: map[int64]*models.Comment{}, nextID: 1}
}

func (f *fakeCommentsRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = f.nextID
	f.nextID++
	c.CreatedAt = time.Now()
	f.comments[c.ID] = c
	return c, nil
}

func (f *fakeCommentsRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	if c, ok := f.comments[id]; ok {
		return c, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCommentsRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.comments, id)
	return nil
}

type fakeBookmarksRepo struct {
	marks map[[2]int64]bool
	err   error
}

func newFakeBookmarksRepo() *fakeBookmarksRepo {
	return &fakeBookmarksRepo{marks: map[[2]int64]bool{}}
}

func (f *fakeBookmarksRepo) Create(ctx context.Context, userID, postID int64) error {
	if f.err != nil {
		return f.err
	}
	key := [2]int64{userID, postID}
	if f.marks[key] {
		return common.ErrConflict
	}
	f.marks[key] = true
	return nil
}

func (f *fakeBookmarksRepo) Delete(ctx context.Context, userID, postID int64) error {
	key := [2]int64{userID, postID}
	if !f.marks[key] {
		return common.ErrorNotFound
	}
	delete(f.marks, key)
	return nil
}

func (f *fakeBookmarksRepo) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	return f.marks[[2]int64{userID, postID}], nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	e *fakeEmailCodesRepo
	c *fakeCountersRepo
	p *fakePostsRepo
	m *fakeCommentsRepo
	b *fakeBookmarksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: newFakeUsersRepo(),
		e: newFakeEmailCodesRepo(),
		c: newFakeCountersRepo(),
		p: newFakePostsRepo(),
		m: newFakeCommentsRepo(),
		b: newFakeBookmarksRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.u }
func (m *fakeRepoManager) EmailCodes(db dbx.DBTX) emailcodesrepo.Repository { return m.e }
func (m *fakeRepoManager) Counters(db dbx.DBTX) countersrepo.Repository { return m.c }
func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository { return m.p }
func (m *fakeRepoManager) Comments(db dbx.DBTX) commentsrepo.Repository { return m.m }
func (m *fakeRepoManager) Bookmarks(db dbx.DBTX) bookmarksrepo.Repository { return m.b }

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger { return l }

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}
