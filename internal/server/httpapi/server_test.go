package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/okdong/marketplace/internal/common"
	"github.com/okdong/marketplace/internal/dbx"
	"github.com/okdong/marketplace/internal/logging"
	"github.com/okdong/marketplace/internal/server/auth"
	"github.com/okdong/marketplace/internal/server/config"
	"github.com/okdong/marketplace/internal/server/mail"
	"github.com/okdong/marketplace/internal/server/models"
	bookmarksrepo "github.com/okdong/marketplace/internal/server/repositories/bookmarks"
	commentsrepo "github.com/okdong/marketplace/internal/server/repositories/comments"
	countersrepo "github.com/okdong/marketplace/internal/server/repositories/counters"
	emailcodesrepo "github.com/okdong/marketplace/internal/server/repositories/emailcodes"
	postsrepo "github.com/okdong/marketplace/internal/server/repositories/posts"
	usersrepo "github.com/okdong/marketplace/internal/server/repositories/users"
	"github.com/okdong/marketplace/internal/server/services"
)

// In-memory repositories backing the handler tests. The manager ignores the
// DBTX it is given, so sqlmock only has to satisfy Begin/Commit.

type memUsers struct {
	users  map[int64]*models.User
	nextID int64
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsers) GetByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	for _, u := range m.users {
		if u.LoginID == loginID {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsers) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email.Valid && u.Email.String == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsers) ExistsDisplayName(ctx context.Context, displayName string) (bool, error) {
	for _, u := range m.users {
		if u.DisplayName == displayName {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) UpdatePassword(ctx context.Context, id int64, hash string) error {
	u, ok := m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memUsers) SetVerificationCode(ctx context.Context, id int64, code string) error {
	u, ok := m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.VerificationCode = sql.NullString{String: code, Valid: true}
	return nil
}

func (m *memUsers) ConfirmVerification(ctx context.Context, id int64) error {
	u, ok := m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.IsVerified = true
	u.VerificationCode = sql.NullString{}
	return nil
}

func (m *memUsers) SetEmail(ctx context.Context, id int64, email string) error {
	u, ok := m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Email = sql.NullString{String: email, Valid: true}
	u.IsVerified = true
	return nil
}

type memEmailCodes struct {
	codes map[string]*models.EmailCode
}

func (m *memEmailCodes) Upsert(ctx context.Context, email, code string, validity time.Duration) error {
	m.codes[email] = &models.EmailCode{Email: email, Code: code, ExpiresAt: time.Now().Add(validity)}
	return nil
}

func (m *memEmailCodes) Find(ctx context.Context, email string) (*models.EmailCode, error) {
	rec, ok := m.codes[email]
	if !ok || rec.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrorNotFound
	}
	return rec, nil
}

func (m *memEmailCodes) Delete(ctx context.Context, email string) error {
	delete(m.codes, email)
	return nil
}

type memCounters struct {
	seq map[string]int64
}

func (m *memCounters) Next(ctx context.Context, marketType string) (int64, error) {
	m.seq[marketType]++
	return m.seq[marketType], nil
}

type memPosts struct {
	posts  map[int64]*models.Post
	nextID int64
}

func (m *memPosts) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	m.posts[p.ID] = p
	return p, nil
}

func (m *memPosts) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	if p, ok := m.posts[id]; ok {
		return p, nil
	}
	return nil, common.ErrorNotFound
}

func (m *memPosts) AdjustCommentCount(ctx context.Context, postID int64, delta int64) error {
	p, ok := m.posts[postID]
	if !ok {
		return common.ErrorNotFound
	}
	p.CommentCount += delta
	return nil
}

func (m *memPosts) AdjustBookmarkCount(ctx context.Context, postID int64, delta int64) error {
	p, ok := m.posts[postID]
	if !ok {
		return common.ErrorNotFound
	}
	p.BookmarkCount += delta
	return nil
}

type memComments struct {
	comments map[int64]*models.Comment
	nextID   int64
}

func (m *memComments) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now()
	m.comments[c.ID] = c
	return c, nil
}

func (m *memComments) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	if c, ok := m.comments[id]; ok {
		return c, nil
	}
	return nil, common.ErrorNotFound
}

func (m *memComments) Delete(ctx context.Context, id int64) error {
	if _, ok := m.comments[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.comments, id)
	return nil
}

type memBookmarks struct {
	marks map[[2]int64]bool
}

func (m *memBookmarks) Create(ctx context.Context, userID, postID int64) error {
	key := [2]int64{userID, postID}
	if m.marks[key] {
		return common.ErrConflict
	}
	m.marks[key] = true
	return nil
}

func (m *memBookmarks) Delete(ctx context.Context, userID, postID int64) error {
	key := [2]int64{userID, postID}
	if !m.marks[key] {
		return common.ErrorNotFound
	}
	delete(m.marks, key)
	return nil
}

func (m *memBookmarks) Exists(ctx context.Context, userID, postID int64) (bool, error) {
	return m.marks[[2]int64{userID, postID}], nil
}

type memRepoManager struct {
	u *memUsers
	e *memEmailCodes
	c *memCounters
	p *memPosts
	m *memComments
	b *memBookmarks
}

func newMemRepoManager() *memRepoManager {
	return &memRepoManager{
		u: &memUsers{users: map[int64]*models.User{}, nextID: 1},
		e: &memEmailCodes{codes: map[string]*models.EmailCode{}},
		c: &memCounters{seq: map[string]int64{}},
		p: &memPosts{posts: map[int64]*models.Post{}, nextID: 1},
		m: &memComments{comments: map[int64]*models.Comment{}, nextID: 1},
		b: &memBookmarks{marks: map[[2]int64]bool{}},
	}
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.u }
func (m *memRepoManager) EmailCodes(db dbx.DBTX) emailcodesrepo.Repository { return m.e }
func (m *memRepoManager) Counters(db dbx.DBTX) countersrepo.Repository { return m.c }
func (m *memRepoManager) Posts(db dbx.DBTX) postsrepo.Repository { return m.p }
func (m *memRepoManager) Comments(db dbx.DBTX) commentsrepo.Repository { return m.m }
func (m *memRepoManager) Bookmarks(db dbx.DBTX) bookmarksrepo.Repository { return m.b }

type discardMailer struct{}

func (discardMailer) Send(context.Context, mail.Message) error { return nil }

type discardLogger struct{}

func (discardLogger) Debug(context.Context, string, ...any) {}
func (discardLogger) Info(context.Context, string, ...any)  {}
func (discardLogger) Warn(context.Context, string, ...any)  {}
func (discardLogger) Error(context.Context, string, ...any) {}
func (l discardLogger) With(...any) logging.Logger { return l }

type testEnv struct {
	server *Server
	rm     *memRepoManager
	mock   sqlmock.Sqlmock
	tokens *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	rm := newMemRepoManager()
	tokens := auth.NewTokenManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration)
	codes := services.NewCodeService(db, rm, cfg.CodeValidityDuration)
	mailer := discardMailer{}
	logger := discardLogger{}

	authService := services.NewAuthService(db, rm, tokens, codes, mailer, logger)
	userService := services.NewUserService(db, rm, tokens, codes, mailer)
	postService := services.NewPostService(db, rm)

	srv := NewServer(cfg, logger, tokens, authService, userService, postService)
	return &testEnv{server: srv, rm: rm, mock: mock, tokens: tokens}
}

// seedUser registers a user directly in the fake store and returns it
// together with a valid access token.
func (e *testEnv) seedUser(t *testing.T, loginID, password string) (*models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	user, err := e.rm.u.Create(context.Background(), &models.User{
		LoginID:      loginID,
		PasswordHash: hash,
		DisplayName:  loginID,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	access, err := e.tokens.IssueAccess(user)
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}
	return user, access
}

func cookieValue(resp *http.Response, name string) (string, bool) {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}
