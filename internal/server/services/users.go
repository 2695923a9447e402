package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/okdong/marketplace/internal/common"
	"github.com/okdong/marketplace/internal/dbx"
	"github.com/okdong/marketplace/internal/server/auth"
	"github.com/okdong/marketplace/internal/server/mail"
	"github.com/okdong/marketplace/internal/server/models"
	"github.com/okdong/marketplace/internal/server/repositories/repomanager"
)

// UserService handles registration and profile-level email binding.
type UserService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	tokens *auth.TokenManager
	codes  *CodeService
	mailer mail.Mailer
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, tokens *auth.TokenManager, codes *CodeService, mailer mail.Mailer) *UserService {
	return &UserService{db: db, rm: rm, tokens: tokens, codes: codes, mailer: mailer}
}

// Register creates a user after uniqueness checks on login id and display
// name, then logs the new user in by minting a token pair.
func (s *UserService) Register(ctx context.Context, loginID, password, displayName string) (*auth.TokenPair, error) {
	repo := s.rm.Users(s.db)

	if _, err := repo.GetByLoginID(ctx, loginID); err == nil {
		return nil, common.ErrConflict
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	taken, err := repo.ExistsDisplayName(ctx, displayName)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, common.ErrConflict
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := repo.Create(ctx, &models.User{
		LoginID:      loginID,
		PasswordHash: hash,
		DisplayName:  displayName,
	})
	if err != nil {
		return nil, err
	}

	return s.tokens.IssuePair(user)
}

// GetByID loads a user by internal id.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.rm.Users(s.db).GetByID(ctx, id)
}

// GetByEmail loads a user by registered email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.rm.Users(s.db).GetByEmail(ctx, email)
}

// SendEmailCode mails a one-time code to an address the user wants to
// register. The code record is keyed by the address itself since the address
// is not yet bound to the account.
func (s *UserService) SendEmailCode(ctx context.Context, email string) error {
	code, err := s.codes.Issue(ctx, email)
	if err != nil {
		return err
	}

	msg := mail.Message{
		To:      email,
		Subject: "[Okdong] Email verification code",
		Body:    fmt.Sprintf("<p>Hello. Please enter the code below to verify this email address.</p><p><b>%s</b></p>", code),
	}
	return s.mailer.Send(ctx, msg)
}

// RegisterEmail binds email to the user once the emailed code matches.
// The email write and the code consumption commit together.
func (s *UserService) RegisterEmail(ctx context.Context, userID int64, email, code string) error {
	ok, err := s.codes.Peek(ctx, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrBadRequest
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Users(tx).SetEmail(ctx, userID, email); err != nil {
			return err
		}
		return s.codes.ConsumeTx(ctx, tx, email)
	})
}

// MaskLoginID hides the middle of a login id for public display, keeping the
// first two characters and the last one.
func MaskLoginID(loginID string) string {
	runes := []rune(loginID)
	if len(runes) <= 3 {
		return loginID
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-3) + string(runes[len(runes)-1:])
}
