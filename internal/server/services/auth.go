package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/okdong/marketplace/internal/common"
	"github.com/okdong/marketplace/internal/dbx"
	"github.com/okdong/marketplace/internal/logging"
	"github.com/okdong/marketplace/internal/server/auth"
	"github.com/okdong/marketplace/internal/server/mail"
	"github.com/okdong/marketplace/internal/server/repositories/repomanager"
)

// AuthService implements the authentication flows:
// - Login: verify credentials and mint a token pair
// - Refresh: mint a new access token from a valid refresh token
// - verification-code issue/confirm and code-based password reset
//
// Logout is not here: it is purely a client-side cookie clear with no server
// state, handled at the HTTP layer.
type AuthService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	tokens *auth.TokenManager
	codes  *CodeService
	mailer mail.Mailer
	logger logging.Logger
}

func NewAuthService(db *sql.DB, rm repomanager.RepositoryManager, tokens *auth.TokenManager, codes *CodeService, mailer mail.Mailer, logger logging.Logger) *AuthService {
	return &AuthService{db: db, rm: rm, tokens: tokens, codes: codes, mailer: mailer, logger: logger}
}

// Login verifies the login id and password and returns a fresh token pair.
// An unknown login id and a wrong password both yield ErrUnauthenticated so
// responses cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, loginID, password string) (*auth.TokenPair, error) {
	repo := s.rm.Users(s.db)
	user, err := repo.GetByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, common.ErrorInternal
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		s.logger.Error(ctx, "stored credential unusable", "userId", user.ID, "error", err)
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrUnauthenticated
	}

	return s.tokens.IssuePair(user)
}

// Refresh verifies the refresh token, re-validates that the principal still
// exists, and mints a new access token. The refresh token is not rotated.
// Every failure maps to ErrUnauthenticated so the caller clears its cookies.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", common.ErrUnauthenticated
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", common.ErrUnauthenticated
	}

	user, err := s.rm.Users(s.db).GetByID(ctx, claims.UserID)
	if err != nil {
		return "", common.ErrUnauthenticated
	}

	return s.tokens.IssueAccess(user)
}

// SendVerificationCode stores a fresh 6-digit code on the user row and mails
// it to the user's registered email address.
func (s *AuthService) SendVerificationCode(ctx context.Context, userID int64) error {
	repo := s.rm.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Email.Valid {
		return common.ErrBadRequest
	}

	code := GenerateCode()
	if err := repo.SetVerificationCode(ctx, user.ID, code); err != nil {
		return err
	}

	msg := mail.Message{
		To:      user.Email.String,
		Subject: "[Okdong] Account verification code",
		Body:    fmt.Sprintf("<p>Hello. Please enter the code below to verify your account.</p><p><b>%s</b></p><p>If this was not you, sign in and change your password.</p>", code),
	}
	return s.mailer.Send(ctx, msg)
}

// ConfirmVerificationCode checks the code stored on the user row. No stored
// code or a mismatch yields ErrBadRequest; a match marks the user verified
// and clears the code in one write.
func (s *AuthService) ConfirmVerificationCode(ctx context.Context, userID int64, code string) error {
	repo := s.rm.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.VerificationCode.Valid {
		return common.ErrBadRequest
	}
	if user.VerificationCode.String != code {
		return common.ErrBadRequest
	}

	return repo.ConfirmVerification(ctx, user.ID)
}

// SendResetPasswordEmail issues an email-keyed code and mails it. The user
// must already have the address registered; the mail is sent outside any
// transaction so no lock is held across the SMTP call.
func (s *AuthService) SendResetPasswordEmail(ctx context.Context, email string) error {
	if _, err := s.rm.Users(s.db).GetByEmail(ctx, email); err != nil {
		return err
	}

	code, err := s.codes.Issue(ctx, email)
	if err != nil {
		return err
	}

	msg := mail.Message{
		To:      email,
		Subject: "[Okdong] Password reset code",
		Body:    fmt.Sprintf("<p>Hello. Use the code below to reset your password.</p><p><b>%s</b></p><p>The code is valid for a limited time. If this was not you, sign in and change your password.</p>", code),
	}
	return s.mailer.Send(ctx, msg)
}

// ResetPassword verifies the emailed code, persists the new password hash and
// consumes the code inside one transaction, then mints a fresh token pair.
// Invalid/expired codes and unknown emails yield ErrConflict; the generic
// message prevents probing which of the two failed.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) (*auth.TokenPair, error) {
	ok, err := s.codes.Peek(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrConflict
	}

	user, err := s.rm.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrConflict
		}
		return nil, err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Users(tx).UpdatePassword(ctx, user.ID, hash); err != nil {
			return err
		}
		return s.codes.ConsumeTx(ctx, tx, email)
	}); err != nil {
		return nil, err
	}

	return s.tokens.IssuePair(user)
}
