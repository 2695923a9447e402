// Package users declares the repository contract for persisted principals.
package users

import (
	"context"

	"github.com/okdong/marketplace/internal/server/models"
)

// Repository defines persistence operations for user records. Implementations
// are bound to a dbx.DBTX, so the same type serves both standalone calls and
// calls joined to an enclosing transaction.
type Repository interface {
	// Create inserts a new user and returns it with the assigned id.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByLoginID looks a user up by the external login id.
	// Returns common.ErrorNotFound when absent.
	GetByLoginID(ctx context.Context, loginID string) (*models.User, error)

	// GetByID looks a user up by the internal numeric id.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByEmail looks a user up by registered email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// ExistsDisplayName reports whether any user already holds displayName.
	ExistsDisplayName(ctx context.Context, displayName string) (bool, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// SetVerificationCode stores a pending verification code on the user row,
	// overwriting any previous one.
	SetVerificationCode(ctx context.Context, id int64, code string) error

	// ConfirmVerification marks the user verified and clears the pending code.
	ConfirmVerification(ctx context.Context, id int64) error

	// SetEmail registers a verified email address on the user row.
	SetEmail(ctx context.Context, id int64, email string) error
}
