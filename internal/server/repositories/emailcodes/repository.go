// Package emailcodes declares the repository contract for one-time
// verification codes keyed by email address.
package emailcodes

import (
	"context"
	"time"

	"github.com/okdong/marketplace/internal/server/models"
)

// Repository stores at most one live code per email. Expired rows are
// treated as absent by Find; Upsert replaces any previous code.
type Repository interface {
	// Upsert stores code for email with an expiry of now+validity, replacing
	// any existing row for that email.
	Upsert(ctx context.Context, email, code string, validity time.Duration) error

	// Find returns the live (non-expired) code record for email.
	// Expired or missing records yield common.ErrorNotFound.
	Find(ctx context.Context, email string) (*models.EmailCode, error)

	// Delete removes the code record for email. Deleting a non-existent
	// record is not an error.
	Delete(ctx context.Context, email string) error
}
