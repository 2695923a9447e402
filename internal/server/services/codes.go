// Package services contains server-side business logic: authentication,
// registration, verification codes, and transactional post writes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/okdong/marketplace/internal/common"
	"github.com/okdong/marketplace/internal/dbx"
	"github.com/okdong/marketplace/internal/server/repositories/repomanager"
)

// CodeService issues and checks one-time 6-digit codes keyed by email.
// Codes are low-value short-lived secrets; math/rand is sufficient here.
type CodeService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	validity time.Duration
}

func NewCodeService(db *sql.DB, rm repomanager.RepositoryManager, validity time.Duration) *CodeService {
	return &CodeService{db: db, rm: rm, validity: validity}
}

// GenerateCode returns a uniformly distributed 6-digit numeric code.
func GenerateCode() string {
	return fmt.Sprintf("%06d", rand.IntN(1000000))
}

// Issue stores a fresh code for email, overwriting any previous one, and
// returns the code so the caller can mail it.
func (s *CodeService) Issue(ctx context.Context, email string) (string, error) {
	code := GenerateCode()
	repo := s.rm.EmailCodes(s.db)
	if err := repo.Upsert(ctx, email, code, s.validity); err != nil {
		return "", err
	}
	return code, nil
}

// Check reports whether code matches the live record for email. A match
// consumes the record (it is deleted before returning true); a mismatch
// against a live record leaves it intact so the user may retry until expiry.
// An expired or missing record is simply absent: (false, nil).
func (s *CodeService) Check(ctx context.Context, email, code string) (bool, error) {
	ok, err := s.Peek(ctx, email, code)
	if err != nil || !ok {
		return false, err
	}
	if err := s.rm.EmailCodes(s.db).Delete(ctx, email); err != nil {
		return false, err
	}
	return true, nil
}

// Peek is Check without consumption: it validates the code but leaves the
// record in place for a later transactional delete via ConsumeTx.
func (s *CodeService) Peek(ctx context.Context, email, code string) (bool, error) {
	record, err := s.rm.EmailCodes(s.db).Find(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.Code == code, nil
}

// ConsumeTx deletes the code record for email under the given transaction
// handle, so consumption commits or rolls back with the caller's writes.
func (s *CodeService) ConsumeTx(ctx context.Context, tx dbx.DBTX, email string) error {
	return s.rm.EmailCodes(tx).Delete(ctx, email)
}
