// Package models contains the persistence-level structures shared by
// repositories and services.
package models

import "database/sql"

// User is a registered principal.
//
// LoginID is the external, immutable login identifier; ID is the internal
// numeric key. Email stays NULL until the email-registration flow completes.
// VerificationCode is present only while a verification flow is in flight.
type User struct {
	ID               int64
	LoginID          string
	PasswordHash     string
	DisplayName      string
	IsAdmin          bool
	Email            sql.NullString
	VerificationCode sql.NullString
	IsVerified       bool
}
