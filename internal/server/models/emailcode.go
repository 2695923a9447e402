package models

import "time"

// EmailCode is a one-time verification code keyed by email address.
// At most one live code exists per email; issuing a new one overwrites it.
type EmailCode struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}
