// Package common contains shared constants and sentinel errors used across
// marketplace components.
package common

// AccessTokenCookieName and RefreshTokenCookieName are the HTTP cookie names
// that carry the signed tokens between browser and server.
const (
	AccessTokenCookieName  = "access_token"
	RefreshTokenCookieName = "refresh_token"
)
