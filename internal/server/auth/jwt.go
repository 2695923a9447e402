// Package auth implements credential primitives for the marketplace server:
// HMAC-signed access/refresh tokens and bcrypt password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/okdong/marketplace/internal/common"
	"github.com/okdong/marketplace/internal/server/models"
)

// Claims is the identity claim set carried by both access and refresh
// tokens: the external login id, the internal numeric id, and the admin flag.
type Claims struct {
	jwt.RegisteredClaims
	LoginID string `json:"loginId"`
	UserID  int64  `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenManager signs and verifies tokens. Access and refresh tokens use
// distinct secrets and lifetimes, both injected at construction so tests can
// supply deterministic values.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (m *TokenManager) sign(c Claims, secret []byte, validity time.Duration) (string, error) {
	now := time.Now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(secret)
}

func claimsFor(user *models.User) Claims {
	return Claims{LoginID: user.LoginID, UserID: user.ID, IsAdmin: user.IsAdmin}
}

// IssueAccess mints a short-lived access token for the user.
func (m *TokenManager) IssueAccess(user *models.User) (string, error) {
	return m.sign(claimsFor(user), m.accessSecret, m.accessTTL)
}

// IssueRefresh mints a long-lived refresh token for the user.
func (m *TokenManager) IssueRefresh(user *models.User) (string, error) {
	return m.sign(claimsFor(user), m.refreshSecret, m.refreshTTL)
}

// IssuePair mints an access/refresh token pair for the user.
func (m *TokenManager) IssuePair(user *models.User) (*TokenPair, error) {
	access, err := m.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	refresh, err := m.IssueRefresh(user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}

	return claims, nil
}

// VerifyAccess validates an access token and returns its claims.
// Expired tokens yield common.ErrTokenExpired, anything else malformed
// yields common.ErrTokenInvalid.
func (m *TokenManager) VerifyAccess(tokenString string) (*Claims, error) {
	return verify(tokenString, m.accessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (m *TokenManager) VerifyRefresh(tokenString string) (*Claims, error) {
	return verify(tokenString, m.refreshSecret)
}

// RefreshAccess verifies the refresh token and mints a new access token
// reusing the verified claims. The refresh token itself is not rotated.
func (m *TokenManager) RefreshAccess(refreshToken string) (string, error) {
	claims, err := m.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	return m.sign(Claims{LoginID: claims.LoginID, UserID: claims.UserID, IsAdmin: claims.IsAdmin}, m.accessSecret, m.accessTTL)
}
