package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/okdong/marketplace/internal/common"
	"github.com/okdong/marketplace/internal/server/auth"
)

func (s *Server) authCookie(name, value string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
	}
}

// setTokenPair attaches both auth cookies to the response.
func (s *Server) setTokenPair(c *fiber.Ctx, pair *auth.TokenPair) {
	c.Cookie(s.authCookie(common.AccessTokenCookieName, pair.AccessToken, s.cfg.AccessTokenValidityDuration))
	c.Cookie(s.authCookie(common.RefreshTokenCookieName, pair.RefreshToken, s.cfg.RefreshTokenValidityDuration))
}

func (s *Server) setAccessToken(c *fiber.Ctx, token string) {
	c.Cookie(s.authCookie(common.AccessTokenCookieName, token, s.cfg.AccessTokenValidityDuration))
}

// clearTokens expires both auth cookies.
func (s *Server) clearTokens(c *fiber.Ctx) {
	for _, name := range []string{common.AccessTokenCookieName, common.RefreshTokenCookieName} {
		cookie := s.authCookie(name, "", 0)
		cookie.Expires = time.Unix(0, 0)
		cookie.MaxAge = -1
		c.Cookie(cookie)
	}
}
