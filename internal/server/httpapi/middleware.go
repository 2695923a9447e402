package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/okdong/marketplace/internal/common"
	"github.com/okdong/marketplace/internal/server/auth"
)

// claimsKey is the fiber locals key the guard stores verified claims under.
const claimsKey = "authClaims"

// Guard authenticates the request from the access-token cookie. The token is
// always fully verified (signature and expiry) before any claim is read;
// a missing or bad token short-circuits with 401. Verified claims are stored
// in locals for the handler.
func Guard(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(common.AccessTokenCookieName)
		if token == "" {
			return fail(c, fiber.StatusUnauthorized, "access token required")
		}

		claims, err := tokens.VerifyAccess(token)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "invalid access token")
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// AdminGuard allows only verified principals whose token carries the admin
// claim. It must run after Guard.
func AdminGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := requestClaims(c)
		if claims == nil || !claims.IsAdmin {
			return fail(c, fiber.StatusForbidden, "admin privileges required")
		}
		return c.Next()
	}
}

// requestClaims returns the claims stored by Guard, or nil on an
// unauthenticated route.
func requestClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsKey).(*auth.Claims)
	return claims
}
