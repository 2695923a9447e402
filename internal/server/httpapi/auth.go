package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/okdong/marketplace/internal/common"
)

type loginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.LoginID == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "loginId and password are required")
	}

	pair, err := s.auth.Login(c.Context(), req.LoginID, req.Password)
	if err != nil {
		return failErr(c, err)
	}

	s.setTokenPair(c, pair)
	return successMessage(c, "login successful")
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	s.clearTokens(c)
	return successMessage(c, "logged out")
}

func (s *Server) handleRefresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(common.RefreshTokenCookieName)

	access, err := s.auth.Refresh(c.Context(), refreshToken)
	if err != nil {
		// the refresh token is useless now; make the client drop it
		s.clearTokens(c)
		return failErr(c, err)
	}

	s.setAccessToken(c, access)
	return success(c, fiber.Map{"access_token": access})
}

func (s *Server) handleSendVerificationCode(c *fiber.Ctx) error {
	claims := requestClaims(c)

	if err := s.auth.SendVerificationCode(c.Context(), claims.UserID); err != nil {
		return failErr(c, err)
	}
	return successMessage(c, "verification code sent")
}

type confirmCodeRequest struct {
	VerificationCode string `json:"verificationCode"`
}

func (s *Server) handleConfirmVerificationCode(c *fiber.Ctx) error {
	claims := requestClaims(c)

	var req confirmCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.VerificationCode == "" {
		return fail(c, fiber.StatusBadRequest, "verificationCode is required")
	}

	if err := s.auth.ConfirmVerificationCode(c.Context(), claims.UserID, req.VerificationCode); err != nil {
		return failErr(c, err)
	}
	return successMessage(c, "verification complete")
}

type emailRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleSendResetPasswordEmail(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return fail(c, fiber.StatusBadRequest, "email is required")
	}

	if err := s.auth.SendResetPasswordEmail(c.Context(), req.Email); err != nil {
		return failErr(c, err)
	}
	return successMessage(c, "reset code sent")
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

func (s *Server) handleResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Code == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "email, code and password are required")
	}

	pair, err := s.auth.ResetPassword(c.Context(), req.Email, req.Code, req.Password)
	if err != nil {
		return failErr(c, err)
	}

	s.setTokenPair(c, pair)
	return successMessage(c, "password reset")
}
