package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/okdong/marketplace/internal/server/models"
	"github.com/okdong/marketplace/internal/server/services"
)

type registerRequest struct {
	LoginID     string `json:"loginId"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.LoginID == "" || req.Password == "" || req.DisplayName == "" {
		return fail(c, fiber.StatusBadRequest, "loginId, password and displayName are required")
	}

	pair, err := s.users.Register(c.Context(), req.LoginID, req.Password, req.DisplayName)
	if err != nil {
		return failErr(c, err)
	}

	s.setTokenPair(c, pair)
	return successMessage(c, "registration successful")
}

type userInfo struct {
	ID          int64  `json:"id"`
	LoginID     string `json:"loginId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	IsAdmin     bool   `json:"isAdmin"`
	IsVerified  bool   `json:"isVerified"`
}

func toUserInfo(u *models.User) userInfo {
	info := userInfo{
		ID:          u.ID,
		LoginID:     u.LoginID,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
		IsVerified:  u.IsVerified,
	}
	if u.Email.Valid {
		info.Email = u.Email.String
	}
	return info
}

func (s *Server) handleUserInfo(c *fiber.Ctx) error {
	claims := requestClaims(c)

	user, err := s.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, toUserInfo(user))
}

func (s *Server) handleSendEmailCode(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return fail(c, fiber.StatusBadRequest, "email is required")
	}

	if err := s.users.SendEmailCode(c.Context(), req.Email); err != nil {
		return failErr(c, err)
	}
	return successMessage(c, "email code sent")
}

type registerEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (s *Server) handleRegisterEmail(c *fiber.Ctx) error {
	claims := requestClaims(c)

	var req registerEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Code == "" {
		return fail(c, fiber.StatusBadRequest, "email and code are required")
	}

	if err := s.users.RegisterEmail(c.Context(), claims.UserID, req.Email, req.Code); err != nil {
		return failErr(c, err)
	}
	return successMessage(c, "email registered")
}

// handleFindLoginID returns the masked login id for the account holding the
// given email, so the full identifier is never exposed on this
// unauthenticated route.
func (s *Server) handleFindLoginID(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return fail(c, fiber.StatusBadRequest, "email is required")
	}

	user, err := s.users.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return failErr(c, err)
	}
	return success(c, fiber.Map{"loginId": services.MaskLoginID(user.LoginID)})
}
