// Package httpapi exposes the service layer over HTTP using fiber.
// Authentication travels in HTTP-only cookies; every response body carries
// the {result, code, message, data} envelope the frontend expects.
package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/okdong/marketplace/internal/common"
)

const (
	resultSuccess = "SUCCESS"
	resultError   = "ERROR"
)

type envelope struct {
	Result  string `json:"result"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func success(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Result: resultSuccess, Data: data})
}

func successMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Result: resultSuccess, Message: message})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(envelope{Result: resultSuccess, Data: data})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(envelope{Result: resultError, Message: message})
}

// failErr maps a service error to an HTTP status and the error envelope.
// Unknown errors collapse to 500 with a generic message so internals never
// leak to the client.
func failErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrTokenInvalid),
		errors.Is(err, common.ErrTokenExpired):
		return fail(c, fiber.StatusUnauthorized, "authentication required")
	case errors.Is(err, common.ErrorNotFound):
		return fail(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, common.ErrConflict):
		return fail(c, fiber.StatusConflict, "conflict")
	case errors.Is(err, common.ErrBadRequest):
		return fail(c, fiber.StatusBadRequest, "invalid request")
	case errors.Is(err, common.ErrPasswordPolicy):
		return fail(c, fiber.StatusBadRequest, "password does not meet the policy")
	default:
		return fail(c, fiber.StatusInternalServerError, "internal error")
	}
}
