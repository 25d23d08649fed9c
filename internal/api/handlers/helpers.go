package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postpilot/internal/api/middleware"
	"github.com/maheshrc27/postpilot/internal/service"
)

// GetAccountID returns the session account id, or 0 when the request has no session.
func GetAccountID(c *fiber.Ctx) int64 {
	accountID, _ := c.Locals(middleware.AccountIDKey).(int64)
	return accountID
}

// statusFor maps service sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrNotConnected):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrEmptyCaption):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
