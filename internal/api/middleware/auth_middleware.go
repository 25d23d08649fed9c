package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/pkg/utils"
)

// AccountIDKey is the fiber locals key holding the session account id (int64).
const AccountIDKey = "account_id"

type AuthMiddleware struct {
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// RequireSession rejects requests without a valid session cookie.
func (m *AuthMiddleware) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		accountID, err := utils.AccountIDFromToken(m.cfg.SecretKey, tokenString)
		if err != nil {
			m.clearCookie(c)
			slog.Info("session validation failed", "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		c.Locals(AccountIDKey, accountID)
		return c.Next()
	}
}

// OptionalSession sets the account id when a valid session is present and never rejects.
func (m *AuthMiddleware) OptionalSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)
		if tokenString == "" {
			return c.Next()
		}

		accountID, err := utils.AccountIDFromToken(m.cfg.SecretKey, tokenString)
		if err != nil {
			m.clearCookie(c)
			return c.Next()
		}

		c.Locals(AccountIDKey, accountID)
		return c.Next()
	}
}

func (m *AuthMiddleware) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:   m.cfg.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1, // Delete cookie
	})
}
