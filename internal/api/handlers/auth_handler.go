package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/service"
	"github.com/maheshrc27/postpilot/pkg/utils"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	stateCookieName = "linkedin_oauth_state"
	sessionDuration = 30 * 24 * time.Hour
)

type AuthHandler struct {
	s   service.AuthService
	li  service.LinkedInService
	cfg config.Config
}

func NewAuthHandler(cfg config.Config, s service.AuthService, li service.LinkedInService) *AuthHandler {
	return &AuthHandler{s: s, li: li, cfg: cfg}
}

func (h *AuthHandler) LinkedInAuth(c *fiber.Ctx) error {
	state, err := gonanoid.New()
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to start authorization",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    state,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
	})

	return c.Redirect(h.li.AuthURL(state), fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) LinkedInCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		slog.Info("linkedin callback without code", "error", c.Query("error"))
		return c.Redirect(h.cfg.FrontendURL+"?error=no_code", fiber.StatusTemporaryRedirect)
	}

	state := c.Cookies(stateCookieName)
	c.ClearCookie(stateCookieName)
	if state == "" || state != c.Query("state") {
		slog.Info("linkedin callback state mismatch")
		return c.Redirect(h.cfg.FrontendURL+"?error=auth_failed", fiber.StatusTemporaryRedirect)
	}

	accountID, err := h.s.LinkedInCallback(c.Context(), code)
	if err != nil {
		slog.Error("linkedin callback failed", "error", err)
		return c.Redirect(h.cfg.FrontendURL+"?error=auth_failed", fiber.StatusTemporaryRedirect)
	}

	token, err := utils.GenerateToken(h.cfg.SecretKey, accountID, sessionDuration)
	if err != nil {
		return c.Redirect(h.cfg.FrontendURL+"?error=auth_failed", fiber.StatusTemporaryRedirect)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   false,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(sessionDuration),
	})

	return c.Redirect(h.cfg.FrontendURL+"?connected=true", fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) Status(c *fiber.Ctx) error {
	status, err := h.s.Status(c.Context(), GetAccountID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to check connection status",
		})
	}

	return c.Status(fiber.StatusOK).JSON(status)
}

// Disconnect only drops the session; the account and its LinkedIn grant remain.
func (h *AuthHandler) Disconnect(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:   h.cfg.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1, // Delete cookie
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}
