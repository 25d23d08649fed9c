package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postpilot/internal/service"
)

const sampleOccasion = "New Year's Day"

// TestHandler serves diagnostics for the two external providers.
type TestHandler struct {
	cs   service.ContentService
	auth service.AuthService
}

func NewTestHandler(cs service.ContentService, auth service.AuthService) *TestHandler {
	return &TestHandler{cs: cs, auth: auth}
}

func (h *TestHandler) Gemini(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"occasion":     sampleOccasion,
		"caption":      h.cs.GenerateCaption(c.Context(), sampleOccasion),
		"image_prompt": h.cs.GenerateImagePrompt(c.Context(), sampleOccasion),
	})
}

func (h *TestHandler) LinkedIn(c *fiber.Ctx) error {
	profile, err := h.auth.LiveProfile(c.Context(), GetAccountID(c))
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"success": false,
			"error":   service.PublishErrorMessage(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"profile": profile,
	})
}
