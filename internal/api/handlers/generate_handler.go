package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postpilot/internal/service"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

type GenerateHandler struct {
	s service.GenerationService
}

func NewGenerateHandler(s service.GenerationService) *GenerateHandler {
	return &GenerateHandler{s: s}
}

// GeneratePosts runs a generation pass synchronously, scoped to the session account if any.
func (h *GenerateHandler) GeneratePosts(c *fiber.Ctx) error {
	result, err := h.s.Run(c.Context(), transfer.Trigger{AccountID: GetAccountID(c)})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Generation run failed",
			"details": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
