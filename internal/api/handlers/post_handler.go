package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postpilot/internal/service"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

type PostHandler struct {
	s service.PostService
}

func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{s: s}
}

func (h *PostHandler) TodayPosts(c *fiber.Ctx) error {
	posts, err := h.s.TodayPosts(c.Context(), GetAccountID(c), time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list today's posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts": posts,
	})
}

func (h *PostHandler) Publish(c *fiber.Ctx) error {
	var req transfer.ManualPost
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	postID, err := h.s.ManualPublish(c.Context(), GetAccountID(c), &req)
	if err != nil {
		status := statusFor(err)
		if status == fiber.StatusInternalServerError || errors.Is(err, service.ErrNotConnected) {
			return c.Status(status).JSON(fiber.Map{
				"error":   "Failed to post to LinkedIn",
				"details": service.PublishErrorMessage(err),
			})
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"post_id": postID,
	})
}
