package server

import (
	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateThread handles POST /api/threads
func (s *Server) CreateThread(c *fiber.Ctx) error {
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	added, err := s.threadService.CreateThread(c.Context(), service.CreateThreadInput{
		Title:   req.Title,
		Body:    req.Body,
		OwnerID: currentUserID(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"addedThread": added,
	})
}

// GetThreadDetail handles GET /api/threads/:id
func (s *Server) GetThreadDetail(c *fiber.Ctx) error {
	threadID := c.Params("id")
	if threadID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid thread ID"))
	}

	detail, err := s.threadService.GetThreadDetail(c.Context(), threadID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"thread": detail,
	})
}
