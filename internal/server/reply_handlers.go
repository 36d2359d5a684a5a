package server

import (
	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReply handles POST /api/threads/:id/comments/:commentId/replies
func (s *Server) CreateReply(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	added, err := s.replyService.AddReply(c.Context(), service.AddReplyInput{
		Content:   req.Content,
		ThreadID:  c.Params("id"),
		CommentID: c.Params("commentId"),
		UserID:    currentUserID(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"addedReply": added,
	})
}

// DeleteReply handles DELETE /api/threads/:id/comments/:commentId/replies/:replyId
func (s *Server) DeleteReply(c *fiber.Ctx) error {
	err := s.replyService.DeleteReply(c.Context(),
		c.Params("id"), c.Params("commentId"), c.Params("replyId"), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Reply deleted"})
}
