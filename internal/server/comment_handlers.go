package server

import (
	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/threads/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	added, err := s.commentService.AddComment(c.Context(), service.AddCommentInput{
		Content:  req.Content,
		ThreadID: c.Params("id"),
		UserID:   currentUserID(c),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"addedComment": added,
	})
}

// DeleteComment handles DELETE /api/threads/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	err := s.commentService.DeleteComment(c.Context(),
		c.Params("id"), c.Params("commentId"), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// ToggleCommentLike handles PUT /api/threads/:id/comments/:commentId/likes
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	liked, err := s.commentService.ToggleCommentLike(c.Context(),
		c.Params("id"), c.Params("commentId"), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"liked": liked})
}
