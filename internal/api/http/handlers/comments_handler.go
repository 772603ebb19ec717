package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/zendesk-dashboard/internal/api/dto"
	"github.com/spec-kit/zendesk-dashboard/internal/config"
	"github.com/spec-kit/zendesk-dashboard/internal/service"
	"github.com/spec-kit/zendesk-dashboard/pkg/util"
)

// CommentsHandler serves the per-ticket comments API.
type CommentsHandler struct {
	comments *service.CommentService
	present  presenter
}

// NewCommentsHandler constructs the handler.
func NewCommentsHandler(comments *service.CommentService, displayCfg config.DisplayConfig) *CommentsHandler {
	return &CommentsHandler{comments: comments, present: newPresenter(displayCfg)}
}

// TicketComments GET /api/ticket/:id/comments.
func (h *CommentsHandler) TicketComments(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return util.NewValidationError("ticket id must be a positive integer")
	}

	result, err := h.comments.TicketComments(c.UserContext(), int64(id))
	if err != nil {
		return err
	}

	responses := make([]dto.CommentResponse, 0, len(result.Comments))
	for _, comment := range result.Comments {
		responses = append(responses, h.present.commentResponse(comment))
	}
	return c.JSON(dto.CommentsEnvelope{
		Comments:    responses,
		Count:       len(responses),
		CacheStatus: string(result.CacheStatus),
	})
}
