package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/zendesk-dashboard/internal/api/dto"
	"github.com/spec-kit/zendesk-dashboard/internal/service"
	"github.com/spec-kit/zendesk-dashboard/pkg/util"
)

// WebhookHandler accepts inbound ticket notifications.
type WebhookHandler struct {
	webhooks *service.WebhookService
}

// NewWebhookHandler constructs the handler.
func NewWebhookHandler(webhooks *service.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

// HandleTicketCreated POST /zendesk-webhook. The body must contain a ticket
// object with an id; anything else is a malformed payload.
func (h *WebhookHandler) HandleTicketCreated(c *fiber.Ctx) error {
	var payload dto.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return util.NewMalformedPayload("invalid JSON body")
	}
	if payload.Ticket == nil || payload.Ticket.ID <= 0 {
		return util.NewMalformedPayload("payload must contain a ticket with an id")
	}

	if err := h.webhooks.IngestTicketCreated(c.UserContext(), payload.Ticket.ID, payload.Ticket.Subject, payload.Ticket.Status); err != nil {
		return util.NewInternalError(err)
	}
	return c.JSON(dto.WebhookAck{
		Message:  "Webhook received successfully",
		TicketID: payload.Ticket.ID,
	})
}
