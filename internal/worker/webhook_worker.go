package worker

import (
	"github.com/spec-kit/zendesk-dashboard/internal/service"
)

// StartWebhookWorker registers webhook event handlers.
func StartWebhookWorker(webhookService *service.WebhookService) {
	if webhookService == nil {
		return
	}
	webhookService.RegisterHandlers()
}
