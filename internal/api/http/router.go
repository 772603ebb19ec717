package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/zendesk-dashboard/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Dashboard *handlers.DashboardHandler
	Comments  *handlers.CommentsHandler
	Webhook   *handlers.WebhookHandler
	Debug     *handlers.DebugHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", cfg.Dashboard.Index)
	app.Get("/dashboard", cfg.Dashboard.Stats)
	app.Post("/dashboard", cfg.Dashboard.Stats)

	app.Get("/api/ticket/:id/comments", cfg.Comments.TicketComments)
	app.Post("/zendesk-webhook", cfg.Webhook.HandleTicketCreated)
	app.Get("/debug-api", cfg.Debug.DebugAPI)
}
