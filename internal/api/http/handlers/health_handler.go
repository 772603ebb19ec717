package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/zendesk-dashboard/internal/cache"
	"github.com/spec-kit/zendesk-dashboard/internal/config"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	store       cache.Store
	zendesk     config.ZendeskConfig
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, store cache.Store, zendeskCfg config.ZendeskConfig) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, store: store, zendesk: zendeskCfg}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if h.zendesk.Configured() {
		depStatus["zendesk_config"] = "ok"
	} else {
		depStatus["zendesk_config"] = "missing credentials"
		ready = false
	}

	if err := h.store.Ping(ctx); err != nil {
		depStatus["cache"] = err.Error()
		ready = false
	} else {
		depStatus["cache"] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error":        "one or more dependencies unavailable",
		"dependencies": depStatus,
	})
}
