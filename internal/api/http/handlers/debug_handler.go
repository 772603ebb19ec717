package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/zendesk-dashboard/internal/cache"
	"github.com/spec-kit/zendesk-dashboard/internal/config"
	"github.com/spec-kit/zendesk-dashboard/internal/observability"
	"github.com/spec-kit/zendesk-dashboard/internal/zendesk"
)

// DebugHandler reports configuration presence, a live source probe and
// cache statistics.
type DebugHandler struct {
	source  zendesk.API
	store   cache.Store
	metrics *observability.Metrics
	zendesk config.ZendeskConfig
}

// NewDebugHandler constructs the handler.
func NewDebugHandler(source zendesk.API, store cache.Store, metrics *observability.Metrics, zendeskCfg config.ZendeskConfig) *DebugHandler {
	return &DebugHandler{source: source, store: store, metrics: metrics, zendesk: zendeskCfg}
}

// DebugAPI GET /debug-api.
func (h *DebugHandler) DebugAPI(c *fiber.Ctx) error {
	stats := h.store.Stats()
	info := fiber.Map{
		"zendesk_url":        h.zendesk.BaseDomain,
		"zendesk_user":       h.zendesk.User,
		"api_key_configured": h.zendesk.APIKey != "",
		"api_key_length":     len(h.zendesk.APIKey),
		"cache": fiber.Map{
			"entries":          stats.Entries,
			"hits":             stats.Hits,
			"misses":           stats.Misses,
			"hit_rate":         stats.HitRate(),
			"service_hit_rate": h.metrics.CacheHitRate(),
		},
	}

	if !h.zendesk.Configured() {
		info["error"] = "Missing configuration"
		return c.JSON(info)
	}

	probe, err := h.source.Probe(c.UserContext())
	if err != nil {
		info["api_test_error"] = err.Error()
	} else {
		info["api_test_status"] = probe.StatusCode
		info["api_test_response"] = probe.Body
	}
	return c.JSON(info)
}
