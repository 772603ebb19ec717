package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/zendesk-dashboard/internal/api/http"
	"github.com/spec-kit/zendesk-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/zendesk-dashboard/internal/cache"
	"github.com/spec-kit/zendesk-dashboard/internal/events"
	"github.com/spec-kit/zendesk-dashboard/internal/observability"
	"github.com/spec-kit/zendesk-dashboard/internal/service"
)

func newWebhookApp(store cache.Store, invalidate bool) *fiber.App {
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	svc := service.NewWebhookService(events.NewInMemoryDispatcher(), store, zap.NewNop(), invalidate)
	svc.RegisterHandlers()
	handler := handlers.NewWebhookHandler(svc)
	app.Post("/zendesk-webhook", handler.HandleTicketCreated)
	return app
}

func postWebhook(t *testing.T, app *fiber.App, payload string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/zendesk-webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestWebhookAcceptsValidPayload(t *testing.T) {
	app := newWebhookApp(cache.NewMemoryStore(), false)

	resp := postWebhook(t, app, `{"ticket": {"id": 12345, "subject": "Test", "status": "new"}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Webhook received successfully", body["message"])
	assert.Equal(t, float64(12345), body["ticket_id"])
}

func TestWebhookRejectsEmptyObject(t *testing.T) {
	app := newWebhookApp(cache.NewMemoryStore(), false)

	resp := postWebhook(t, app, `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["error"])
	assert.NotContains(t, body, "message")
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	app := newWebhookApp(cache.NewMemoryStore(), false)

	for _, payload := range []string{`not json`, `{"ticket": {}}`, `{"ticket": {"id": 0}}`} {
		resp := postWebhook(t, app, payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "payload %q", payload)
	}
}
