package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBaseDomain(t *testing.T) {
	assert.Equal(t, "example.zendesk.com", normalizeBaseDomain("example.zendesk.com"))
	assert.Equal(t, "example.zendesk.com", normalizeBaseDomain("https://example.zendesk.com"))
	assert.Equal(t, "example.zendesk.com", normalizeBaseDomain("http://example.zendesk.com/"))
	assert.Equal(t, "example.zendesk.com", normalizeBaseDomain("  example.zendesk.com "))
	assert.Equal(t, "", normalizeBaseDomain(""))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TicketTTL)
	assert.Equal(t, 30*time.Minute, cfg.Cache.CommentTTL)
	assert.Equal(t, 10, cfg.Zendesk.RecentCount)
	assert.Equal(t, 10*time.Second, cfg.Zendesk.Timeout())
	assert.False(t, cfg.Webhook.InvalidateTickets)
	assert.Equal(t, -4, cfg.Display.TZOffsetHours)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SUBDOMAIN", "https://example.zendesk.com")
	t.Setenv("ZENDESK_USER", "agent@example.com")
	t.Setenv("ZENDESK_API_KEY", "secret")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("WEBHOOK_INVALIDATE_TICKETS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "example.zendesk.com", cfg.Zendesk.BaseDomain)
	assert.True(t, cfg.Zendesk.Configured())
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.True(t, cfg.Webhook.InvalidateTickets)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := Load()
	assert.Error(t, err)
}

func TestZendeskConfigured(t *testing.T) {
	cfg := ZendeskConfig{BaseDomain: "example.zendesk.com", User: "u", APIKey: "k"}
	assert.True(t, cfg.Configured())

	assert.False(t, ZendeskConfig{User: "u", APIKey: "k"}.Configured())
	assert.False(t, ZendeskConfig{BaseDomain: "d", APIKey: "k"}.Configured())
	assert.False(t, ZendeskConfig{BaseDomain: "d", User: "u"}.Configured())
}
