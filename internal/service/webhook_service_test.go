package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/zendesk-dashboard/internal/cache"
	"github.com/spec-kit/zendesk-dashboard/internal/events"
)

func TestWebhookPublishesTicketCreated(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	store := cache.NewMemoryStore()
	svc := NewWebhookService(dispatcher, store, zap.NewNop(), false)
	svc.RegisterHandlers()

	var received []events.Event
	dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, e events.Event) error {
		received = append(received, e)
		return nil
	})

	err := svc.IngestTicketCreated(context.Background(), 12345, "Test", "new")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, int64(12345), received[0].TicketID)
	assert.NotEmpty(t, received[0].ID)
}

func TestWebhookInvalidationPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled by default", func(t *testing.T) {
		store := cache.NewMemoryStore()
		store.Put(ctx, cache.RecentTicketsKey, []byte("[]"), time.Hour)
		svc := NewWebhookService(events.NewInMemoryDispatcher(), store, zap.NewNop(), false)
		svc.RegisterHandlers()

		require.NoError(t, svc.IngestTicketCreated(ctx, 1, "", ""))
		_, ok := store.Get(ctx, cache.RecentTicketsKey)
		assert.True(t, ok, "cache entry survives receipt when invalidation is off")
	})

	t.Run("enabled", func(t *testing.T) {
		store := cache.NewMemoryStore()
		store.Put(ctx, cache.RecentTicketsKey, []byte("[]"), time.Hour)
		svc := NewWebhookService(events.NewInMemoryDispatcher(), store, zap.NewNop(), true)
		svc.RegisterHandlers()

		require.NoError(t, svc.IngestTicketCreated(ctx, 1, "", ""))
		_, ok := store.Get(ctx, cache.RecentTicketsKey)
		assert.False(t, ok, "receipt drops the recent ticket list")
	})
}
