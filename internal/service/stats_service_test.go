package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/zendesk-dashboard/internal/cache"
	"github.com/spec-kit/zendesk-dashboard/internal/domain"
	"github.com/spec-kit/zendesk-dashboard/internal/observability"
	"github.com/spec-kit/zendesk-dashboard/internal/zendesk"
	"github.com/spec-kit/zendesk-dashboard/pkg/util"
)

func newStatsService(source *fakeSource, store cache.Store) *StatsService {
	return NewStatsService(StatsDependencies{
		Source:   source,
		Store:    store,
		Metrics:  observability.NewMetrics(),
		Logger:   zap.NewNop(),
		StatsTTL: 10 * time.Minute,
		UserTTL:  24 * time.Hour,
	})
}

func TestTicketStatsAggregation(t *testing.T) {
	source := &fakeSource{
		searchResults: []zendesk.Ticket{
			wireTicket(1, "open", ""),
			wireTicket(2, "open", ""),
			wireTicket(3, "solved", ""),
			wireTicket(4, "on-hold", ""),
		},
		users: map[int64]string{100: "Alice", 200: "Bob"},
	}
	svc := newStatsService(source, cache.NewMemoryStore())

	stats, err := svc.TicketStats(context.Background(), "2026-08-01", "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Counts[domain.TicketStatusOpen])
	assert.Equal(t, 1, stats.Counts[domain.TicketStatusSolved])
	assert.Equal(t, 1, stats.Counts[domain.TicketStatusHold])
	assert.InDelta(t, 50.0, stats.Percent(domain.TicketStatusOpen), 0.01)
	assert.Len(t, stats.Buckets[domain.TicketStatusOpen], 2)
}

func TestTicketStatsCached(t *testing.T) {
	source := &fakeSource{
		searchResults: []zendesk.Ticket{wireTicket(1, "open", "")},
		users:         map[int64]string{100: "Alice"},
	}
	svc := newStatsService(source, cache.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.TicketStats(ctx, "2026-08-01", "2026-08-29")
	require.NoError(t, err)
	firstCalls := source.searchCalls

	_, err = svc.TicketStats(ctx, "2026-08-01", "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, firstCalls, source.searchCalls, "second call within TTL is served from cache")
}

func TestTicketStatsChunksWideRanges(t *testing.T) {
	source := &fakeSource{users: map[int64]string{}}
	svc := newStatsService(source, cache.NewMemoryStore())

	// 180 days spans three 60-day search windows.
	_, err := svc.TicketStats(context.Background(), "2026-01-01", "2026-06-29")
	require.NoError(t, err)
	assert.Equal(t, 3, source.searchCalls)
}

func TestTicketStatsValidation(t *testing.T) {
	svc := newStatsService(&fakeSource{}, cache.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.TicketStats(ctx, "08/01/2026", "2026-08-29")
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))

	_, err = svc.TicketStats(ctx, "2026-08-29", "2026-08-01")
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))
}

func TestTicketStatsSourceFailure(t *testing.T) {
	source := &fakeSource{searchErr: util.NewSourceUnavailable(nil)}
	svc := newStatsService(source, cache.NewMemoryStore())

	_, err := svc.TicketStats(context.Background(), "2026-08-01", "2026-08-29")
	assert.True(t, util.IsCode(err, "SOURCE_UNAVAILABLE"))
}
