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

func int64Ptr(v int64) *int64 { return &v }

func wireTicket(id int64, status, priority string) zendesk.Ticket {
	return zendesk.Ticket{
		ID:          id,
		Subject:     "Printer on fire",
		Description: "It is very much on fire.",
		Status:      status,
		Priority:    priority,
		RequesterID: 100,
		AssigneeID:  int64Ptr(200),
		CreatedAt:   time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 8, 21, 9, 30, 0, 0, time.UTC),
	}
}

func newTicketService(source *fakeSource, store cache.Store) *TicketService {
	return NewTicketService(TicketDependencies{
		Source:      source,
		Store:       store,
		Metrics:     observability.NewMetrics(),
		Logger:      zap.NewNop(),
		RecentCount: 10,
		TicketTTL:   5 * time.Minute,
		UserTTL:     24 * time.Hour,
	})
}

func TestRecentTicketsMissThenHit(t *testing.T) {
	source := &fakeSource{
		tickets: []zendesk.Ticket{wireTicket(1, "open", "high")},
		users:   map[int64]string{100: "Alice", 200: "Bob"},
	}
	svc := newTicketService(source, cache.NewMemoryStore())
	ctx := context.Background()

	tickets, status, err := svc.RecentTickets(ctx)
	require.NoError(t, err)
	assert.Equal(t, CacheStatusMiss, status)
	require.Len(t, tickets, 1)
	assert.Equal(t, domain.TicketStatusOpen, tickets[0].Status)
	assert.Equal(t, domain.TicketPriorityHigh, tickets[0].Priority)
	assert.Equal(t, "Alice", tickets[0].RequesterName)
	assert.Equal(t, "Bob", tickets[0].AssigneeName)

	tickets, status, err = svc.RecentTickets(ctx)
	require.NoError(t, err)
	assert.Equal(t, CacheStatusHit, status)
	require.Len(t, tickets, 1)
	assert.Equal(t, 1, source.recentCalls, "cache hit must not contact the source")
}

func TestRecentTicketsShortListIsNotAnError(t *testing.T) {
	source := &fakeSource{
		tickets: []zendesk.Ticket{
			wireTicket(1, "new", ""),
			wireTicket(2, "open", "low"),
			wireTicket(3, "pending", "urgent"),
		},
		users: map[int64]string{100: "Alice"},
	}
	svc := newTicketService(source, cache.NewMemoryStore())

	tickets, _, err := svc.RecentTickets(context.Background())
	require.NoError(t, err)
	assert.Len(t, tickets, 3, "3 of 10 requested tickets is a valid result")
}

func TestRecentTicketsNormalizationDefaults(t *testing.T) {
	source := &fakeSource{
		tickets: []zendesk.Ticket{wireTicket(1, "mystery", "critical")},
	}
	svc := newTicketService(source, cache.NewMemoryStore())

	tickets, _, err := svc.RecentTickets(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, domain.TicketStatusNew, tickets[0].Status)
	assert.Equal(t, domain.TicketPriorityNormal, tickets[0].Priority)
	// No user data resolvable: fall back to placeholders.
	assert.Equal(t, domain.UnknownAuthorName, tickets[0].RequesterName)
	assert.Equal(t, domain.UnassignedName, tickets[0].AssigneeName)
}

func TestRecentTicketsSourceFailureWithoutCache(t *testing.T) {
	source := &fakeSource{ticketsErr: util.NewSourceUnavailable(nil)}
	svc := newTicketService(source, cache.NewMemoryStore())

	_, _, err := svc.RecentTickets(context.Background())
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "SOURCE_UNAVAILABLE"))
}

func TestRecentTicketsServesStaleOnSourceFailure(t *testing.T) {
	clock := time.Unix(1700000000, 0)
	now := clock
	store := cache.NewMemoryStore(cache.WithClock(func() time.Time { return now }))

	source := &fakeSource{
		tickets: []zendesk.Ticket{wireTicket(1, "open", "")},
		users:   map[int64]string{100: "Alice"},
	}
	svc := newTicketService(source, store)
	ctx := context.Background()

	_, status, err := svc.RecentTickets(ctx)
	require.NoError(t, err)
	require.Equal(t, CacheStatusMiss, status)

	// Entry expires, then the source goes down.
	now = clock.Add(time.Hour)
	source.ticketsErr = util.NewSourceUnavailable(nil)

	tickets, status, err := svc.RecentTickets(ctx)
	require.NoError(t, err)
	assert.Equal(t, CacheStatusStale, status)
	assert.Len(t, tickets, 1)
}

func TestRecentTicketsNotConfigured(t *testing.T) {
	source := &fakeSource{unconfigured: true}
	svc := newTicketService(source, cache.NewMemoryStore())

	_, _, err := svc.RecentTickets(context.Background())
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "NOT_CONFIGURED"))
	assert.Zero(t, source.recentCalls)
}

func TestRecentTicketsBatchesUserLookup(t *testing.T) {
	source := &fakeSource{
		tickets: []zendesk.Ticket{
			wireTicket(1, "open", ""),
			wireTicket(2, "open", ""),
		},
		users: map[int64]string{100: "Alice", 200: "Bob"},
	}
	svc := newTicketService(source, cache.NewMemoryStore())

	_, _, err := svc.RecentTickets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, source.showManyCalls, "duplicate ids collapse into one batch call")
	assert.Zero(t, source.showUserCalls)
}
