package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/zendesk-dashboard/internal/cache"
	"github.com/spec-kit/zendesk-dashboard/internal/domain"
	"github.com/spec-kit/zendesk-dashboard/internal/observability"
	"github.com/spec-kit/zendesk-dashboard/internal/zendesk"
	"github.com/spec-kit/zendesk-dashboard/pkg/util"
)

// searchWindowDays caps how wide one search query may span; the source
// rejects larger created ranges.
const searchWindowDays = 60

const statsDateLayout = "2006-01-02"

// TicketStats aggregates ticket counts and per-status buckets for a date
// range.
type TicketStats struct {
	Start   string                                  `json:"start"`
	End     string                                  `json:"end"`
	Total   int                                     `json:"total"`
	Counts  map[domain.TicketStatus]int             `json:"counts"`
	Buckets map[domain.TicketStatus][]domain.Ticket `json:"buckets"`
}

// Percent returns the share of tickets in the given status.
func (s *TicketStats) Percent(status domain.TicketStatus) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Counts[status]) / float64(s.Total) * 100
}

// StatsService computes KPI aggregates over the source's search endpoint.
type StatsService struct {
	source   zendesk.API
	store    cache.Store
	users    *userResolver
	metrics  *observability.Metrics
	logger   *zap.Logger
	statsTTL time.Duration
}

// StatsDependencies bundles collaborators for the stats service.
type StatsDependencies struct {
	Source   zendesk.API
	Store    cache.Store
	Metrics  *observability.Metrics
	Logger   *zap.Logger
	StatsTTL time.Duration
	UserTTL  time.Duration
}

// NewStatsService constructs the service.
func NewStatsService(deps StatsDependencies) *StatsService {
	return &StatsService{
		source:   deps.Source,
		store:    deps.Store,
		users:    newUserResolver(deps.Source, deps.Store, deps.Logger, deps.UserTTL),
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		statsTTL: deps.StatsTTL,
	}
}

// TicketStats aggregates counts for tickets created in [start, end], both
// YYYY-MM-DD. The range is chunked into windows the search endpoint accepts
// and each window's pagination is followed to the end.
func (s *StatsService) TicketStats(ctx context.Context, start, end string) (*TicketStats, error) {
	if !s.source.Configured() {
		return nil, util.NewNotConfigured("zendesk credentials missing")
	}
	startDate, err := time.Parse(statsDateLayout, start)
	if err != nil {
		return nil, util.NewValidationError(fmt.Sprintf("invalid start date %q, expected YYYY-MM-DD", start))
	}
	endDate, err := time.Parse(statsDateLayout, end)
	if err != nil {
		return nil, util.NewValidationError(fmt.Sprintf("invalid end date %q, expected YYYY-MM-DD", end))
	}
	if startDate.After(endDate) {
		return nil, util.NewValidationError("start date cannot be after end date")
	}

	key := cache.StatsKey(start, end)
	if data, ok := s.store.Get(ctx, key); ok {
		var stats TicketStats
		if err := json.Unmarshal(data, &stats); err == nil {
			s.metrics.RecordCacheHit(cache.KeyPrefix(key))
			return &stats, nil
		}
	}
	s.metrics.RecordCacheMiss(cache.KeyPrefix(key))

	stats := &TicketStats{
		Start:   start,
		End:     end,
		Counts:  make(map[domain.TicketStatus]int),
		Buckets: make(map[domain.TicketStatus][]domain.Ticket),
	}

	var wireTickets []zendesk.Ticket
	for windowStart := startDate; !windowStart.After(endDate); {
		windowEnd := windowStart.AddDate(0, 0, searchWindowDays-1)
		if windowEnd.After(endDate) {
			windowEnd = endDate
		}
		query := fmt.Sprintf("type:ticket created>=%sT00:00:00Z created<=%sT23:59:59Z",
			windowStart.Format(statsDateLayout), windowEnd.Format(statsDateLayout))
		results, err := s.source.SearchTickets(ctx, query)
		if err != nil {
			return nil, err
		}
		wireTickets = append(wireTickets, results...)
		windowStart = windowEnd.AddDate(0, 0, 1)
	}

	s.accumulate(ctx, stats, wireTickets)

	if data, jsonErr := json.Marshal(stats); jsonErr == nil {
		s.store.Put(ctx, key, data, s.statsTTL)
	}
	return stats, nil
}

func (s *StatsService) accumulate(ctx context.Context, stats *TicketStats, wireTickets []zendesk.Ticket) {
	ids := make([]int64, 0, len(wireTickets)*2)
	for _, t := range wireTickets {
		ids = append(ids, t.RequesterID)
		if t.AssigneeID != nil {
			ids = append(ids, *t.AssigneeID)
		}
	}
	names := s.users.ResolveNames(ctx, ids)

	for _, t := range wireTickets {
		status := domain.NormalizeStatus(t.Status)
		stats.Total++
		stats.Counts[status]++

		ticket := domain.Ticket{
			ID:            t.ID,
			Subject:       t.Subject,
			Description:   t.Description,
			Status:        status,
			Priority:      domain.NormalizePriority(t.Priority),
			RequesterID:   t.RequesterID,
			AssigneeID:    t.AssigneeID,
			RequesterName: domain.UnknownAuthorName,
			AssigneeName:  domain.UnassignedName,
			CreatedAt:     t.CreatedAt.UTC(),
			UpdatedAt:     t.UpdatedAt.UTC(),
		}
		if name, ok := names[t.RequesterID]; ok {
			ticket.RequesterName = name
		}
		if t.AssigneeID != nil {
			if name, ok := names[*t.AssigneeID]; ok {
				ticket.AssigneeName = name
			}
		}
		stats.Buckets[status] = append(stats.Buckets[status], ticket)
	}

	for status := range stats.Buckets {
		bucket := stats.Buckets[status]
		sort.Slice(bucket, func(i, j int) bool {
			return bucket[i].CreatedAt.After(bucket[j].CreatedAt)
		})
	}
}
