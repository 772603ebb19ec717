package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/zendesk-dashboard/internal/cache"
	"github.com/spec-kit/zendesk-dashboard/internal/domain"
	"github.com/spec-kit/zendesk-dashboard/internal/observability"
	"github.com/spec-kit/zendesk-dashboard/internal/zendesk"
	"github.com/spec-kit/zendesk-dashboard/pkg/util"
)

// CacheStatus reports how a result was served.
type CacheStatus string

const (
	CacheStatusHit   CacheStatus = "hit"
	CacheStatusMiss  CacheStatus = "miss"
	CacheStatusStale CacheStatus = "stale"
)

// TicketService fetches and caches the recent ticket list.
type TicketService struct {
	source      zendesk.API
	store       cache.Store
	users       *userResolver
	metrics     *observability.Metrics
	logger      *zap.Logger
	recentCount int
	ticketTTL   time.Duration
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Source      zendesk.API
	Store       cache.Store
	Metrics     *observability.Metrics
	Logger      *zap.Logger
	RecentCount int
	TicketTTL   time.Duration
	UserTTL     time.Duration
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		source:      deps.Source,
		store:       deps.Store,
		users:       newUserResolver(deps.Source, deps.Store, deps.Logger, deps.UserTTL),
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		recentCount: deps.RecentCount,
		ticketTTL:   deps.TicketTTL,
	}
}

// RecentTickets returns the most recent tickets, preferring the cache. On a
// source failure a stale cached list is served when one exists; otherwise the
// typed error propagates so the caller can render an explicit error state
// instead of a silent empty list.
func (s *TicketService) RecentTickets(ctx context.Context) ([]domain.Ticket, CacheStatus, error) {
	if !s.source.Configured() {
		return nil, "", util.NewNotConfigured("zendesk credentials missing")
	}

	if data, ok := s.store.Get(ctx, cache.RecentTicketsKey); ok {
		var tickets []domain.Ticket
		if err := json.Unmarshal(data, &tickets); err == nil {
			s.metrics.RecordCacheHit(cache.KeyPrefix(cache.RecentTicketsKey))
			return tickets, CacheStatusHit, nil
		}
	}
	s.metrics.RecordCacheMiss(cache.KeyPrefix(cache.RecentTicketsKey))

	wireTickets, err := s.source.RecentTickets(ctx, s.recentCount)
	if err != nil {
		if data, ok := s.store.GetStale(ctx, cache.RecentTicketsKey); ok {
			var tickets []domain.Ticket
			if jsonErr := json.Unmarshal(data, &tickets); jsonErr == nil {
				s.logger.Warn("serving stale ticket list", zap.Error(err))
				return tickets, CacheStatusStale, nil
			}
		}
		return nil, "", err
	}

	tickets := s.normalize(ctx, wireTickets)
	if data, jsonErr := json.Marshal(tickets); jsonErr == nil {
		s.store.Put(ctx, cache.RecentTicketsKey, data, s.ticketTTL)
	}
	return tickets, CacheStatusMiss, nil
}

func (s *TicketService) normalize(ctx context.Context, wireTickets []zendesk.Ticket) []domain.Ticket {
	ids := make([]int64, 0, len(wireTickets)*2)
	for _, t := range wireTickets {
		ids = append(ids, t.RequesterID)
		if t.AssigneeID != nil {
			ids = append(ids, *t.AssigneeID)
		}
	}
	names := s.users.ResolveNames(ctx, ids)

	tickets := make([]domain.Ticket, 0, len(wireTickets))
	for _, t := range wireTickets {
		ticket := domain.Ticket{
			ID:            t.ID,
			Subject:       t.Subject,
			Description:   t.Description,
			Status:        domain.NormalizeStatus(t.Status),
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
		tickets = append(tickets, ticket)
	}
	return tickets
}
