package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/zendesk-dashboard/internal/cache"
	"github.com/spec-kit/zendesk-dashboard/internal/events"
)

// WebhookService ingests ticket-created notifications. No signature or HMAC
// verification is performed; the webhook endpoint trusts its caller. Known
// gap, documented rather than silently papered over.
type WebhookService struct {
	dispatcher        events.Dispatcher
	store             cache.Store
	logger            *zap.Logger
	invalidateTickets bool
}

// NewWebhookService creates the service. When invalidateTickets is set, a
// received notification drops the cached recent ticket list so the next page
// load refetches.
func NewWebhookService(dispatcher events.Dispatcher, store cache.Store, logger *zap.Logger, invalidateTickets bool) *WebhookService {
	return &WebhookService{
		dispatcher:        dispatcher,
		store:             store,
		logger:            logger,
		invalidateTickets: invalidateTickets,
	}
}

// IngestTicketCreated acknowledges a validated notification and publishes
// the corresponding event.
func (s *WebhookService) IngestTicketCreated(ctx context.Context, ticketID int64, subject, status string) error {
	s.logger.Info("new ticket created", zap.Int64("ticket_id", ticketID))
	return s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.New().String(),
		Type:      events.EventTicketCreated,
		TicketID:  ticketID,
		Timestamp: time.Now().UTC(),
		Payload:   events.TicketCreatedPayload{Subject: subject, Status: status},
	})
}

// RegisterHandlers subscribes to events.
func (s *WebhookService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventTicketCreated, s.handleTicketCreated)
}

func (s *WebhookService) handleTicketCreated(ctx context.Context, event events.Event) error {
	s.logger.Info("TicketCreated", zap.Int64("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	if s.invalidateTickets {
		s.store.Invalidate(ctx, cache.RecentTicketsKey)
		s.logger.Debug("invalidated recent ticket cache", zap.Int64("ticket_id", event.TicketID))
	}
	return nil
}
