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

// CommentService fetches and caches comments per ticket, resolving author
// display names.
type CommentService struct {
	source     zendesk.API
	store      cache.Store
	metrics    *observability.Metrics
	logger     *zap.Logger
	commentTTL time.Duration
}

// CommentDependencies bundles collaborators for the comment service.
type CommentDependencies struct {
	Source     zendesk.API
	Store      cache.Store
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	CommentTTL time.Duration
}

// CommentResult carries resolved comments plus how they were served.
type CommentResult struct {
	Comments    []domain.Comment
	CacheStatus CacheStatus
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		source:     deps.Source,
		store:      deps.Store,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		commentTTL: deps.CommentTTL,
	}
}

// TicketComments returns the comments for one ticket. Full bodies are
// cached; truncation for summary display happens at the presentation
// boundary, never here.
func (s *CommentService) TicketComments(ctx context.Context, ticketID int64) (*CommentResult, error) {
	if ticketID <= 0 {
		return nil, util.NewValidationError("ticket id must be a positive integer")
	}
	if !s.source.Configured() {
		return nil, util.NewNotConfigured("zendesk credentials missing")
	}

	key := cache.CommentsKey(ticketID)
	if data, ok := s.store.Get(ctx, key); ok {
		var comments []domain.Comment
		if err := json.Unmarshal(data, &comments); err == nil {
			s.metrics.RecordCacheHit(cache.KeyPrefix(key))
			return &CommentResult{Comments: comments, CacheStatus: CacheStatusHit}, nil
		}
	}
	s.metrics.RecordCacheMiss(cache.KeyPrefix(key))

	wireComments, err := s.source.TicketComments(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	comments := s.resolveAuthors(ctx, ticketID, wireComments)
	if data, jsonErr := json.Marshal(comments); jsonErr == nil {
		s.store.Put(ctx, key, data, s.commentTTL)
	}
	return &CommentResult{Comments: comments, CacheStatus: CacheStatusMiss}, nil
}

// resolveAuthors maps author ids to display names. Lookups are memoized
// within this fetch so an author appearing in many comments is resolved
// once; a failed lookup degrades that author to "Unknown" without failing
// the fetch.
func (s *CommentService) resolveAuthors(ctx context.Context, ticketID int64, wireComments []zendesk.Comment) []domain.Comment {
	resolved := make(map[int64]string)
	comments := make([]domain.Comment, 0, len(wireComments))
	for _, c := range wireComments {
		name, ok := resolved[c.AuthorID]
		if !ok {
			name = s.lookupAuthor(ctx, c.AuthorID)
			resolved[c.AuthorID] = name
		}
		comments = append(comments, domain.Comment{
			ID:         c.ID,
			TicketID:   ticketID,
			AuthorID:   c.AuthorID,
			AuthorName: name,
			Body:       c.Body,
			HTMLBody:   c.HTMLBody,
			CreatedAt:  c.CreatedAt.UTC(),
		})
	}
	return comments
}

func (s *CommentService) lookupAuthor(ctx context.Context, authorID int64) string {
	if authorID == 0 {
		return domain.UnknownAuthorName
	}
	user, err := s.source.ShowUser(ctx, authorID)
	if err != nil || user == nil || user.Name == "" {
		s.logger.Warn("author lookup failed", zap.Int64("author_id", authorID), zap.Error(err))
		return domain.UnknownAuthorName
	}
	return user.Name
}
