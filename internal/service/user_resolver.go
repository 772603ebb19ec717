package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/zendesk-dashboard/internal/cache"
	"github.com/spec-kit/zendesk-dashboard/internal/domain"
	"github.com/spec-kit/zendesk-dashboard/internal/zendesk"
)

// showManyChunkSize bounds how many ids go into one show_many call.
const showManyChunkSize = 100

// userResolver resolves user ids to display names through the cache.
// Resolution failures degrade to missing map entries; callers substitute
// their own fallback name.
type userResolver struct {
	source zendesk.API
	store  cache.Store
	logger *zap.Logger
	ttl    time.Duration
}

func newUserResolver(source zendesk.API, store cache.Store, logger *zap.Logger, ttl time.Duration) *userResolver {
	return &userResolver{source: source, store: store, logger: logger, ttl: ttl}
}

// ResolveNames maps each id to a display name. Ids that cannot be resolved
// are absent from the result.
func (r *userResolver) ResolveNames(ctx context.Context, ids []int64) map[int64]string {
	names := make(map[int64]string)
	distinct := dedupeIDs(ids)
	for i := 0; i < len(distinct); i += showManyChunkSize {
		end := i + showManyChunkSize
		if end > len(distinct) {
			end = len(distinct)
		}
		r.resolveChunk(ctx, distinct[i:end], names)
	}
	return names
}

func (r *userResolver) resolveChunk(ctx context.Context, chunk []int64, names map[int64]string) {
	key := cache.UserBatchKey(chunk)
	if data, ok := r.store.Get(ctx, key); ok {
		var users []domain.User
		if err := json.Unmarshal(data, &users); err == nil {
			for _, u := range users {
				names[u.ID] = u.Name
			}
			return
		}
	}

	wireUsers, err := r.source.ShowManyUsers(ctx, chunk)
	if err != nil {
		r.logger.Warn("user batch lookup failed", zap.Int("ids", len(chunk)), zap.Error(err))
		return
	}
	users := make([]domain.User, 0, len(wireUsers))
	for _, u := range wireUsers {
		users = append(users, domain.User{ID: u.ID, Name: u.Name})
		names[u.ID] = u.Name
	}
	if data, err := json.Marshal(users); err == nil {
		r.store.Put(ctx, key, data, r.ttl)
	}
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
