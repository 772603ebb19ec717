package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Store is a TTL cache keyed by string, holding opaque JSON payloads.
// Entries are replaced whole on every Put, so readers never observe a
// partially written value.
type Store interface {
	// Get returns the payload only if present and not expired.
	Get(ctx context.Context, key string) ([]byte, bool)
	// GetStale returns the payload even past its TTL, when the backend
	// retains expired entries. Used as a fallback when the remote source
	// is unreachable.
	GetStale(ctx context.Context, key string) ([]byte, bool)
	// Put inserts or overwrites unconditionally, stamping the current instant.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Invalidate removes an entry regardless of TTL.
	Invalidate(ctx context.Context, key string)
	// Stats reports entry and hit/miss counts.
	Stats() Stats
	// Ping verifies backend availability.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close()
}

// Stats reports cache performance counters.
type Stats struct {
	Entries int64 `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// HitRate returns the hit percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// RecentTicketsKey caches the normalized recent ticket list.
const RecentTicketsKey = "tickets:recent"

// CommentsKey caches resolved comments for one ticket.
func CommentsKey(ticketID int64) string {
	return "comments:" + strconv.FormatInt(ticketID, 10)
}

// UserBatchKey caches a batch user lookup, hashed over the sorted id set so
// the same set of ids always maps to the same key.
func UserBatchKey(ids []int64) string {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(id, 10)
	}
	sum := md5.Sum([]byte(strings.Join(parts, ",")))
	return "users:batch:" + hex.EncodeToString(sum[:])[:8]
}

// StatsKey caches KPI aggregates for one date range.
func StatsKey(start, end string) string {
	return fmt.Sprintf("stats:%s:%s", start, end)
}

// KeyPrefix returns the segment before the first colon, for metrics grouping.
func KeyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
