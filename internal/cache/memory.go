package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	key        string
	value      []byte
	insertedAt time.Time
	ttl        time.Duration
	element    *list.Element
}

// MemoryStore is the in-process cache backend. Expired entries are kept in
// place until overwritten or evicted so GetStale can serve them as a
// fallback; Get treats them as absent.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	order      *list.List // front = most recently used
	maxEntries int
	now        func() time.Time
	hits       int64
	misses     int64
}

// MemoryOption customizes a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock injects the time source used for TTL checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// WithMaxEntries bounds the store; least recently used entries are evicted
// once the bound is exceeded. Zero means unbounded.
func WithMaxEntries(n int) MemoryOption {
	return func(s *MemoryStore) { s.maxEntries = n }
}

// NewMemoryStore creates an in-process cache store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		order:   list.New(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the payload only if present and within TTL.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok || s.now().Sub(entry.insertedAt) >= entry.ttl {
		s.misses++
		return nil, false
	}
	s.order.MoveToFront(entry.element)
	s.hits++
	return entry.value, true
}

// GetStale returns the payload regardless of TTL.
func (s *MemoryStore) GetStale(_ context.Context, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return entry.value, true
}

// Put inserts or overwrites the entry, stamping the current instant.
func (s *MemoryStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[key]; ok {
		entry.value = value
		entry.insertedAt = s.now()
		entry.ttl = ttl
		s.order.MoveToFront(entry.element)
		return
	}
	entry := &memoryEntry{key: key, value: value, insertedAt: s.now(), ttl: ttl}
	entry.element = s.order.PushFront(entry)
	s.entries[key] = entry

	if s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		s.evictOldest()
	}
}

// Invalidate removes an entry regardless of TTL.
func (s *MemoryStore) Invalidate(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[key]; ok {
		s.order.Remove(entry.element)
		delete(s.entries, key)
	}
}

// Stats reports entry and hit/miss counts.
func (s *MemoryStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Entries: int64(len(s.entries)), Hits: s.hits, Misses: s.misses}
}

// Ping always succeeds for the in-process backend.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op for the in-process backend.
func (s *MemoryStore) Close() {}

func (s *MemoryStore) evictOldest() {
	element := s.order.Back()
	if element == nil {
		return
	}
	entry := element.Value.(*memoryEntry)
	s.order.Remove(element)
	delete(s.entries, entry.key)
}
