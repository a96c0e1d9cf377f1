package replystore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/legalmitra/legalmitra/internal/domain/chat"
)

type cachedEntry struct {
	payload   chat.CachedReply
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the chat store for
// tests/dev and for deployments without Valkey.
type MemoryStore struct {
	mu       sync.RWMutex
	replies  map[string]cachedEntry
	trending map[string]int64
	displays map[string]string
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		replies:  make(map[string]cachedEntry),
		trending: make(map[string]int64),
		displays: make(map[string]string),
	}
}

// GetReply implements chat.Store.
func (s *MemoryStore) GetReply(_ context.Context, canonical string) (chat.CachedReply, bool, error) {
	if canonical == "" {
		return chat.CachedReply{}, false, nil
	}
	s.mu.RLock()
	entry, ok := s.replies[canonical]
	s.mu.RUnlock()
	if !ok {
		return chat.CachedReply{}, false, nil
	}
	if hasExpired(entry.expiresAt) {
		s.mu.Lock()
		delete(s.replies, canonical)
		s.mu.Unlock()
		return chat.CachedReply{}, false, nil
	}
	return entry.payload, true, nil
}

// SaveReply caches the reply with optional TTL.
func (s *MemoryStore) SaveReply(_ context.Context, record chat.CachedReply, ttl time.Duration) error {
	if record.Canonical == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.replies[record.Canonical] = cachedEntry{payload: record, expiresAt: exp}
	return nil
}

// IncrementQuery bumps the counter for a canonical query and records a
// display string.
func (s *MemoryStore) IncrementQuery(_ context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trending[canonical]++
	if _, exists := s.displays[canonical]; !exists {
		s.displays[canonical] = display
	}
	return nil
}

// TopQueries returns the most frequent canonical questions.
func (s *MemoryStore) TopQueries(_ context.Context, limit int) ([]chat.TrendingQuery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.trending)
	}
	items := make([]chat.TrendingQuery, 0, len(s.trending))
	for canonical, count := range s.trending {
		display := s.displays[canonical]
		if display == "" {
			display = canonical
		}
		items = append(items, chat.TrendingQuery{Query: display, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Query < items[j].Query
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ chat.Store = (*MemoryStore)(nil)
