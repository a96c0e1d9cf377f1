package chat

import (
	"context"
	"time"
)

// Store defines the persistence contract for reply caching and trending
// counters. All store operations are best-effort from the service's point
// of view; failures degrade to a full resolution.
type Store interface {
	GetReply(ctx context.Context, canonical string) (CachedReply, bool, error)
	SaveReply(ctx context.Context, record CachedReply, ttl time.Duration) error
	IncrementQuery(ctx context.Context, canonical, display string) error
	TopQueries(ctx context.Context, limit int) ([]TrendingQuery, error)
}

// Generator produces a free-form answer when the knowledge table has no
// good match. A nil Generator means the fallback is not configured.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AttachmentStore persists uploaded chat attachments.
type AttachmentStore interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) error
}
