// Package attachstore persists chat uploads (audio clips, documents).
package attachstore

import (
	"context"
	"sync"

	"github.com/legalmitra/legalmitra/internal/domain/chat"
)

type object struct {
	data     []byte
	mimeType string
}

// MemoryStore keeps uploads in process memory for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]object
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]object)}
}

// Put stores the payload under key.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte, mimeType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = object{data: buf, mimeType: mimeType}
	return nil
}

// Get returns a stored payload.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj.data, obj.mimeType, ok
}

// Len reports the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

var _ chat.AttachmentStore = (*MemoryStore)(nil)
