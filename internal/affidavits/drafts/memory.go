package drafts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	draft     Draft
	expiresAt time.Time
}

// MemoryStore keeps drafts in process. Used when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttlOrDefault(ttl), now: time.Now, entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, tenantID, jobID uuid.UUID) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := draftKey(tenantID, jobID)
	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}
	d := entry.draft
	d.Selections.PhotoKeys = append([]string(nil), d.Selections.PhotoKeys...)
	return &d, nil
}

func (s *MemoryStore) Save(_ context.Context, tenantID, jobID uuid.UUID, draft Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	draft.UpdatedAt = now.UTC()
	draft.Selections.PhotoKeys = append([]string(nil), draft.Selections.PhotoKeys...)
	s.entries[draftKey(tenantID, jobID)] = memoryEntry{draft: draft, expiresAt: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, tenantID, jobID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, draftKey(tenantID, jobID))
	return nil
}
