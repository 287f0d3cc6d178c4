package session

import (
	"context"
	"sync"
	"time"
)

// Store persists {session id → user id} associations. Implementations must
// be safe for concurrent use by multiple in-flight requests.
type Store interface {
	Put(ctx context.Context, sid string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, sid string) (userID uint, ok bool, err error)
	Del(ctx context.Context, sid string) error
}

// MemoryStore is the in-process Store used in dev and tests, and when no
// Redis address is configured. Entries expire lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	userID    uint
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Put(_ context.Context, sid string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sid] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sid string) (uint, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[sid]
	s.mu.RUnlock()

	if !ok {
		return 0, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, sid)
		s.mu.Unlock()
		return 0, false, nil
	}
	return entry.userID, true, nil
}

func (s *MemoryStore) Del(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sid)
	return nil
}
