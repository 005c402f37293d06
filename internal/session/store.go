// Package session keeps the upstream credential of each dashboard browser
// session. The store is an explicit dependency injected into the HTTP layer;
// nothing reads it through package globals.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/storekeep/adminapi/internal/domain"
)

// Store holds one credential per session ID with a bounded lifetime.
type Store interface {
	Get(ctx context.Context, sessionID string) (domain.Credential, bool, error)
	Set(ctx context.Context, sessionID string, cred domain.Credential, ttl time.Duration) error
	Clear(ctx context.Context, sessionID string) error
}

type memoryEntry struct {
	cred      domain.Credential
	expiresAt time.Time
}

// MemoryStore is an in-process Store for development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (domain.Credential, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[sessionID]
	if !ok {
		return domain.Credential{}, false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return domain.Credential{}, false, nil
	}
	return entry.cred, true, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, cred domain.Credential, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memoryEntry{cred: cred, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
