// internal/kv/kv.go
package kv

import (
	"context"
	"sync"
	"time"
)

// Store is an injected key-value store with explicit TTLs and an explicit
// sweep, so nothing in the core depends on module-lifetime mutable state.
type Store interface {
	Set(key, value string, ttl time.Duration)
	Get(key string) (string, bool)
	Delete(key string)
	Sweep(now time.Time) int
}

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is the in-process implementation used by single-node
// deployments. A shared cache can be swapped in behind the same interface.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

func (s *MemoryStore) Set(key, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
}

// Get returns the value for key. Expired entries are treated as absent even
// before the next sweep removes them.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Sweep removes entries that expired before now and returns how many were
// dropped.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Janitor sweeps the store on an interval until ctx is cancelled.
func (s *MemoryStore) Janitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}
