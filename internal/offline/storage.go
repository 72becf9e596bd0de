package offline

import (
	"context"
	"maps"
	"net/http"
	"slices"
	"sync"
)

// Response is a cached or fetched asset.
type Response struct {
	Status int         `json:"status"`
	Header http.Header `json:"header,omitempty"`
	Body   []byte      `json:"body"`
}

// CacheStorage holds named caches of responses keyed by request path.
type CacheStorage interface {
	// Keys lists the names of all existing caches.
	Keys(ctx context.Context) ([]string, error)
	// PutAll creates cache if needed and stores entries in one step.
	PutAll(ctx context.Context, cache string, entries map[string]Response) error
	// Match looks key up in cache.
	Match(ctx context.Context, cache, key string) (Response, bool, error)
	// Delete removes cache and everything in it.
	Delete(ctx context.Context, cache string) error
}

// MemoryStorage is a process-local CacheStorage.
type MemoryStorage struct {
	mu     sync.RWMutex
	caches map[string]map[string]Response
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{caches: make(map[string]map[string]Response)}
}

func (s *MemoryStorage) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.caches)), nil
}

func (s *MemoryStorage) PutAll(_ context.Context, cache string, entries map[string]Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.caches[cache]
	if !ok {
		c = make(map[string]Response, len(entries))
		s.caches[cache] = c
	}
	maps.Copy(c, entries)
	return nil
}

func (s *MemoryStorage) Match(_ context.Context, cache, key string) (Response, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp, ok := s.caches[cache][key]
	return resp, ok, nil
}

func (s *MemoryStorage) Delete(_ context.Context, cache string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.caches, cache)
	return nil
}
