package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"
	"time"

	appErrors "github.com/berryseed/327project-group10/pkg/errors"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCacheRepository is an in-process TTL cache used when Redis is disabled.
type MemoryCacheRepository struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time
}

// NewMemoryCacheRepository constructs an empty cache.
func NewMemoryCacheRepository() *MemoryCacheRepository {
	return &MemoryCacheRepository{items: make(map[string]memoryEntry), now: time.Now}
}

// Get decodes the cached value into dest or returns appErrors.ErrCacheMiss. Expired entries are evicted.
func (r *MemoryCacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	r.mu.RLock()
	entry, ok := r.items[key]
	r.mu.RUnlock()
	if !ok {
		return appErrors.ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		r.mu.Lock()
		delete(r.items, key)
		r.mu.Unlock()
		return appErrors.ErrCacheMiss
	}
	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

// Set stores value for ttl. A non-positive ttl never expires.
func (r *MemoryCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	entry := memoryEntry{payload: payload}
	if ttl > 0 {
		entry.expiresAt = r.now().Add(ttl)
	}
	r.mu.Lock()
	r.items[key] = entry
	r.mu.Unlock()
	return nil
}

// DeleteByPattern removes keys matching a glob such as "planner:user-1:*".
func (r *MemoryCacheRepository) DeleteByPattern(ctx context.Context, pattern string) error {
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid cache pattern %s: %w", pattern, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.items {
		if ok, _ := path.Match(pattern, key); ok {
			delete(r.items, key)
		}
	}
	return nil
}

// Len reports the number of stored entries, expired or not.
func (r *MemoryCacheRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
