// Package cache provides the report cache backends. Cached report payloads
// are stored as JSON blobs keyed by (company, report kind, params) and are
// replaced wholesale on refresh.
package cache

import (
	"context"
	"sync"
	"time"
)

// ReportCache stores serialized report payloads.
// Get returns (nil, nil) on a miss. A TTL of zero means the entry does not
// expire; it is only replaced by the next Set for the same key.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// InMemoryReportCache implements ReportCache in process memory.
// Suitable for single-instance deployments and tests.
type InMemoryReportCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time // zero means no expiry
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewInMemoryReportCache creates a new InMemoryReportCache
func NewInMemoryReportCache() *InMemoryReportCache {
	return &InMemoryReportCache{
		entries: make(map[string]memoryEntry),
	}
}

// Get retrieves a cached payload, nil on miss or expiry
func (c *InMemoryReportCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if entry.expired(time.Now()) {
		c.evictExpired(key)
		return nil, nil
	}
	return entry.payload, nil
}

// evictExpired drops the entry for key only if it is still expired under the
// write lock. A Set that raced in between must not lose its fresh entry.
func (c *InMemoryReportCache) evictExpired(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok && entry.expired(time.Now()) {
		delete(c.entries, key)
	}
}

// Set stores a payload, replacing any previous entry for the key
func (c *InMemoryReportCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	entry := memoryEntry{payload: payload}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

// Delete removes a cached payload
func (c *InMemoryReportCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Close releases any resources held by the cache
func (c *InMemoryReportCache) Close() error {
	return nil
}

// Ensure InMemoryReportCache implements ReportCache
var _ ReportCache = (*InMemoryReportCache)(nil)
