package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jengzang/securecheck/internal/models"
)

// Loader loads the full record set from the store
type Loader func(ctx context.Context) ([]models.StopRecord, error)

// RecordCache holds the last full load of traffic_logs until it is
// invalidated or its TTL runs out. A zero TTL never expires.
type RecordCache struct {
	mu       sync.Mutex
	records  []models.StopRecord
	loadedAt time.Time
	valid    bool
	ttl      time.Duration
	now      func() time.Time
}

// NewRecordCache creates an empty cache
func NewRecordCache(ttl time.Duration) *RecordCache {
	return &RecordCache{ttl: ttl, now: time.Now}
}

// Get returns the cached records, loading them when empty or stale.
// Callers must treat the returned slice as read-only.
func (c *RecordCache) Get(ctx context.Context, load Loader) ([]models.StopRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && (c.ttl <= 0 || c.now().Sub(c.loadedAt) < c.ttl) {
		return c.records, nil
	}

	records, err := load(ctx)
	if err != nil {
		return nil, err
	}

	c.records = records
	c.loadedAt = c.now()
	c.valid = true
	return records, nil
}

// Invalidate forces the next Get to reload
func (c *RecordCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = nil
	c.valid = false
}

// LoadedAt reports when the cached records were loaded; zero when empty
func (c *RecordCache) LoadedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid {
		return time.Time{}
	}
	return c.loadedAt
}
