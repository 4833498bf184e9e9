package ledger

import (
	"sync"
	"time"
)

// Cache keeps the last loaded ledger for a short time. Every successful
// mutation bumps the version, and entries stored under an older version
// are never returned.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	version  uint64
	entry    Ledger
	entryVer uint64
	loadedAt time.Time
	valid    bool
}

// NewCache returns a cache whose entries expire after ttl. A zero ttl
// disables caching.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, now: time.Now}
}

// Version returns the current mutation counter. Readers capture it before
// going to the backend and hand it back to Put.
func (c *Cache) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Get returns a copy of the cached ledger if it is fresh.
func (c *Cache) Get() (Ledger, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid || c.ttl <= 0 || c.entryVer != c.version {
		return nil, false
	}
	if c.now().Sub(c.loadedAt) >= c.ttl {
		c.valid = false
		return nil, false
	}
	return c.entry.Clone(), true
}

// Put stores l if no mutation happened since version was read.
func (c *Cache) Put(l Ledger, version uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ttl <= 0 || version != c.version {
		return
	}
	c.entry = l.Clone()
	c.entryVer = version
	c.loadedAt = c.now()
	c.valid = true
}

// Invalidate drops the cached ledger and bumps the version.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	c.entry = nil
	c.valid = false
}
