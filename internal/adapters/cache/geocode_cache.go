package cache

import (
	"container/list"
	"context"
	"log"
	"route-optimizer-service/internal/domain"
	"sort"
	"sync"
	"time"
)

// GeocodeCache is a bounded, time-expiring address -> coordinates cache.
//
// Semantics:
//   - the lookup key is the exact address string; no normalization here
//   - an entry whose age has reached the TTL is a miss (miss at exactly
//     ttl); expired entries are not purged except by LRU eviction
//   - recency is bumped on read-hit and on write; a write that would
//     exceed the size bound evicts the least-recently-used entry first
//   - every write persists the full cache through the Store; a failed
//     persist is logged and the in-memory state stands (best effort)
//   - only successful lookups are ever stored, so failing addresses
//     retry a live lookup on every call
//
// Safe for concurrent use.
type GeocodeCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	store   Store

	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

type lruItem struct {
	address string
	entry   Entry
}

// NewGeocodeCache builds an empty cache. store may be nil for a purely
// in-memory cache; now may be nil to use wall-clock time.
func NewGeocodeCache(maxSize int, ttl time.Duration, store Store, now func() time.Time) *GeocodeCache {
	if now == nil {
		now = time.Now
	}
	return &GeocodeCache{
		maxSize: maxSize,
		ttl:     ttl,
		now:     now,
		store:   store,
		entries: make(map[string]*list.Element, maxSize),
		order:   list.New(),
	}
}

// Load replaces the cache contents with persisted state. Recency is
// seeded from CachedAt (newest = most recent); entries beyond the size
// bound are discarded oldest-first. Missing prior state is not an
// error; a corrupt store is, and leaves the cache empty and usable.
func (c *GeocodeCache) Load(ctx context.Context) error {
	if c.store == nil {
		return nil
	}

	persisted, err := c.store.Load(ctx)
	if err != nil {
		return err
	}

	type kv struct {
		address string
		entry   Entry
	}
	ordered := make([]kv, 0, len(persisted))
	for addr, e := range persisted {
		ordered = append(ordered, kv{address: addr, entry: e})
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].entry.CachedAt.Before(ordered[j].entry.CachedAt)
	})
	if len(ordered) > c.maxSize {
		ordered = ordered[len(ordered)-c.maxSize:]
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element, c.maxSize)
	c.order.Init()
	for _, item := range ordered {
		elem := c.order.PushFront(&lruItem{address: item.address, entry: item.entry})
		c.entries[item.address] = elem
	}

	return nil
}

// Get returns the cached coordinates for an address, or false on a
// miss. An expired entry is a miss and does not bump recency.
func (c *GeocodeCache) Get(address string) (domain.Coordinates, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[address]
	if !ok {
		return domain.Coordinates{}, false
	}

	item := elem.Value.(*lruItem)
	if c.now().Sub(item.entry.CachedAt) >= c.ttl {
		return domain.Coordinates{}, false
	}

	c.order.MoveToFront(elem)
	return item.entry.Coords, true
}

// Put stores coordinates for an address and synchronously persists the
// full cache state.
func (c *GeocodeCache) Put(ctx context.Context, address string, coords domain.Coordinates) {
	c.mu.Lock()

	entry := Entry{Coords: coords, CachedAt: c.now()}

	if elem, ok := c.entries[address]; ok {
		elem.Value.(*lruItem).entry = entry
		c.order.MoveToFront(elem)
	} else {
		if len(c.entries) >= c.maxSize {
			c.evictOldestLocked()
		}
		c.entries[address] = c.order.PushFront(&lruItem{address: address, entry: entry})
	}

	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	if err := c.store.Save(ctx, snapshot); err != nil {
		log.Printf("geocode cache persist failed: %v", err)
	}
}

// Len reports the number of entries currently held, expired or not.
func (c *GeocodeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Snapshot copies the current cache contents, most recent first not
// guaranteed (map order).
func (c *GeocodeCache) Snapshot() map[string]Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *GeocodeCache) evictOldestLocked() {
	back := c.order.Back()
	if back == nil {
		return
	}
	c.order.Remove(back)
	delete(c.entries, back.Value.(*lruItem).address)
}

func (c *GeocodeCache) snapshotLocked() map[string]Entry {
	out := make(map[string]Entry, len(c.entries))
	for addr, elem := range c.entries {
		out[addr] = elem.Value.(*lruItem).entry
	}
	return out
}
