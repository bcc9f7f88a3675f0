// Package cache memoizes backend reads per session. Entries are grouped by
// resource so a mutation can drop everything derived from it.
package cache

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/singleflight"
)

type entry struct {
	value    any
	resource string
	scope    string
	expires  time.Time
}

type Cache struct {
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu          sync.RWMutex
	entries     map[string]entry
	generations map[string]uint64
}

// New returns a cache whose entries live for ttl. A non-positive ttl
// disables storing; loads are still coalesced.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:         ttl,
		now:         time.Now,
		entries:     make(map[string]entry),
		generations: make(map[string]uint64),
	}
}

// Key hashes (resource, params, scope). Params are sorted, so map iteration
// order never changes the key.
func Key(resource string, params map[string]string, scope string) string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	slices.Sort(names)

	h, _ := blake2b.New256(nil)
	field := func(s string) {
		h.Write(binary.AppendUvarint(nil, uint64(len(s))))
		h.Write([]byte(s))
	}
	field(resource)
	field(scope)
	for _, k := range names {
		field(k)
		field(params[k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// GetOrLoad returns the cached value for the key or calls load. Concurrent
// callers for the same key share one load. A value loaded while its resource
// was invalidated is returned but not stored.
func GetOrLoad[T any](ctx context.Context, c *Cache, resource string, params map[string]string, scope string, load func(ctx context.Context) (T, error)) (T, error) {
	key := Key(resource, params, scope)

	if v, ok := c.get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		gen := c.generation(resource)
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.put(key, resource, scope, value, gen)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (c *Cache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expires) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) generation(resource string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[resource]
}

func (c *Cache) put(key, resource, scope string, value any, gen uint64) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[resource] != gen {
		return
	}
	c.entries[key] = entry{
		value:    value,
		resource: resource,
		scope:    scope,
		expires:  c.now().Add(c.ttl),
	}
}

// Invalidate drops every entry of the given resources, for all sessions.
func (c *Cache) Invalidate(resources ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range resources {
		c.generations[r]++
	}
	for key, e := range c.entries {
		if slices.Contains(resources, e.resource) {
			delete(c.entries, key)
		}
	}
	slog.Debug("Cache invalidated", "resources", resources)
}

// InvalidateScope drops every entry belonging to one session.
func (c *Cache) InvalidateScope(scope string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if e.scope == scope {
			delete(c.entries, key)
		}
	}
}

// Sweep evicts expired entries and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
