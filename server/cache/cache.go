// Package cache implements short-TTL memoization of relationship checks.
//
// Authorization decisions served from the cache may be stale for up to the
// TTL window after a relationship change. That is an accepted trade-off for
// read-heavy, low-churn relationship data; every mutation path which changes
// a user's relationships is required to call Invalidate for that user.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/mentorhub/relay/server/store/types"
)

// DefaultTTL is the entry lifetime used when no TTL is configured.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value   interface{}
	expires time.Time
}

// Cache is a mutex-guarded map of memoized results with per-entry expiry.
type Cache struct {
	lock    sync.Mutex
	ttl     time.Duration
	entries map[string]entry
}

// New creates a cache with the given TTL; ttl <= 0 selects DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// SharedGroupKey is the cache key for a "do these two users share a group"
// check. The key is symmetric in the two users and mentions both of them so
// Invalidate for either user drops it.
func SharedGroupKey(uid1, uid2 types.Uid) string {
	if uid2 < uid1 {
		uid1, uid2 = uid2, uid1
	}
	return "rel:" + uid1.String() + ":" + uid2.String()
}

// MembershipKey is the cache key for a group membership check.
func MembershipKey(group, uid types.Uid) string {
	return "grp:" + group.String() + ":" + uid.String()
}

// GetOrCompute returns the memoized result if present and unexpired,
// otherwise invokes compute, stores its result with a fresh expiry and
// returns it. The lock is not held across compute: concurrent misses on the
// same key may compute twice, the last write wins.
func (c *Cache) GetOrCompute(key string, compute func() (interface{}, error)) (interface{}, error) {
	now := time.Now()

	c.lock.Lock()
	if ent, ok := c.entries[key]; ok && ent.expires.After(now) {
		c.lock.Unlock()
		return ent.value, nil
	}
	c.lock.Unlock()

	value, err := compute()
	if err != nil {
		return nil, err
	}

	c.lock.Lock()
	c.entries[key] = entry{value: value, expires: now.Add(c.ttl)}
	c.lock.Unlock()

	return value, nil
}

// Invalidate removes every entry keyed with the given user. Returns the
// number of entries removed. Must be called on every mutation of the user's
// underlying relationships.
func (c *Cache) Invalidate(uid types.Uid) int {
	marker := ":" + uid.String()

	c.lock.Lock()
	defer c.lock.Unlock()

	var count int
	for key := range c.entries {
		if strings.HasSuffix(key, marker) || strings.Contains(key, marker+":") {
			delete(c.entries, key)
			count++
		}
	}
	return count
}

// Purge drops all entries.
func (c *Cache) Purge() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.entries = make(map[string]entry)
}

// Len reports the number of entries, including expired ones not yet evicted.
func (c *Cache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return len(c.entries)
}
