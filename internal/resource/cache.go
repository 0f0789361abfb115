package resource

import (
	"slices"
	"strings"
	"time"
)

type familyEntry struct {
	items       map[string]Resource
	refreshedAt time.Time
}

// Cache is an in-memory snapshot of the last-known state of every family.
// It is not safe for concurrent use; the reconciler guards it with its lock.
type Cache struct {
	families map[Family]*familyEntry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{families: make(map[Family]*familyEntry)}
}

// Replace swaps the records of a family wholesale. A record whose status did
// not change keeps its Since timestamp from the previous generation.
func (c *Cache) Replace(family Family, items []Resource, now time.Time) {
	prev := c.families[family]
	next := &familyEntry{
		items:       make(map[string]Resource, len(items)),
		refreshedAt: now,
	}

	for _, item := range items {
		item = item.Clone()
		if item.ObservedAt.IsZero() {
			item.ObservedAt = now
		}
		item.Since = now
		if prev != nil {
			if old, ok := prev.items[item.Key()]; ok && strings.EqualFold(old.Status, item.Status) && !old.Since.IsZero() {
				item.Since = old.Since
			}
		}
		next.items[item.Key()] = item
	}

	c.families[family] = next
}

// Get returns a copy of the family's records ordered by key.
func (c *Cache) Get(family Family) []Resource {
	entry := c.families[family]
	if entry == nil {
		return nil
	}

	keys := make([]string, 0, len(entry.items))
	for k := range entry.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]Resource, 0, len(keys))
	for _, k := range keys {
		out = append(out, entry.items[k].Clone())
	}
	return out
}

// First returns the record with the smallest key.
func (c *Cache) First(family Family) (Resource, bool) {
	items := c.Get(family)
	if len(items) == 0 {
		return Resource{}, false
	}
	return items[0], true
}

// Lookup returns the record with the given key.
func (c *Cache) Lookup(family Family, key string) (Resource, bool) {
	entry := c.families[family]
	if entry == nil {
		return Resource{}, false
	}
	r, ok := entry.items[key]
	if !ok {
		return Resource{}, false
	}
	return r.Clone(), true
}

// Len returns the number of records held for a family.
func (c *Cache) Len(family Family) int {
	if entry := c.families[family]; entry != nil {
		return len(entry.items)
	}
	return 0
}

// RefreshedAt returns the time of the last successful replace of a family.
func (c *Cache) RefreshedAt(family Family) time.Time {
	if entry := c.families[family]; entry != nil {
		return entry.refreshedAt
	}
	return time.Time{}
}

// LastRefresh returns the most recent refresh time over all families.
func (c *Cache) LastRefresh() time.Time {
	var latest time.Time
	for _, entry := range c.families {
		if entry.refreshedAt.After(latest) {
			latest = entry.refreshedAt
		}
	}
	return latest
}

// All returns a copy of every family's records.
func (c *Cache) All() map[Family][]Resource {
	out := make(map[Family][]Resource, len(c.families))
	for family := range c.families {
		out[family] = c.Get(family)
	}
	return out
}
