// Package cache keeps per-log-group fetch cursors for the lifetime of
// the process, so repeated watch invocations can fetch incrementally.
// It is not a source of truth and is never persisted.
package cache

import (
	"sync"
	"time"

	"github.com/mizuki-h/aws-log-lens/internal/model"
)

// Entry is the cursor stored per (log group, stream prefix) key.
type Entry struct {
	// LastSeenTimestamp is the maximum event timestamp observed so
	// far; it never decreases across non-empty updates.
	LastSeenTimestamp int64
	// LastFetchTime records when the entry was last advanced.
	LastFetchTime time.Time
	// OldestRetrieved is the minimum event timestamp observed so far;
	// it never increases across non-empty updates.
	OldestRetrieved int64
}

// Stats reports cache occupancy, mainly for diagnostics and tests.
type Stats struct {
	Keys int
}

// Cache is an explicit instance owned by the orchestrator. A fresh one
// is zero-valued via New; there is no package-level state.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// New returns an empty cursor cache.
func New() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

func key(groupName, streamPrefix string) string {
	return groupName + "\x00" + streamPrefix
}

// Get returns the cursor for the key and whether one exists. An absent
// cursor means the caller should fall back to a relative time window.
func (c *Cache) Get(groupName, streamPrefix string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key(groupName, streamPrefix)]
	return e, ok
}

// Update advances the cursor from a batch of fetched events. An empty
// batch is a no-op: a fetch that found nothing must not move either
// boundary of the cursor.
func (c *Cache) Update(groupName, streamPrefix string, events []model.LogEvent) {
	if len(events) == 0 {
		return
	}
	newest := events[0].TimestampMs
	oldest := events[0].TimestampMs
	for _, e := range events[1:] {
		if e.TimestampMs > newest {
			newest = e.TimestampMs
		}
		if e.TimestampMs < oldest {
			oldest = e.TimestampMs
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	k := key(groupName, streamPrefix)
	cur, ok := c.entries[k]
	if !ok {
		c.entries[k] = Entry{
			LastSeenTimestamp: newest,
			LastFetchTime:     time.Now(),
			OldestRetrieved:   oldest,
		}
		return
	}
	if newest > cur.LastSeenTimestamp {
		cur.LastSeenTimestamp = newest
	}
	if oldest < cur.OldestRetrieved {
		cur.OldestRetrieved = oldest
	}
	cur.LastFetchTime = time.Now()
	c.entries[k] = cur
}

// Stats returns current occupancy.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Keys: len(c.entries)}
}
