package panel

import (
	"container/list"
	"sync"

	"github.com/zeebo/blake3"
)

// MessageID identifies the chat message a parse call belongs to. An empty
// ID disables caching for that call.
type MessageID string

// Digest is a blake3 content hash of the raw message text. Caching keys
// on (message ID, digest) so an edited message re-parses.
type Digest [32]byte

// ContentHash digests the raw message text.
func ContentHash(text string) Digest {
	return blake3.Sum256([]byte(text))
}

// DefaultCacheCapacity bounds the outcome cache.
const DefaultCacheCapacity = 100

type cacheKey struct {
	msg  MessageID
	hash Digest
}

type cacheEntry struct {
	key     cacheKey
	outcome *Outcome
	err     error
}

// Cache is a bounded FIFO map from (message ID, content hash) to a parse
// outcome. Insertion order drives eviction; a hit does not refresh an
// entry. All access is serialized internally, so the engine can be called
// from concurrent goroutines even though call frequency (one per chat
// message) makes contention negligible.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]*list.Element
	order   *list.List // Front = newest, Back = oldest; stores *cacheEntry
	cap     int
}

// NewCache creates a cache with the given capacity (minimum 1).
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		entries: make(map[cacheKey]*list.Element),
		order:   list.New(),
		cap:     capacity,
	}
}

// Get returns the cached outcome for a message, if present.
func (c *Cache) Get(id MessageID, hash Digest) (*Outcome, error, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[cacheKey{msg: id, hash: hash}]
	if !ok {
		return nil, nil, false
	}
	entry := el.Value.(*cacheEntry)
	return entry.outcome, entry.err, true
}

// Put stores a terminal outcome, evicting the oldest entry once capacity
// is exceeded. It reports whether an eviction happened.
func (c *Cache) Put(id MessageID, hash Digest, outcome *Outcome, err error) (evicted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{msg: id, hash: hash}
	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*cacheEntry)
		entry.outcome = outcome
		entry.err = err
		return false
	}

	for c.order.Len() >= c.cap {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
		evicted = true
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, outcome: outcome, err: err})
	return evicted
}

// Clear drops every entry. Hosts call this on chat-context change.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*list.Element)
	c.order = list.New()
}

// Len returns the number of cached outcomes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
