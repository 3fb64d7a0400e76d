package asset

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const (
	// shardCount is the number of cache shards. Power of 2 for fast
	// modulo via bitwise AND.
	shardCount = 16
	shardMask  = shardCount - 1

	// DefaultCacheBudget is the total byte budget across all shards
	// when the Store is not configured with one.
	DefaultCacheBudget = 64 << 20
)

// byteCache is a sharded LRU cache of resource bytes keyed by cleaned
// path. Eviction is by byte budget, not entry count: each shard holds
// at most budget/shardCount bytes and drops least-recently-used entries
// to stay under it. Entries larger than a whole shard are not cached at
// all.
//
// Safe for concurrent use; each shard has its own lock.
type byteCache struct {
	shards      [shardCount]*cacheShard
	shardBudget int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheShard struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	lru     *lruList
	bytes   int
}

type cacheEntry struct {
	data []byte
	node *lruNode
}

func newByteCache(budget int) *byteCache {
	if budget <= 0 {
		budget = DefaultCacheBudget
	}
	c := &byteCache{shardBudget: budget / shardCount}
	for i := range c.shards {
		c.shards[i] = &cacheShard{
			entries: make(map[string]*cacheEntry),
			lru:     newLRUList(),
		}
	}
	return c
}

func (c *byteCache) shard(key string) *cacheShard {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key)) // fnv.Write never returns an error
	return c.shards[h.Sum64()&shardMask]
}

// get returns the cached bytes for key. The slice is shared; callers
// must not modify it.
func (c *byteCache) get(key string) ([]byte, bool) {
	shard := c.shard(key)

	shard.mu.RLock()
	_, exists := shard.entries[key]
	shard.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		return nil, false
	}

	// Write lock for the LRU bump; re-check in case of a racing evict.
	shard.mu.Lock()
	entry, ok := shard.entries[key]
	if !ok {
		shard.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}
	shard.lru.moveToFront(entry.node)
	data := entry.data
	shard.mu.Unlock()

	c.hits.Add(1)
	return data, true
}

func (c *byteCache) set(key string, data []byte) {
	if len(data) > c.shardBudget {
		return
	}
	shard := c.shard(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if existing, ok := shard.entries[key]; ok {
		shard.bytes += len(data) - len(existing.data)
		existing.data = data
		shard.lru.moveToFront(existing.node)
	} else {
		node := shard.lru.pushFront(key)
		shard.entries[key] = &cacheEntry{data: data, node: node}
		shard.bytes += len(data)
	}

	for shard.bytes > c.shardBudget {
		oldest, ok := shard.lru.removeOldest()
		if !ok {
			break
		}
		shard.bytes -= len(shard.entries[oldest].data)
		delete(shard.entries, oldest)
		c.evictions.Add(1)
	}
}

func (c *byteCache) delete(key string) bool {
	shard := c.shard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry, ok := shard.entries[key]
	if !ok {
		return false
	}
	shard.lru.remove(entry.node)
	shard.bytes -= len(entry.data)
	delete(shard.entries, key)
	return true
}

func (c *byteCache) clear() {
	for _, shard := range c.shards {
		shard.mu.Lock()
		shard.entries = make(map[string]*cacheEntry)
		shard.lru.clear()
		shard.bytes = 0
		shard.mu.Unlock()
	}
}

func (c *byteCache) size() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.RLock()
		total += shard.bytes
		shard.mu.RUnlock()
	}
	return total
}

func (c *byteCache) len() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.RLock()
		total += len(shard.entries)
		shard.mu.RUnlock()
	}
	return total
}

// CacheStats is a snapshot of the byte cache counters.
type CacheStats struct {
	// Entries is the current number of cached resources.
	Entries int
	// Bytes is the total cached payload size.
	Bytes int
	// Budget is the configured total byte budget.
	Budget int
	// Hits and Misses count lookups since the Store was created.
	Hits   uint64
	Misses uint64
	// Evictions counts entries dropped to stay under the budget.
	Evictions uint64
}

func (c *byteCache) stats() CacheStats {
	return CacheStats{
		Entries:   c.len(),
		Bytes:     c.size(),
		Budget:    c.shardBudget * shardCount,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// lruNode is a node in a doubly-linked LRU list. The node stores its
// key for O(1) deletion from the parent map.
type lruNode struct {
	key  string
	prev *lruNode
	next *lruNode
}

// lruList is a doubly-linked list for LRU eviction: head is most
// recently used, tail least. Not thread-safe; the owning shard locks.
type lruList struct {
	head *lruNode
	tail *lruNode
}

func newLRUList() *lruList { return &lruList{} }

func (l *lruList) pushFront(key string) *lruNode {
	node := &lruNode{key: key}
	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}
	return node
}

func (l *lruList) moveToFront(node *lruNode) {
	if node == nil || node == l.head {
		return
	}
	l.unlink(node)
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
}

func (l *lruList) remove(node *lruNode) {
	if node != nil {
		l.unlink(node)
	}
}

func (l *lruList) removeOldest() (string, bool) {
	if l.tail == nil {
		return "", false
	}
	node := l.tail
	l.unlink(node)
	return node.key, true
}

func (l *lruList) clear() {
	l.head = nil
	l.tail = nil
}

func (l *lruList) unlink(node *lruNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
}
