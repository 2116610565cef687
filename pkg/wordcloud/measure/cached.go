package measure

import (
	"container/list"
	"sync"
)

// DefaultCacheCapacity is the entry limit used by [NewCached].
const DefaultCacheCapacity = 50000

type cacheKey struct {
	text string
	size int
}

type entry struct {
	key           cacheKey
	width, height float64
}

// Cached memoizes another Measurer by (text, fontSize) in a bounded LRU table.
//
// A layout pass measures each label once per tried size, and re-running the
// layout (for example after a canvas resize) asks for the same pairs again.
// A long-lived Cached (one per server process) sees an open-ended vocabulary,
// so the least recently used pair is evicted once capacity is reached.
// Cached is safe for concurrent use.
type Cached struct {
	inner    Measurer
	capacity int

	mu        sync.Mutex
	entries   map[cacheKey]*list.Element
	order     *list.List // front is most recently used
	hits      int
	misses    int
	evictions int
}

// NewCached wraps inner with a memo table of [DefaultCacheCapacity] entries.
// A nil inner uses [Estimate].
func NewCached(inner Measurer) *Cached {
	return NewCachedSize(inner, DefaultCacheCapacity)
}

// NewCachedSize is like [NewCached] with an explicit entry limit.
// A capacity <= 0 uses [DefaultCacheCapacity].
func NewCachedSize(inner Measurer, capacity int) *Cached {
	if inner == nil {
		inner = Estimate{}
	}
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cached{
		inner:    inner,
		capacity: capacity,
		entries:  make(map[cacheKey]*list.Element),
		order:    list.New(),
	}
}

// Measure implements [Measurer].
func (c *Cached) Measure(text string, fontSize int) (width, height float64) {
	k := cacheKey{text: text, size: fontSize}

	c.mu.Lock()
	if el, ok := c.entries[k]; ok {
		c.order.MoveToFront(el)
		c.hits++
		e := el.Value.(*entry)
		c.mu.Unlock()
		return e.width, e.height
	}
	c.mu.Unlock()

	// Measured outside the lock; a concurrent miss on the same key finds
	// the entry already stored and only refreshes it.
	w, h := c.inner.Measure(text, fontSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.misses++
	if el, ok := c.entries[k]; ok {
		c.order.MoveToFront(el)
		return w, h
	}
	c.entries[k] = c.order.PushFront(&entry{key: k, width: w, height: h})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
		c.evictions++
	}
	return w, h
}

// Stats returns the number of cache hits and misses so far.
func (c *Cached) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Evictions returns how many entries were dropped to stay within capacity.
func (c *Cached) Evictions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictions
}

// Cap returns the entry limit.
func (c *Cached) Cap() int { return c.capacity }

// Len returns the number of memoized entries.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops all entries and zeroes the counters.
func (c *Cached) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*list.Element)
	c.order.Init()
	c.hits, c.misses, c.evictions = 0, 0, 0
}

var _ Measurer = (*Cached)(nil)
