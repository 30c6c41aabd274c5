package chart

import (
	"container/list"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sync"
	"time"
)

// Cache holds rendered chart bytes keyed by CacheKey. Entries are dropped
// once they outlive the TTL or when the least recently used chart has to
// make room for a new one. A TTL of zero or less keeps entries until they
// are evicted.
type Cache struct {
	mu       sync.Mutex
	lru      *list.List // front = most recently used
	byKey    map[string]*list.Element
	capacity int
	ttl      time.Duration
	now      func() time.Time

	hits, misses, expired, evicted int64
}

type cachedChart struct {
	key     string
	data    []byte
	expires time.Time
}

// CacheStats reports chart cache usage.
type CacheStats struct {
	Entries    int     `json:"entries"`
	MaxEntries int     `json:"max_entries"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	Expired    int64   `json:"expired"`
	Evicted    int64   `json:"evicted"`
	HitRate    float64 `json:"hit_rate"`
}

// NewCache returns a Cache holding at most maxEntries charts. A
// non-positive maxEntries disables caching.
func NewCache(maxEntries int, ttl time.Duration) *Cache {
	return &Cache{
		lru:      list.New(),
		byKey:    make(map[string]*list.Element),
		capacity: maxEntries,
		ttl:      ttl,
		now:      time.Now,
	}
}

// CacheKey identifies a chart by everything that affects its bytes. List
// lengths are hashed ahead of their elements so a request can never share
// a byte stream with one holding a different number of points or codes.
func CacheKey(req Request) string {
	h := sha256.New()
	var buf [8]byte
	putUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	putString := func(s string) {
		putUint(uint64(len(s)))
		h.Write([]byte(s))
	}

	putString(string(req.Mode))
	putString(req.Format)

	putUint(uint64(len(req.Points)))
	for _, p := range req.Points {
		putUint(math.Float64bits(p.Qtn))
		putUint(math.Float64bits(p.Rf))
	}

	// Unlabelled charts (nil codes) and charts with zero codes render alike.
	putUint(uint64(len(req.Codes)))
	for _, c := range req.Codes {
		putUint(uint64(c))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached chart for key, or nil when it is missing or stale.
func (c *Cache) Get(key string) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.byKey[key]
	if !ok {
		c.misses++
		return nil
	}
	entry := el.Value.(*cachedChart)
	if c.stale(entry) {
		c.remove(el)
		c.expired++
		c.misses++
		return nil
	}
	c.lru.MoveToFront(el)
	c.hits++
	return entry.data
}

// Put stores a rendered chart. Stale charts are swept before the least
// recently used one is evicted to make room.
func (c *Cache) Put(key string, data []byte) {
	if c.capacity <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var expires time.Time
	if c.ttl > 0 {
		expires = c.now().Add(c.ttl)
	}

	if el, ok := c.byKey[key]; ok {
		entry := el.Value.(*cachedChart)
		entry.data = data
		entry.expires = expires
		c.lru.MoveToFront(el)
		return
	}

	if c.lru.Len() >= c.capacity {
		c.sweep()
	}
	for c.lru.Len() >= c.capacity {
		c.remove(c.lru.Back())
		c.evicted++
	}

	c.byKey[key] = c.lru.PushFront(&cachedChart{key: key, data: data, expires: expires})
}

// Stats returns a snapshot of cache usage.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := CacheStats{
		Entries:    c.lru.Len(),
		MaxEntries: c.capacity,
		Hits:       c.hits,
		Misses:     c.misses,
		Expired:    c.expired,
		Evicted:    c.evicted,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

func (c *Cache) stale(entry *cachedChart) bool {
	return !entry.expires.IsZero() && !c.now().Before(entry.expires)
}

// sweep drops every stale chart. Callers hold mu.
func (c *Cache) sweep() {
	for el := c.lru.Back(); el != nil; {
		prev := el.Prev()
		if c.stale(el.Value.(*cachedChart)) {
			c.remove(el)
			c.expired++
		}
		el = prev
	}
}

func (c *Cache) remove(el *list.Element) {
	entry := c.lru.Remove(el).(*cachedChart)
	delete(c.byKey, entry.key)
}
