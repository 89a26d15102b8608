package quiz

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTTL is how long a generated quiz is served from cache.
const DefaultTTL = 300 * time.Second

type cacheEntry struct {
	questions []Question
	timestamp time.Time
	ttl       time.Duration
}

// Cache stores generated quizzes keyed by (topic, count). Entries are
// replaced wholesale on expiry and never partially mutated. Safe for
// concurrent use.
type Cache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]cacheEntry
}

// NewCache creates a Cache using wall-clock time.
func NewCache() *Cache {
	return NewCacheWithClock(time.Now)
}

// NewCacheWithClock creates a Cache with an injected clock for tests.
func NewCacheWithClock(now func() time.Time) *Cache {
	return &Cache{
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

func cacheKey(topic string, count int) string {
	return fmt.Sprintf("%s_%d", topic, count)
}

// Get returns the cached quiz for (topic, count) if it is non-empty and
// younger than its TTL.
func (c *Cache) Get(topic string, count int) ([]Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[cacheKey(topic, count)]
	if !ok || len(entry.questions) == 0 {
		return nil, false
	}
	if c.now().Sub(entry.timestamp) >= entry.ttl {
		return nil, false
	}

	out := make([]Question, len(entry.questions))
	copy(out, entry.questions)
	return out, true
}

// Put stores a freshly generated quiz with a new timestamp.
func (c *Cache) Put(topic string, count int, questions []Question, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	cp := make([]Question, len(questions))
	copy(cp, questions)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(topic, count)] = cacheEntry{
		questions: cp,
		timestamp: c.now(),
		ttl:       ttl,
	}
}
