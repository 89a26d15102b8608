package quiz

import (
	"testing"
	"time"
)

func TestCache_TTLBoundary(t *testing.T) {
	now := time.Unix(1000, 0)
	c := NewCacheWithClock(func() time.Time { return now })

	questions := []Question{{Question: "Q?", Options: []string{"A", "B"}, Answer: "A"}}
	c.Put("General", 5, questions, DefaultTTL)

	now = now.Add(299 * time.Second)
	if _, ok := c.Get("General", 5); !ok {
		t.Error("entry should still be fresh at 299s")
	}

	now = now.Add(1 * time.Second)
	if _, ok := c.Get("General", 5); ok {
		t.Error("entry aged exactly TTL should be expired")
	}
}

func TestCache_KeyIncludesCount(t *testing.T) {
	c := NewCache()
	c.Put("General", 5, []Question{{Question: "Q?"}}, DefaultTTL)

	if _, ok := c.Get("General", 10); ok {
		t.Error("different count should miss")
	}
	if _, ok := c.Get("Cardiac", 5); ok {
		t.Error("different topic should miss")
	}
	if _, ok := c.Get("General", 5); !ok {
		t.Error("exact key should hit")
	}
}

func TestCache_EmptyEntryMisses(t *testing.T) {
	c := NewCache()
	c.Put("General", 5, nil, DefaultTTL)

	if _, ok := c.Get("General", 5); ok {
		t.Error("empty cached quiz should never be served")
	}
}

func TestCache_GetReturnsCopy(t *testing.T) {
	c := NewCache()
	c.Put("General", 1, []Question{{Question: "Q?", Answer: "A"}}, DefaultTTL)

	first, _ := c.Get("General", 1)
	first[0].Answer = "mutated"

	second, _ := c.Get("General", 1)
	if second[0].Answer != "A" {
		t.Error("cache entries must not be mutable through Get results")
	}
}
