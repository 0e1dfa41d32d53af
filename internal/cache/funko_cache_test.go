package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/madirex/funko-server/internal/core/domain"
)

func newTestCache(maxSize int, ttl time.Duration) *FunkoCache {
	// Long sweep interval: tests trigger Sweep explicitly.
	return New(maxSize, ttl, time.Hour, zerolog.Nop())
}

func freshFunko(name string) domain.Funko {
	return domain.Funko{
		Name:        name,
		Model:       domain.ModelOther,
		Price:       9.99,
		ReleaseDate: domain.NewDate(2023, time.January, 1),
		UpdatedAt:   time.Now(),
	}
}

func TestPutAndGet(t *testing.T) {
	c := newTestCache(15, time.Minute)
	defer c.Shutdown()

	c.Put("1", freshFunko("a"))
	got, ok := c.Get("1")
	if !ok {
		t.Fatalf("expected hit for key 1")
	}
	if got.Name != "a" {
		t.Fatalf("unexpected funko: %+v", got)
	}
}

func TestRemove(t *testing.T) {
	c := newTestCache(15, time.Minute)
	defer c.Shutdown()

	c.Put("2", freshFunko("b"))
	c.Remove("2")
	if _, ok := c.Get("2"); ok {
		t.Fatalf("expected miss after remove")
	}
}

func TestCapacityEvictsLeastRecentlyAccessed(t *testing.T) {
	c := newTestCache(3, time.Minute)
	defer c.Shutdown()

	c.Put("1", freshFunko("a"))
	c.Put("2", freshFunko("b"))
	c.Put("3", freshFunko("c"))

	// Touch "1" so "2" becomes the least recently accessed.
	if _, ok := c.Get("1"); !ok {
		t.Fatalf("expected hit for key 1")
	}

	c.Put("4", freshFunko("d"))

	if _, ok := c.Get("2"); ok {
		t.Fatalf("expected key 2 to be evicted")
	}
	for _, k := range []string{"1", "3", "4"} {
		if _, ok := c.Get(k); !ok {
			t.Fatalf("expected key %s to survive", k)
		}
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", c.Len())
	}
}

func TestPutReplacesWithoutEviction(t *testing.T) {
	c := newTestCache(2, time.Minute)
	defer c.Shutdown()

	c.Put("1", freshFunko("a"))
	c.Put("2", freshFunko("b"))
	c.Put("1", freshFunko("a2"))

	got, ok := c.Get("1")
	if !ok || got.Name != "a2" {
		t.Fatalf("expected replaced value, got %+v ok=%v", got, ok)
	}
	if _, ok := c.Get("2"); !ok {
		t.Fatalf("replace must not evict other keys")
	}
}

func TestSweepRemovesExpiredEntries(t *testing.T) {
	c := newTestCache(15, 90*time.Second)
	defer c.Shutdown()

	old := freshFunko("old")
	old.UpdatedAt = time.Now().Add(-2 * time.Minute)
	c.Put("old", old)
	c.Put("new", freshFunko("new"))

	c.Sweep()

	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after sweep, got %d", c.Len())
	}
	if _, ok := c.Get("old"); ok {
		t.Fatalf("expected expired entry to be gone")
	}
	if _, ok := c.Get("new"); !ok {
		t.Fatalf("expected fresh entry to survive sweep")
	}
}

func TestExpiredEntryIsAbsentBeforeSweep(t *testing.T) {
	c := newTestCache(15, 90*time.Second)
	defer c.Shutdown()

	f := freshFunko("x")
	c.Put("x", f)

	c.now = func() time.Time { return time.Now().Add(3 * time.Minute) }
	if _, ok := c.Get("x"); ok {
		t.Fatalf("logically expired entry must read as absent")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	c := newTestCache(15, time.Minute)
	c.Shutdown()
	c.Shutdown() // must not panic
}

func TestConcurrentAccess(t *testing.T) {
	c := newTestCache(32, time.Minute)
	defer c.Shutdown()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("%d", (n+j)%40)
				c.Put(key, freshFunko(key))
				c.Get(key)
				if j%50 == 0 {
					c.Sweep()
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 32 {
		t.Fatalf("capacity exceeded: %d", c.Len())
	}
}
