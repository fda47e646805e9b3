package cache

import (
	"sync"
	"testing"
)

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](0)
	calls := 0
	create := func() int { calls++; return 7 }

	if v := c.GetOrCreate("k", create); v != 7 {
		t.Errorf("GetOrCreate = %d, want 7", v)
	}
	if v := c.GetOrCreate("k", create); v != 7 {
		t.Errorf("GetOrCreate = %d, want 7", v)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	if s := c.Stats(); s.Hits != 1 || s.Misses != 1 || s.Len != 1 {
		t.Errorf("Stats() = %+v, want 1 hit, 1 miss, 1 entry", s)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](3)
	value := func(k int) func() int { return func() int { return k } }
	for k := 1; k <= 3; k++ {
		c.GetOrCreate(k, value(k))
	}

	c.GetOrCreate(1, value(1)) // 2 is now the oldest
	c.GetOrCreate(4, value(4))

	if s := c.Stats(); s.Evictions != 1 || s.Len != 3 || s.Capacity != 3 {
		t.Errorf("Stats() = %+v", s)
	}

	misses := c.Stats().Misses
	for _, k := range []int{1, 3, 4} {
		c.GetOrCreate(k, value(k))
	}
	if got := c.Stats().Misses; got != misses {
		t.Errorf("1, 3 and 4 should still be cached: misses %d -> %d", misses, got)
	}
	c.GetOrCreate(2, value(2))
	if got := c.Stats().Misses; got != misses+1 {
		t.Errorf("2 should have been evicted: misses %d -> %d", misses, got)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[int, int](64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				k := (g*500 + i) % 100
				if v := c.GetOrCreate(k, func() int { return k }); v != k {
					t.Errorf("GetOrCreate(%d) = %d", k, v)
				}
			}
		}()
	}
	wg.Wait()

	if s := c.Stats(); s.Len > 64 {
		t.Errorf("Len = %d exceeds capacity", s.Len)
	}
}
