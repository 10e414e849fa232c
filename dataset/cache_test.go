package dataset

import "testing"

func TestSnpCacheBudget(t *testing.T) {
	// 4 training samples at 8 bytes each: a 64-byte budget fits exactly
	// two columns.
	c := newSnpCache(4, 10, 64)
	if c.maxEntries != 2 {
		t.Fatalf("maxEntries = %d, want 2", c.maxEntries)
	}

	c.put(0, []float64{0, 1, 2, 3})
	c.put(1, []float64{4, 5, 6, 7})
	c.put(2, []float64{8, 9, 10, 11})

	if c.len() != 2 {
		t.Fatalf("len = %d, want 2 after eviction", c.len())
	}
	if _, ok := c.get(0); ok {
		t.Error("oldest entry survived eviction")
	}
	if _, ok := c.get(2); !ok {
		t.Error("newest entry missing")
	}
}

func TestSnpCacheOneEntryPerMarker(t *testing.T) {
	c := newSnpCache(4, 10, 1<<20)
	col := []float64{1, 2, 3, 4}
	c.put(5, col)
	c.put(5, []float64{9, 9, 9, 9})

	if c.len() != 1 {
		t.Fatalf("len = %d, want 1", c.len())
	}
	got, _ := c.get(5)
	if &got[0] != &col[0] {
		t.Error("second put for the same marker replaced the entry")
	}
}

func TestSnpCacheCapByMarkerCount(t *testing.T) {
	c := newSnpCache(4, 3, 1<<30)
	if c.maxEntries != 3 {
		t.Fatalf("maxEntries = %d, want cap at nsnps = 3", c.maxEntries)
	}
}

func TestSnpCacheInvalidateAll(t *testing.T) {
	c := newSnpCache(4, 10, 1<<20)
	c.put(0, []float64{1, 2, 3, 4})
	c.put(1, []float64{5, 6, 7, 8})
	c.invalidateAll()

	if c.len() != 0 {
		t.Fatalf("len = %d after invalidateAll", c.len())
	}
	if _, ok := c.get(0); ok {
		t.Error("entry survived invalidateAll")
	}

	// Still usable afterwards.
	c.put(2, []float64{1, 1, 1, 1})
	if _, ok := c.get(2); !ok {
		t.Error("cache unusable after invalidateAll")
	}
}

func TestSnpCacheTinyBudget(t *testing.T) {
	// A budget below one column still caches a single entry.
	c := newSnpCache(1000, 10, 8)
	if c.maxEntries != 1 {
		t.Fatalf("maxEntries = %d, want 1", c.maxEntries)
	}
}
