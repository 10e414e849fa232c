package dataset

// snpCache holds standardized training-partition SNP columns keyed by
// marker index, bounded by a byte budget. Each entry costs ntrain*8 bytes;
// when the budget is exhausted the oldest entry is evicted (FIFO — the
// eviction order is not load-bearing, only the budget is). The cache is
// rebuilt from scratch whenever the fold changes, so it never holds columns
// from a stale partition. Not safe for concurrent use.
type snpCache struct {
	entries    map[int][]float64
	order      []int
	maxEntries int
}

func newSnpCache(ntrain, nsnps int, memBytes uint64) *snpCache {
	max := nsnps
	if ntrain > 0 {
		byBudget := int(memBytes / uint64(ntrain*8))
		if byBudget < max {
			max = byBudget
		}
	}
	if max < 1 {
		max = 1
	}
	return &snpCache{
		entries:    make(map[int][]float64, max),
		maxEntries: max,
	}
}

func (c *snpCache) get(j int) ([]float64, bool) {
	col, ok := c.entries[j]
	return col, ok
}

func (c *snpCache) put(j int, col []float64) {
	if _, ok := c.entries[j]; ok {
		return
	}
	if len(c.entries) >= c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[j] = col
	c.order = append(c.order, j)
}

func (c *snpCache) invalidateAll() {
	c.entries = make(map[int][]float64, c.maxEntries)
	c.order = c.order[:0]
}

func (c *snpCache) len() int {
	return len(c.entries)
}
