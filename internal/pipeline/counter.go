package pipeline

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/cquispe/portfolio-agent/internal/domain/catalog"
)

// counter tallies string frequencies while remembering first-seen order so
// ties rank deterministically.
type counter struct {
	counts map[string]int
	seen   []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.seen = append(c.seen, key)
	}
	c.counts[key]++
}

func (c *counter) addAll(keys []string) {
	for _, key := range keys {
		c.add(key)
	}
}

// mostCommon returns the entries ordered by descending count, first-seen
// order breaking ties. n <= 0 means all entries.
func (c *counter) mostCommon(n int) *catalog.Counts {
	keys := make([]string, len(c.seen))
	copy(keys, c.seen)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})

	if n > 0 && n < len(keys) {
		keys = keys[:n]
	}

	out := orderedmap.New[string, int]()
	for _, key := range keys {
		out.Set(key, c.counts[key])
	}
	return out
}
