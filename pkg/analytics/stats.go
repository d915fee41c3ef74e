// pkg/analytics/stats.go
package analytics

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of values, 0 for empty input
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the sorted-midpoint median of values, averaging the two
// middle elements for an even count. Empty input yields 0.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Pearson returns the population Pearson correlation coefficient between x
// and y: covariance over the product of standard deviations. Mismatched
// lengths, empty series, or zero variance in either series yield 0.
func Pearson(x, y []float64) float64 {
	if len(x) == 0 || len(x) != len(y) {
		return 0
	}

	meanX := Mean(x)
	meanY := Mean(y)

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}

	return cov / math.Sqrt(varX*varY)
}

// Entry is one key with its occurrence count
type Entry struct {
	Key   string
	Count int
}

// Counter tallies string keys while remembering the order each key was
// first seen. Top uses that order as the tie-break for equal counts, which
// keeps top-k output deterministic.
type Counter struct {
	counts map[string]int
	seen   map[string]int
	seq    int
}

// NewCounter creates an empty Counter
func NewCounter() *Counter {
	return &Counter{
		counts: make(map[string]int),
		seen:   make(map[string]int),
	}
}

// Add increments the count for key
func (c *Counter) Add(key string) {
	c.AddN(key, 1)
}

// AddN increments the count for key by n
func (c *Counter) AddN(key string, n int) {
	if _, ok := c.seen[key]; !ok {
		c.seen[key] = c.seq
		c.seq++
	}
	c.counts[key] += n
}

// Count returns the tally for key
func (c *Counter) Count(key string) int {
	return c.counts[key]
}

// Len returns the number of distinct keys
func (c *Counter) Len() int {
	return len(c.counts)
}

// Entries returns every entry sorted by count descending, ties broken by
// first-seen order
func (c *Counter) Entries() []Entry {
	entries := make([]Entry, 0, len(c.counts))
	for key, count := range c.counts {
		entries = append(entries, Entry{Key: key, Count: count})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return c.seen[entries[i].Key] < c.seen[entries[j].Key]
	})

	return entries
}

// Top returns at most k entries by descending count
func (c *Counter) Top(k int) []Entry {
	entries := c.Entries()
	if len(entries) > k {
		entries = entries[:k]
	}
	return entries
}
