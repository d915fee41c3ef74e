package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, 2.5, Mean([]float64{2, 3}))
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{3}, 3},
		{"odd count", []float64{5, 1, 3}, 3},
		{"even count averages the middle pair", []float64{1, 3, 5, 7}, 4},
		{"unsorted input", []float64{7, 1, 5, 3}, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Median(tc.values))
		})
	}
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{"perfect positive", []float64{10, 20}, []float64{2, 4}, 1},
		{"perfect negative", []float64{1, 2, 3}, []float64{6, 4, 2}, -1},
		{"empty", nil, nil, 0},
		{"mismatched lengths", []float64{1, 2}, []float64{1}, 0},
		{"zero variance in x", []float64{5, 5, 5}, []float64{1, 2, 3}, 0},
		{"zero variance in y", []float64{1, 2, 3}, []float64{4, 4, 4}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Pearson(tc.x, tc.y), 1e-9)
		})
	}
}

func TestCounterTieBreakIsFirstSeen(t *testing.T) {
	c := NewCounter()
	c.Add("salt")
	c.Add("sugar")
	c.Add("salt")
	c.Add("flour")
	c.Add("sugar")

	// salt and sugar tie on 2; salt was seen first
	entries := c.Entries()
	assert.Equal(t, []Entry{
		{Key: "salt", Count: 2},
		{Key: "sugar", Count: 2},
		{Key: "flour", Count: 1},
	}, entries)

	assert.Equal(t, []Entry{{Key: "salt", Count: 2}}, c.Top(1))
	assert.Len(t, c.Top(10), 3)
}

func TestCounterAddN(t *testing.T) {
	c := NewCounter()
	c.AddN("views", 3)
	c.Add("views")

	assert.Equal(t, 4, c.Count("views"))
	assert.Equal(t, 0, c.Count("likes"))
	assert.Equal(t, 1, c.Len())
}
