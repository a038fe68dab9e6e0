// Package hmm accumulates, persists and reads the count tables of an
// order-N tag HMM and derives emission parameters from them.
package hmm

import (
	"fmt"
	"maps"
	"slices"

	"github.com/rcliao/hmmcount/internal/model"
)

// Counts holds tag n-gram counts for orders 1..N and word/tag emission
// counts. NGrams[k-1] is the order-k table.
type Counts struct {
	N         int
	NGrams    []map[model.TagKey]float64
	Emissions map[model.Emission]float64
	Tags      map[string]struct{}
}

// New returns empty counts for an order-n model.
func New(n int) (*Counts, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: model order must be >= 2, got %d", ErrInvalidOrder, n)
	}
	return newCounts(n), nil
}

func newCounts(n int) *Counts {
	c := &Counts{
		Emissions: make(map[model.Emission]float64),
		Tags:      make(map[string]struct{}),
	}
	c.grow(n)
	return c
}

func (c *Counts) grow(n int) {
	for len(c.NGrams) < n {
		c.NGrams = append(c.NGrams, make(map[model.TagKey]float64))
	}
	if n > c.N {
		c.N = n
	}
}

// Observe counts one n-gram window. Every tag suffix of length 2..N is
// counted. When the window ends on a real token its tag unigram and its
// emission are counted too. The first window of a sentence also counts the
// (N-1)-tuple of start tags once, since no window ends on the last start
// sentinel.
func (c *Counts) Observe(g model.NGram) error {
	if len(g) != c.N {
		return fmt.Errorf("%w: got %d tokens, want %d", ErrNGramWidth, len(g), c.N)
	}

	tags := g.Tags()
	for k := 2; k <= c.N; k++ {
		c.NGrams[k-1][model.NewTagKey(tags[c.N-k:]...)]++
	}

	if last := g.Last(); last.HasWord() {
		c.NGrams[0][model.NewTagKey(last.Tag)]++
		c.Emissions[model.Emission{Word: last.Word, Tag: last.Tag}]++
		c.Tags[last.Tag] = struct{}{}
	}

	if !g[c.N-2].HasWord() {
		c.NGrams[c.N-2][startKey(c.N-1)]++
	}
	return nil
}

func startKey(k int) model.TagKey {
	tags := make([]string, k)
	for i := range tags {
		tags[i] = model.StartTag
	}
	return model.NewTagKey(tags...)
}

// Count returns the count of a tag tuple; the tuple length selects the table.
func (c *Counts) Count(tags ...string) float64 {
	k := len(tags)
	if k < 1 || k > len(c.NGrams) {
		return 0
	}
	return c.NGrams[k-1][model.NewTagKey(tags...)]
}

// EmissionCount returns the count of word emitted by tag.
func (c *Counts) EmissionCount(word, tag string) float64 {
	return c.Emissions[model.Emission{Word: word, Tag: tag}]
}

// SortedTags returns the observed tags in lexical order.
func (c *Counts) SortedTags() []string {
	return slices.Sorted(maps.Keys(c.Tags))
}

// Orders returns the orders whose table has at least one entry.
func (c *Counts) Orders() []int {
	var out []int
	for i, table := range c.NGrams {
		if len(table) > 0 {
			out = append(out, i+1)
		}
	}
	return out
}

// Total returns the sum of the order-k table.
func (c *Counts) Total(k int) float64 {
	if k < 1 || k > len(c.NGrams) {
		return 0
	}
	var sum float64
	for _, v := range c.NGrams[k-1] {
		sum += v
	}
	return sum
}

// Equal reports whether c and o hold the same tables, tag set and order.
func (c *Counts) Equal(o *Counts) bool {
	if c.N != o.N || len(c.NGrams) != len(o.NGrams) {
		return false
	}
	for i := range c.NGrams {
		if !maps.Equal(c.NGrams[i], o.NGrams[i]) {
			return false
		}
	}
	return maps.Equal(c.Emissions, o.Emissions) && maps.Equal(c.Tags, o.Tags)
}
