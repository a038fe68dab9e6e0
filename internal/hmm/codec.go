package hmm

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/rcliao/hmmcount/internal/corpus"
	"github.com/rcliao/hmmcount/internal/model"
)

// Record kinds in the counts format.
const (
	wordTagKind = "WORDTAG"
	gramSuffix  = "-GRAM"
)

// defaultReadOrder is the order counts are reset to before a read.
const defaultReadOrder = 3

// Write serializes the counts to w, one record per line:
//
//	<count> WORDTAG <tag> <word>
//	<count> <K>-GRAM <tag_1> ... <tag_K>
//
// Emissions come first, sorted by tag then word, followed by the n-gram
// tables of the requested orders (all orders when none are given), each
// sorted by key. A word is always the remainder of its line, so words
// containing single spaces are written verbatim.
func (c *Counts) Write(w io.Writer, orders ...int) error {
	if len(orders) == 0 {
		for k := 1; k <= c.N; k++ {
			orders = append(orders, k)
		}
	}
	for _, k := range orders {
		if k < 1 || k > len(c.NGrams) {
			return fmt.Errorf("%w: cannot write order %d of a %d-gram model", ErrInvalidOrder, k, c.N)
		}
	}

	bw := bufio.NewWriter(w)

	emissions := slices.SortedFunc(maps.Keys(c.Emissions), func(a, b model.Emission) int {
		return cmp.Or(cmp.Compare(a.Tag, b.Tag), cmp.Compare(a.Word, b.Word))
	})
	for _, e := range emissions {
		if _, err := fmt.Fprintf(bw, "%s %s %s %s\n", formatCount(c.Emissions[e]), wordTagKind, e.Tag, e.Word); err != nil {
			return fmt.Errorf("write emission: %w", err)
		}
	}

	for _, k := range orders {
		table := c.NGrams[k-1]
		for _, key := range slices.Sorted(maps.Keys(table)) {
			if _, err := fmt.Fprintf(bw, "%s %d%s %s\n", formatCount(table[key]), k, gramSuffix, key); err != nil {
				return fmt.Errorf("write %d-gram: %w", k, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush counts: %w", err)
	}
	return nil
}

// formatCount writes integral counts without a fraction.
func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ReadCounts builds counts from records written by Write. The model starts
// at order 3 and grows when a higher-order record is read. Blank lines are
// skipped; any other line that is not a valid record fails the whole read.
func ReadCounts(r io.Reader) (*Counts, error) {
	c := newCounts(defaultReadOrder)

	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for lines.Scan() {
		line++
		text := strings.TrimRight(lines.Text(), "\r")
		text = strings.TrimLeftFunc(text, unicode.IsSpace)
		if strings.TrimSpace(text) == "" {
			continue
		}
		if err := c.readRecord(text); err != nil {
			return nil, &corpus.LineError{Line: line, Err: err}
		}
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("read counts: %w", err)
	}
	return c, nil
}

func (c *Counts) readRecord(text string) error {
	parts := strings.SplitN(text, " ", 3)
	if len(parts) < 3 {
		return fmt.Errorf("%w: %q", ErrMalformedCountRecord, text)
	}

	count, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || count < 0 || math.IsNaN(count) || math.IsInf(count, 0) {
		return fmt.Errorf("%w: bad count %q", ErrMalformedCountRecord, parts[0])
	}

	switch kind := parts[1]; {
	case kind == wordTagKind:
		tag, word, ok := strings.Cut(parts[2], " ")
		if !ok || tag == "" || word == "" {
			return fmt.Errorf("%w: WORDTAG needs a tag and a word: %q", ErrMalformedCountRecord, text)
		}
		c.Emissions[model.Emission{Word: word, Tag: tag}] = count
		c.Tags[tag] = struct{}{}

	case strings.HasSuffix(kind, gramSuffix):
		k, err := strconv.Atoi(strings.TrimSuffix(kind, gramSuffix))
		if err != nil || k < 1 {
			return fmt.Errorf("%w: bad order in %q", ErrMalformedCountRecord, kind)
		}
		tags := strings.Split(strings.TrimSpace(parts[2]), " ")
		if len(tags) != k || slices.Contains(tags, "") {
			return fmt.Errorf("%w: %s declares %d tags, found %q", ErrMalformedCountRecord, kind, k, parts[2])
		}
		c.grow(k)
		c.NGrams[k-1][model.NewTagKey(tags...)] = count

	default:
		return fmt.Errorf("%w: unknown record kind %q", ErrMalformedCountRecord, kind)
	}
	return nil
}
