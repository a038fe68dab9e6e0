package hmm

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/rcliao/hmmcount/internal/corpus"
)

const (
	DefaultRareThreshold = 5.0
	DefaultPlaceholder   = "_RARE_"
)

type rareOptions struct {
	threshold   float64
	placeholder string
	log         zerolog.Logger
}

// RareOption configures rare-word relabeling.
type RareOption func(*rareOptions)

// WithThreshold sets the total count below which a word is rare.
func WithThreshold(t float64) RareOption {
	return func(o *rareOptions) {
		o.threshold = t
	}
}

// WithPlaceholder sets the word that replaces rare words.
func WithPlaceholder(p string) RareOption {
	return func(o *rareOptions) {
		o.placeholder = p
	}
}

// WithRareLogger routes relabeling and retraining logs to log.
func WithRareLogger(log zerolog.Logger) RareOption {
	return func(o *rareOptions) {
		o.log = log
	}
}

func newRareOptions(opts []RareOption) rareOptions {
	o := rareOptions{
		threshold:   DefaultRareThreshold,
		placeholder: DefaultPlaceholder,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WordCounts sums emission counts per word across all tags.
func (c *Counts) WordCounts() map[string]float64 {
	words := make(map[string]float64)
	for e, n := range c.Emissions {
		words[e.Word] += n
	}
	return words
}

// RareWords returns the words whose total count is below threshold.
func (c *Counts) RareWords(threshold float64) map[string]struct{} {
	rare := make(map[string]struct{})
	for w, n := range c.WordCounts() {
		if n < threshold {
			rare[w] = struct{}{}
		}
	}
	return rare
}

// FilterRare returns the corpus in r with the words that are rare under c
// replaced by the placeholder.
func FilterRare(c *Counts, r io.Reader, opts ...RareOption) io.Reader {
	o := newRareOptions(opts)
	rare := c.RareWords(o.threshold)
	o.log.Info().
		Int("rare_words", len(rare)).
		Float64("threshold", o.threshold).
		Str("placeholder", o.placeholder).
		Msg("relabeling rare words")
	return corpus.Relabel(r, rare, o.placeholder)
}

// RetrainRare re-reads the original corpus in r with rare words relabeled
// and counts it into fresh counts of the same order as c.
func RetrainRare(c *Counts, r io.Reader, opts ...RareOption) (*TrainResult, error) {
	o := newRareOptions(opts)
	return Train(FilterRare(c, r, opts...), c.N, WithLogger(o.log))
}
