package hmm

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/rcliao/hmmcount/internal/corpus"
)

// TrainResult is the outcome of one counting pass over a corpus.
type TrainResult struct {
	Counts *Counts
	Stats  corpus.Stats
	// Warnings holds diagnostics that ended the pass early, such as
	// corpus.ErrEmptyStream. The counts gathered up to that point are kept.
	Warnings []error
}

type trainOptions struct {
	log zerolog.Logger
}

// TrainOption configures Train.
type TrainOption func(*trainOptions)

// WithLogger routes pipeline diagnostics to log.
func WithLogger(log zerolog.Logger) TrainOption {
	return func(o *trainOptions) {
		o.log = log
	}
}

// Train counts every n-gram of the corpus in r into fresh order-n counts.
// Malformed lines and read failures are returned as errors.
func Train(r io.Reader, n int, opts ...TrainOption) (*TrainResult, error) {
	o := trainOptions{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	c, err := New(n)
	if err != nil {
		return nil, err
	}

	sc := corpus.NewScanner(r, corpus.WithLogger(o.log))
	for g := range corpus.Windows(sc, n) {
		if err := c.Observe(g); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	res := &TrainResult{Counts: c, Stats: sc.Stats()}
	if w := sc.Warning(); w != nil {
		res.Warnings = append(res.Warnings, w)
	}

	o.log.Debug().
		Int("order", n).
		Int("sentences", res.Stats.Sentences).
		Int("tokens", res.Stats.Tokens).
		Int("emissions", len(c.Emissions)).
		Msg("counted corpus")
	return res, nil
}
