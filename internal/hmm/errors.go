package hmm

import "errors"

var (
	// ErrInvalidOrder is returned for a model order below 2 or a requested
	// table order outside 1..N.
	ErrInvalidOrder = errors.New("invalid n-gram order")

	// ErrNGramWidth is returned when Observe gets a window of the wrong width.
	ErrNGramWidth = errors.New("n-gram width does not match model order")

	// ErrUndefinedParameter is returned for an emission probability whose
	// tag has no unigram count.
	ErrUndefinedParameter = errors.New("undefined parameter")

	// ErrMalformedCountRecord marks a counts line that matches neither the
	// WORDTAG nor the K-GRAM record shape.
	ErrMalformedCountRecord = errors.New("malformed count record")
)
