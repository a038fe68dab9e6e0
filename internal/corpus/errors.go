package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine marks a non-blank line that does not hold a word and a tag.
	ErrMalformedLine = errors.New("malformed corpus line")

	// ErrEmptyStream is the diagnostic for a corpus with no tokens and no
	// sentence boundaries.
	ErrEmptyStream = errors.New("empty input stream")

	// ErrEmptySentenceBoundary is the diagnostic for a blank line that
	// arrives while no sentence is buffered.
	ErrEmptySentenceBoundary = errors.New("sentence boundary with no buffered tokens")
)

// LineError attaches a 1-based line number to an error.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
