// Package corpus reads word/tag corpora into sentences and n-gram windows.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rcliao/hmmcount/internal/model"
)

const maxLineSize = 1 << 20

// ParseLine parses one corpus line. A blank line is a sentence boundary and
// returns ok == false. Otherwise the last space-delimited field is the tag
// and the preceding fields, re-joined with single spaces, are the word.
// Words may not contain a carriage return.
func ParseLine(line string) (tok model.Token, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.Token{}, false, nil
	}
	fields := strings.Split(line, " ")
	if len(fields) < 2 {
		return model.Token{}, false, fmt.Errorf("%w: %q has no word before its tag", ErrMalformedLine, line)
	}
	last := len(fields) - 1
	word := strings.Join(fields[:last], " ")
	if strings.ContainsRune(word, '\r') {
		return model.Token{}, false, fmt.Errorf("%w: word %q contains a carriage return", ErrMalformedLine, word)
	}
	return model.NewToken(word, fields[last]), true, nil
}

// Stats counts what a Scanner has consumed so far.
type Stats struct {
	Lines      int `json:"lines" yaml:"lines"`
	Tokens     int `json:"tokens" yaml:"tokens"`
	Sentences  int `json:"sentences" yaml:"sentences"`
	Boundaries int `json:"boundaries" yaml:"boundaries"`
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger routes diagnostics to log.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Scanner) {
		s.log = log
	}
}

// Scanner assembles sentences from a corpus stream. Use it like
// bufio.Scanner:
//
//	sc := corpus.NewScanner(r)
//	for sc.Scan() {
//		use(sc.Sentence())
//	}
//	if err := sc.Err(); err != nil { ... }
//
// Warning reports a diagnostic (ErrEmptyStream or ErrEmptySentenceBoundary)
// that ended the sequence without a hard failure.
type Scanner struct {
	lines    *bufio.Scanner
	log      zerolog.Logger
	line     int
	buf      model.Sentence
	sentence model.Sentence
	stats    Stats
	err      error
	warning  error
	done     bool
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader, opts ...Option) *Scanner {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	s := &Scanner{
		lines: lines,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan advances to the next sentence. It returns false at the end of the
// corpus, on a diagnostic, or on an error.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	s.sentence = nil

	for s.lines.Scan() {
		s.line++
		s.stats.Lines++

		tok, ok, err := ParseLine(s.lines.Text())
		if err != nil {
			s.fail(&LineError{Line: s.line, Err: err})
			return false
		}
		if ok {
			s.buf = append(s.buf, tok)
			s.stats.Tokens++
			continue
		}

		s.stats.Boundaries++
		if len(s.buf) == 0 {
			s.warn(&LineError{Line: s.line, Err: ErrEmptySentenceBoundary})
			return false
		}
		s.emit()
		return true
	}

	if err := s.lines.Err(); err != nil {
		s.fail(fmt.Errorf("read corpus: %w", err))
		return false
	}

	s.done = true
	if len(s.buf) > 0 {
		s.emit()
		return true
	}
	if s.stats.Tokens == 0 && s.stats.Boundaries == 0 {
		s.warn(ErrEmptyStream)
	}
	return false
}

// Sentence returns the sentence produced by the last successful Scan.
func (s *Scanner) Sentence() model.Sentence {
	return s.sentence
}

// Err returns the first hard failure, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Warning returns the diagnostic that ended the sequence, if any.
func (s *Scanner) Warning() error {
	return s.warning
}

// Stats returns the running totals.
func (s *Scanner) Stats() Stats {
	return s.stats
}

func (s *Scanner) emit() {
	s.sentence = s.buf
	s.buf = nil
	s.stats.Sentences++
}

func (s *Scanner) fail(err error) {
	s.err = err
	s.done = true
}

func (s *Scanner) warn(err error) {
	s.warning = err
	s.done = true
	s.log.Warn().Err(err).Int("line", s.line).Msg("corpus iteration stopped")
}
