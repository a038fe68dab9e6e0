package corpus

import (
	"bufio"
	"io"
)

// Relabel returns a reader over the corpus in r with every word found in
// rare replaced by placeholder. Tags and sentence boundaries are kept.
// Lines are re-emitted in normalized "word tag" form. A malformed line
// surfaces as a *LineError from Read.
func Relabel(r io.Reader, rare map[string]struct{}, placeholder string) io.Reader {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &relabelReader{
		lines:       lines,
		rare:        rare,
		placeholder: placeholder,
	}
}

type relabelReader struct {
	lines       *bufio.Scanner
	rare        map[string]struct{}
	placeholder string
	line        int
	pending     []byte
	err         error
}

func (r *relabelReader) Read(p []byte) (int, error) {
	for len(r.pending) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		if !r.lines.Scan() {
			r.err = r.lines.Err()
			if r.err == nil {
				r.err = io.EOF
			}
			continue
		}
		r.line++
		r.pending = r.relabel(r.lines.Text())
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

func (r *relabelReader) relabel(line string) []byte {
	tok, ok, err := ParseLine(line)
	if err != nil {
		r.err = &LineError{Line: r.line, Err: err}
		return nil
	}
	if !ok {
		return []byte{'\n'}
	}
	if _, found := r.rare[tok.Word]; found {
		tok.Word = r.placeholder
	}
	return []byte(tok.String() + "\n")
}
