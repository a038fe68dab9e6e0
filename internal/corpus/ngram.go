package corpus

import (
	"fmt"
	"iter"

	"github.com/rcliao/hmmcount/internal/model"
)

// Pad returns s with n-1 start sentinels in front and one STOP at the end.
func Pad(s model.Sentence, n int) []model.Token {
	padded := make([]model.Token, 0, len(s)+n)
	for i := 0; i < n-1; i++ {
		padded = append(padded, model.Start())
	}
	padded = append(padded, s...)
	return append(padded, model.Stop())
}

// NGrams yields every n-wide window over the padded sentence, left to
// right. A sentence of length L yields L+1 windows. The windows share
// backing storage and must not be modified.
func NGrams(s model.Sentence, n int) iter.Seq[model.NGram] {
	if n < 2 {
		panic(fmt.Sprintf("corpus: n-gram order must be >= 2, got %d", n))
	}
	return func(yield func(model.NGram) bool) {
		padded := Pad(s, n)
		for i := 0; i+n <= len(padded); i++ {
			if !yield(model.NGram(padded[i : i+n : i+n])) {
				return
			}
		}
	}
}

// Windows drives sc to completion, yielding the n-grams of each sentence in
// turn. No window spans two sentences. Check sc.Err and sc.Warning after
// the loop.
func Windows(sc *Scanner, n int) iter.Seq[model.NGram] {
	return func(yield func(model.NGram) bool) {
		for sc.Scan() {
			for g := range NGrams(sc.Sentence(), n) {
				if !yield(g) {
					return
				}
			}
		}
	}
}
