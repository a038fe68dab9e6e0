package corpus

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestRelabel_ReplacesRareWords(t *testing.T) {
	in := "Protein I-GENE\n\np53 I-GENE\nis O\n\n"
	rare := map[string]struct{}{"Protein": {}, "is": {}}

	out, err := io.ReadAll(Relabel(strings.NewReader(in), rare, "_RARE_"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	want := "_RARE_ I-GENE\n\np53 I-GENE\n_RARE_ O\n\n"
	if string(out) != want {
		t.Errorf("expected %q, got %q", want, string(out))
	}
}

func TestRelabel_KeepsMultiWordAndNormalizes(t *testing.T) {
	in := "  New York LOC  \nvisited O"
	out, err := io.ReadAll(Relabel(strings.NewReader(in), nil, "_RARE_"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(out) != "New York LOC\nvisited O\n" {
		t.Errorf("unexpected output %q", string(out))
	}
}

func TestRelabel_SmallReads(t *testing.T) {
	in := "alpha X\nbeta Y\n"
	rare := map[string]struct{}{"beta": {}}
	r := iotest.OneByteReader(Relabel(strings.NewReader(in), rare, "_R_"))

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(out) != "alpha X\n_R_ Y\n" {
		t.Errorf("unexpected output %q", string(out))
	}
}

func TestRelabel_MalformedLine(t *testing.T) {
	_, err := io.ReadAll(Relabel(strings.NewReader("a X\nbad\n"), nil, "_RARE_"))
	if !errors.Is(err, ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine, got %v", err)
	}
	var lerr *LineError
	if !errors.As(err, &lerr) || lerr.Line != 2 {
		t.Errorf("expected line 2, got %v", err)
	}
}

func TestRelabel_FeedsScanner(t *testing.T) {
	rare := map[string]struct{}{"b": {}}
	sc := NewScanner(Relabel(strings.NewReader("a X\nb Y\n\nb Y\n"), rare, "_RARE_"))

	var words []string
	for sc.Scan() {
		words = append(words, sc.Sentence().Words()...)
	}
	if sc.Err() != nil {
		t.Fatalf("scan: %v", sc.Err())
	}
	if strings.Join(words, ",") != "a,_RARE_,_RARE_" {
		t.Errorf("unexpected words %v", words)
	}
}
