package hmm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/hmmcount/internal/corpus"
	"github.com/rcliao/hmmcount/internal/model"
)

func TestWrite_Golden(t *testing.T) {
	c := train(t, geneCorpus, 3)

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, 1, 2, 3))

	want := `1 WORDTAG I-GENE Protein
1 WORDTAG I-GENE p53
1 WORDTAG O is
2 1-GRAM I-GENE
1 1-GRAM O
2 2-GRAM * *
2 2-GRAM * I-GENE
1 2-GRAM I-GENE O
1 2-GRAM I-GENE STOP
1 2-GRAM O STOP
2 3-GRAM * * I-GENE
1 3-GRAM * I-GENE O
1 3-GRAM * I-GENE STOP
1 3-GRAM I-GENE O STOP
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("counts file mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_Deterministic(t *testing.T) {
	c := train(t, "a X\nb Y\nc Z\n\nd X\ne Y\n", 3)
	var first, second bytes.Buffer
	require.NoError(t, c.Write(&first))
	require.NoError(t, c.Write(&second))
	assert.Equal(t, first.String(), second.String())
}

func TestWrite_SubsetOfOrders(t *testing.T) {
	c := train(t, geneCorpus, 3)
	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, 2))
	assert.NotContains(t, buf.String(), "1-GRAM")
	assert.NotContains(t, buf.String(), "3-GRAM")
	assert.Contains(t, buf.String(), "2 2-GRAM * *\n")
}

func TestWrite_InvalidOrder(t *testing.T) {
	c := train(t, geneCorpus, 3)
	assert.ErrorIs(t, c.Write(&bytes.Buffer{}, 4), ErrInvalidOrder)
	assert.ErrorIs(t, c.Write(&bytes.Buffer{}, 0), ErrInvalidOrder)
}

func TestRoundTrip(t *testing.T) {
	original := train(t, geneCorpus, 3)

	var buf bytes.Buffer
	require.NoError(t, original.Write(&buf, 1, 2, 3))

	loaded, err := ReadCounts(&buf)
	require.NoError(t, err)
	assert.True(t, original.Equal(loaded))
	if diff := cmp.Diff(original.NGrams, loaded.NGrams); diff != "" {
		t.Errorf("tables differ after round trip (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_MultiWordWords(t *testing.T) {
	original := train(t, "New York LOC\nis O\n\nSan  Jose LOC\n", 3)
	require.Equal(t, 1.0, original.EmissionCount("New York", "LOC"))
	require.Equal(t, 1.0, original.EmissionCount("San  Jose", "LOC"))

	var buf bytes.Buffer
	require.NoError(t, original.Write(&buf))
	loaded, err := ReadCounts(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(original.Emissions, loaded.Emissions); diff != "" {
		t.Errorf("emissions differ (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_CRLFCorpus(t *testing.T) {
	c := train(t, "Protein I-GENE\r\nis O\r\n\r\nNew  York LOC\r\n", 3)
	assert.Equal(t, 1.0, c.EmissionCount("Protein", "I-GENE"))

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))
	loaded, err := ReadCounts(&buf)
	require.NoError(t, err)
	assert.True(t, c.Equal(loaded))
}

func TestTrain_RejectsCarriageReturnInWord(t *testing.T) {
	_, err := Train(strings.NewReader("a\r X\n"), 3)
	require.ErrorIs(t, err, corpus.ErrMalformedLine)

	var le *corpus.LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 1, le.Line)
}

func TestRoundTrip_HigherOrderGrows(t *testing.T) {
	original := train(t, "a X\nb Y\nc Z\n", 4)
	var buf bytes.Buffer
	require.NoError(t, original.Write(&buf))

	loaded, err := ReadCounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.N)
	assert.True(t, original.Equal(loaded))
}

func TestReadCounts_BigramModelResetsToThree(t *testing.T) {
	original := train(t, geneCorpus, 2)
	var buf bytes.Buffer
	require.NoError(t, original.Write(&buf))

	loaded, err := ReadCounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.N)
	assert.Empty(t, loaded.NGrams[2])
	assert.Equal(t, original.NGrams[:2], loaded.NGrams[:2])
}

func TestReadCounts_InterleavedAndFractional(t *testing.T) {
	in := "2.5 2-GRAM * A\n\n1 WORDTAG A x\n0.5 1-GRAM A\r\n3 WORDTAG B y\n"
	c, err := ReadCounts(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 2.5, c.Count("*", "A"))
	assert.Equal(t, 0.5, c.Count("A"))
	assert.Equal(t, 3.0, c.EmissionCount("y", "B"))
	assert.Equal(t, []string{"A", "B"}, c.SortedTags())

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf, 1, 2))
	assert.Contains(t, buf.String(), "2.5 2-GRAM * A\n")
	assert.Contains(t, buf.String(), "0.5 1-GRAM A\n")
}

func TestReadCounts_Malformed(t *testing.T) {
	bad := []string{
		"x WORDTAG A word",
		"-1 1-GRAM A",
		"NaN 1-GRAM A",
		"1 WORDTAG A",
		"1 2-GRAM A",
		"1 2-GRAM A B C",
		"1 0-GRAM A",
		"1 X-GRAM A",
		"1 TRIGRAM A B C",
		"1",
	}
	for _, line := range bad {
		_, err := ReadCounts(strings.NewReader("1 1-GRAM O\n" + line + "\n"))
		if !errors.Is(err, ErrMalformedCountRecord) {
			t.Errorf("%q: expected ErrMalformedCountRecord, got %v", line, err)
			continue
		}
		var lerr *corpus.LineError
		if !errors.As(err, &lerr) || lerr.Line != 2 {
			t.Errorf("%q: expected line 2, got %v", line, err)
		}
	}
}

func TestReadCounts_Empty(t *testing.T) {
	c, err := ReadCounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 3, c.N)
	assert.Empty(t, c.Emissions)
	assert.Equal(t, map[model.TagKey]float64{}, c.NGrams[0])
}
