package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/hmmcount/internal/corpus"
	"github.com/rcliao/hmmcount/internal/hmm"
)

func TestParseOrders(t *testing.T) {
	orders, err := parseOrders(" 1, 3 ,,2")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2}, orders)

	orders, err = parseOrders("")
	require.NoError(t, err)
	assert.Nil(t, orders)

	_, err = parseOrders("1,two")
	assert.Error(t, err)
}

func TestTrainCounts_RareKeepsWarningsFromBothPasses(t *testing.T) {
	text := "a X\n\n\nb Y\n"

	res, warnings, err := trainCounts(strings.NewReader(text), 3, false, nil)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], corpus.ErrEmptySentenceBoundary)
	assert.Equal(t, 1.0, res.Counts.EmissionCount("a", "X"))

	res, warnings, err = trainCounts(strings.NewReader(text), 3, true, nil)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.ErrorIs(t, w, corpus.ErrEmptySentenceBoundary)
	}
	assert.Equal(t, 1.0, res.Counts.EmissionCount(hmm.DefaultPlaceholder, "X"))
}

func TestCountStats(t *testing.T) {
	res, err := hmm.Train(strings.NewReader("Protein I-GENE\n\np53 I-GENE\nis O\n"), 3)
	require.NoError(t, err)

	st := countStats(res.Counts)
	assert.Equal(t, 3, st.Order)
	assert.Equal(t, []string{"I-GENE", "O"}, st.Tags)
	assert.Equal(t, 3, st.Emissions)
	assert.Equal(t, 3, st.Words)
	require.Len(t, st.Tables, 3)
	assert.Equal(t, orderStats{Order: 1, Entries: 2, Total: 3}, st.Tables[0])
	assert.Empty(t, st.Unbalanced)
	assert.Empty(t, st.Undefined)
}

func TestCountStats_FlagsInconsistentTables(t *testing.T) {
	c, err := hmm.ReadCounts(strings.NewReader("1 WORDTAG X a\n3 1-GRAM X\n1 WORDTAG Y b\n"))
	require.NoError(t, err)

	st := countStats(c)
	assert.Contains(t, st.Undefined, "undefined parameter")

	c.NGrams[0]["Y"] = 1
	st = countStats(c)
	assert.Empty(t, st.Undefined)
	assert.InDelta(t, 1.0/3, st.Unbalanced["X"], 1e-12)
	assert.NotContains(t, st.Unbalanced, "Y")
}
