package hmm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/hmmcount/internal/model"
)

func TestEmissionProbability(t *testing.T) {
	c := train(t, geneCorpus, 3)

	p, err := c.EmissionProbability("Protein", "I-GENE")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)

	p, err = c.EmissionProbability("is", "O")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p, 1e-12)

	p, err = c.EmissionProbability("unseen", "O")
	require.NoError(t, err)
	assert.Zero(t, p)
}

func TestEmissionProbability_UndefinedParameter(t *testing.T) {
	c := train(t, geneCorpus, 3)
	_, err := c.EmissionProbability("Protein", "B-GENE")
	assert.ErrorIs(t, err, ErrUndefinedParameter)

	// Emissions without unigram records: the model is incompletely loaded.
	loaded, err := ReadCounts(strings.NewReader("3 WORDTAG O the\n"))
	require.NoError(t, err)
	_, err = loaded.EmissionProbability("the", "O")
	assert.ErrorIs(t, err, ErrUndefinedParameter)

	_, err = loaded.EmissionParameters()
	assert.ErrorIs(t, err, ErrUndefinedParameter)
}

func TestEmissionParameters(t *testing.T) {
	c := train(t, geneCorpus, 3)
	params, err := c.EmissionParameters()
	require.NoError(t, err)

	assert.Len(t, params, 3)
	assert.InDelta(t, 0.5, params[model.Emission{Word: "p53", Tag: "I-GENE"}], 1e-12)
}

func TestTagMass_SumsToOne(t *testing.T) {
	c := train(t, "a X\nb X\nc Y\n\na X\nd Y\ne Y\n\nb X\nb Z\n", 3)
	mass, err := c.TagMass()
	require.NoError(t, err)

	require.Len(t, mass, 3)
	for tag, m := range mass {
		assert.InDelta(t, 1.0, m, 1e-9, "tag %s", tag)
	}
}

func TestTagMass_DetectsInconsistentCounts(t *testing.T) {
	in := "1 WORDTAG X a\n1 WORDTAG X b\n4 1-GRAM X\n"
	c, err := ReadCounts(strings.NewReader(in))
	require.NoError(t, err)

	mass, err := c.TagMass()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, mass["X"], 1e-12)
}
