package hmm

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/rcliao/hmmcount/internal/model"
)

// EmissionProbability returns count(word, tag) / count(tag).
func (c *Counts) EmissionProbability(word, tag string) (float64, error) {
	denom := c.Count(tag)
	if denom == 0 {
		return 0, fmt.Errorf("%w: e(%s|%s): tag has no unigram count", ErrUndefinedParameter, word, tag)
	}
	return c.EmissionCount(word, tag) / denom, nil
}

// EmissionParameters returns the probability of every counted emission.
func (c *Counts) EmissionParameters() (map[model.Emission]float64, error) {
	params := make(map[model.Emission]float64, len(c.Emissions))
	for e := range c.Emissions {
		p, err := c.EmissionProbability(e.Word, e.Tag)
		if err != nil {
			return nil, err
		}
		params[e] = p
	}
	return params, nil
}

// TagMass returns, per tag, the emission probabilities summed over every
// word seen with it. A mass away from 1 means the unigram and emission
// tables disagree, e.g. after loading a partial counts file.
func (c *Counts) TagMass() (map[string]float64, error) {
	params, err := c.EmissionParameters()
	if err != nil {
		return nil, err
	}
	byTag := make(map[string][]float64)
	for e, p := range params {
		byTag[e.Tag] = append(byTag[e.Tag], p)
	}
	mass := make(map[string]float64, len(byTag))
	for tag, ps := range byTag {
		mass[tag] = floats.Sum(ps)
	}
	return mass, nil
}
