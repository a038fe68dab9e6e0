package cli

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
)

type emissionParam struct {
	Word        string  `json:"word" yaml:"word"`
	Tag         string  `json:"tag" yaml:"tag"`
	Count       float64 `json:"count" yaml:"count"`
	Probability float64 `json:"probability" yaml:"probability"`
}

func init() {
	emission := &cobra.Command{
		Use:   "emission WORD TAG",
		Short: "Print the emission probability e(WORD|TAG)",
		Args:  cobra.ExactArgs(2),
		Run:   runEmission,
	}
	addCountsFlags(emission)

	params := &cobra.Command{
		Use:   "params",
		Short: "Print every emission probability",
		Run:   runParams,
	}
	addCountsFlags(params)

	RootCmd.AddCommand(emission, params)
}

func runEmission(cmd *cobra.Command, args []string) {
	c := loadCounts(cmd)
	word, tag := args[0], args[1]

	p, err := c.EmissionProbability(word, tag)
	if err != nil {
		exitErr("emission", err)
	}

	param := emissionParam{Word: word, Tag: tag, Count: c.EmissionCount(word, tag), Probability: p}
	render(param, func(w io.Writer) {
		fmt.Fprintf(w, "%g\n", p)
	})
}

func runParams(cmd *cobra.Command, args []string) {
	c := loadCounts(cmd)

	probs, err := c.EmissionParameters()
	if err != nil {
		exitErr("params", err)
	}

	params := make([]emissionParam, 0, len(probs))
	for e, p := range probs {
		params = append(params, emissionParam{Word: e.Word, Tag: e.Tag, Count: c.Emissions[e], Probability: p})
	}
	slices.SortFunc(params, func(a, b emissionParam) int {
		return cmp.Or(cmp.Compare(a.Tag, b.Tag), cmp.Compare(a.Word, b.Word))
	})

	render(params, func(w io.Writer) {
		for _, p := range params {
			fmt.Fprintf(w, "%s %s %g\n", p.Tag, p.Word, p.Probability)
		}
	})
}
