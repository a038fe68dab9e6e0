package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rcliao/hmmcount/internal/hmm"
)

// massTolerance is how far a tag's emission mass may drift from 1.
const massTolerance = 1e-9

type orderStats struct {
	Order   int     `json:"order" yaml:"order"`
	Entries int     `json:"entries" yaml:"entries"`
	Total   float64 `json:"total" yaml:"total"`
}

type modelStats struct {
	Order      int                `json:"order" yaml:"order"`
	Tags       []string           `json:"tags" yaml:"tags"`
	Tables     []orderStats       `json:"tables" yaml:"tables"`
	Emissions  int                `json:"emissions" yaml:"emissions"`
	Words      int                `json:"words" yaml:"words"`
	Unbalanced map[string]float64 `json:"unbalanced_tags,omitempty" yaml:"unbalanced_tags,omitempty"`
	Undefined  string             `json:"undefined,omitempty" yaml:"undefined,omitempty"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show count table statistics",
		Long:  "Show table sizes for a counts file or snapshot, and flag tags whose emission probabilities do not sum to 1.",
		Run:   runStats,
	}
	addCountsFlags(cmd)

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	c := loadCounts(cmd)
	st := countStats(c)

	render(st, func(w io.Writer) {
		fmt.Fprintf(w, "order:     %d\n", st.Order)
		fmt.Fprintf(w, "tags:      %d\n", len(st.Tags))
		fmt.Fprintf(w, "emissions: %s (%s words)\n",
			humanize.Comma(int64(st.Emissions)), humanize.Comma(int64(st.Words)))
		for _, t := range st.Tables {
			fmt.Fprintf(w, "%d-grams:   %s entries, total %s\n",
				t.Order, humanize.Comma(int64(t.Entries)), humanize.Commaf(t.Total))
		}
		for tag, m := range st.Unbalanced {
			fmt.Fprintf(w, "warning: emission mass of %s is %g\n", tag, m)
		}
		if st.Undefined != "" {
			fmt.Fprintf(w, "warning: %s\n", st.Undefined)
		}
	})
}

func countStats(c *hmm.Counts) modelStats {
	st := modelStats{
		Order:     c.N,
		Tags:      c.SortedTags(),
		Emissions: len(c.Emissions),
		Words:     len(c.WordCounts()),
	}
	for i, table := range c.NGrams {
		st.Tables = append(st.Tables, orderStats{Order: i + 1, Entries: len(table), Total: c.Total(i + 1)})
	}

	mass, err := c.TagMass()
	if err != nil {
		st.Undefined = err.Error()
		return st
	}
	for tag, m := range mass {
		if math.Abs(m-1) > massTolerance {
			if st.Unbalanced == nil {
				st.Unbalanced = make(map[string]float64)
			}
			st.Unbalanced[tag] = m
		}
	}
	return st
}
