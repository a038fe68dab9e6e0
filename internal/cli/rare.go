package cli

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/rcliao/hmmcount/internal/hmm"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rare [corpus]",
		Short: "Relabel rare words in a corpus",
		Long: `Print the corpus (file or stdin) with every word whose total count in the
given counts is below --threshold replaced by the placeholder. With --list,
print the rare words instead.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runRare,
	}

	addCountsFlags(cmd)
	cmd.Flags().Float64("threshold", 0, "Rare-word threshold (default: rare.threshold from config)")
	cmd.Flags().String("placeholder", "", "Rare-word placeholder (default: rare.placeholder from config)")
	cmd.Flags().Bool("list", false, "Only list the rare words")

	RootCmd.AddCommand(cmd)
}

func runRare(cmd *cobra.Command, args []string) {
	c := loadCounts(cmd)
	list, _ := cmd.Flags().GetBool("list")

	if list {
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		if !cmd.Flags().Changed("threshold") {
			threshold = cfg.Rare.Threshold
		}
		words := slices.Sorted(maps.Keys(c.RareWords(threshold)))
		render(words, func(w io.Writer) {
			for _, word := range words {
				fmt.Fprintln(w, word)
			}
		})
		return
	}

	source := "-"
	if len(args) > 0 {
		source = args[0]
	}
	in, err := openInput(source)
	if err != nil {
		exitErr("open corpus", err)
	}
	defer in.Close()

	if _, err := io.Copy(os.Stdout, hmm.FilterRare(c, in, rareOptions(cmd)...)); err != nil {
		exitErr("relabel", err)
	}
}
