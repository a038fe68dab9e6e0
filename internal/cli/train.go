package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/hmmcount/internal/hmm"
	"github.com/rcliao/hmmcount/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "train [corpus]",
		Short: "Count n-grams and emissions in a corpus",
		Long: `Count tag n-grams and word/tag emissions in a corpus file (or stdin)
and write them in the counts format:

  <count> WORDTAG <tag> <word>
  <count> <K>-GRAM <tag_1> ... <tag_K>

With --rare, words seen fewer than --threshold times are replaced by the
placeholder and the corpus is counted again.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runTrain,
	}

	cmd.Flags().IntP("order", "n", 0, "Model order (default: model.order from config)")
	cmd.Flags().String("orders", "", "Comma-separated orders to write (default: model.orders, or all when -n is set)")
	cmd.Flags().StringP("out", "o", "", "Write counts to this file instead of stdout")
	cmd.Flags().Bool("rare", false, "Relabel rare words and count again")
	cmd.Flags().Float64("threshold", 0, "Rare-word threshold (default: rare.threshold from config)")
	cmd.Flags().String("placeholder", "", "Rare-word placeholder (default: rare.placeholder from config)")
	cmd.Flags().String("save", "", "Also store the counts as a snapshot with this name")

	RootCmd.AddCommand(cmd)
}

func runTrain(cmd *cobra.Command, args []string) {
	n, _ := cmd.Flags().GetInt("order")
	if n == 0 {
		n = cfg.Model.Order
	}
	orders := trainOrders(cmd, n)
	rare, _ := cmd.Flags().GetBool("rare")
	saveName, _ := cmd.Flags().GetString("save")
	outPath, _ := cmd.Flags().GetString("out")

	source := "-"
	if len(args) > 0 {
		source = args[0]
	}
	in, err := openInput(source)
	if err != nil {
		exitErr("open corpus", err)
	}
	defer in.Close()

	var ropts []hmm.RareOption
	if rare {
		ropts = rareOptions(cmd)
	}
	res, warnings, err := trainCounts(in, n, rare, ropts)
	if err != nil {
		exitErr("train", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %v\n", w)
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			exitErr("create output", err)
		}
		defer f.Close()
		out = f
	}
	if err := res.Counts.Write(out, orders...); err != nil {
		exitErr("write counts", err)
	}

	if saveName != "" {
		s, err := openStore()
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()

		snap, err := s.Save(cmd.Context(), store.SaveParams{
			Name:   saveName,
			Corpus: source,
			Counts: res.Counts,
			Stats:  res.Stats,
			Rare:   rare,
		})
		if err != nil {
			exitErr("save snapshot", err)
		}
		cliLogger.Info().Str("id", snap.ID).Str("name", snap.Name).Msg("saved snapshot")
	}
}

// trainCounts counts the corpus in r. With rare set the corpus is read into
// memory, counted, relabeled and counted again; the returned warnings cover
// both passes.
func trainCounts(r io.Reader, n int, rare bool, ropts []hmm.RareOption) (*hmm.TrainResult, []error, error) {
	if !rare {
		res, err := hmm.Train(r, n, hmm.WithLogger(cliLogger))
		if err != nil {
			return nil, nil, err
		}
		return res, res.Warnings, nil
	}

	text, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read corpus: %w", err)
	}
	first, err := hmm.Train(bytes.NewReader(text), n, hmm.WithLogger(cliLogger))
	if err != nil {
		return nil, nil, err
	}
	res, err := hmm.RetrainRare(first.Counts, bytes.NewReader(text), ropts...)
	if err != nil {
		return nil, nil, fmt.Errorf("retrain rare: %w", err)
	}
	warnings := append(slices.Clone(first.Warnings), res.Warnings...)
	return res, warnings, nil
}

// trainOrders resolves the orders to write for an order-n model. A nil
// result means every order.
func trainOrders(cmd *cobra.Command, n int) []int {
	if cmd.Flags().Changed("orders") {
		s, _ := cmd.Flags().GetString("orders")
		orders, err := parseOrders(s)
		if err != nil {
			exitErr("orders", err)
		}
		return orders
	}
	if n != cfg.Model.Order {
		return nil
	}
	return cfg.Model.Orders
}

func parseOrders(s string) ([]int, error) {
	var orders []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		k, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad order %q: %w", f, err)
		}
		orders = append(orders, k)
	}
	return orders, nil
}

func rareOptions(cmd *cobra.Command) []hmm.RareOption {
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	if !cmd.Flags().Changed("threshold") {
		threshold = cfg.Rare.Threshold
	}
	placeholder, _ := cmd.Flags().GetString("placeholder")
	if placeholder == "" {
		placeholder = cfg.Rare.Placeholder
	}
	return []hmm.RareOption{
		hmm.WithThreshold(threshold),
		hmm.WithPlaceholder(placeholder),
		hmm.WithRareLogger(cliLogger),
	}
}
