package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rcliao/hmmcount/internal/store"
)

func init() {
	snapCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage stored count snapshots",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		Run:   runSnapshotList,
	}
	listCmd.Flags().String("name", "", "Filter by name")
	listCmd.Flags().IntP("limit", "l", 20, "Max results")

	showCmd := &cobra.Command{
		Use:   "show REF",
		Short: "Show a snapshot and its table sizes",
		Args:  cobra.ExactArgs(1),
		Run:   runSnapshotShow,
	}

	exportCmd := &cobra.Command{
		Use:   "export REF",
		Short: "Write a snapshot in the counts format",
		Args:  cobra.ExactArgs(1),
		Run:   runSnapshotExport,
	}
	exportCmd.Flags().String("orders", "", "Comma-separated orders to write (default: all)")

	importCmd := &cobra.Command{
		Use:   "import NAME [counts]",
		Short: "Store a counts file (or stdin) as a snapshot",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runSnapshotImport,
	}

	rmCmd := &cobra.Command{
		Use:   "rm REF",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		Run:   runSnapshotRm,
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Run:   runSnapshotStats,
	}

	snapCmd.AddCommand(listCmd, showCmd, exportCmd, importCmd, rmCmd, statsCmd)
	RootCmd.AddCommand(snapCmd)
}

func runSnapshotList(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	snaps, err := s.List(cmd.Context(), store.ListParams{Name: name, Limit: limit})
	if err != nil {
		exitErr("list", err)
	}

	render(snaps, func(w io.Writer) {
		for _, sn := range snaps {
			fmt.Fprintf(w, "%s  %-16s  n=%d  %s tokens  %s\n",
				sn.ID, sn.Name, sn.Order, humanize.Comma(int64(sn.Tokens)), humanize.Time(sn.CreatedAt))
		}
	})
}

func runSnapshotShow(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	snap, c, err := s.Load(cmd.Context(), args[0])
	if err != nil {
		exitErr("load snapshot", err)
	}

	out := struct {
		Snapshot interface{} `json:"snapshot" yaml:"snapshot"`
		Stats    modelStats  `json:"stats" yaml:"stats"`
	}{snap, countStats(c)}

	render(out, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s (corpus %s, created %s)\n", snap.ID, snap.Name, snap.Corpus, humanize.Time(snap.CreatedAt))
		for _, t := range out.Stats.Tables {
			fmt.Fprintf(w, "  %d-grams: %s\n", t.Order, humanize.Comma(int64(t.Entries)))
		}
		fmt.Fprintf(w, "  emissions: %s\n", humanize.Comma(int64(out.Stats.Emissions)))
	})
}

func runSnapshotExport(cmd *cobra.Command, args []string) {
	ordersStr, _ := cmd.Flags().GetString("orders")
	orders, err := parseOrders(ordersStr)
	if err != nil {
		exitErr("orders", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if _, err := s.Export(cmd.Context(), args[0], os.Stdout, orders...); err != nil {
		exitErr("export", err)
	}
}

func runSnapshotImport(cmd *cobra.Command, args []string) {
	source := "-"
	if len(args) > 1 {
		source = args[1]
	}
	in, err := openInput(source)
	if err != nil {
		exitErr("open counts", err)
	}
	defer in.Close()

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	snap, err := s.Import(cmd.Context(), args[0], source, in)
	if err != nil {
		exitErr("import", err)
	}
	render(snap, func(w io.Writer) {
		fmt.Fprintln(w, snap.ID)
	})
}

func runSnapshotRm(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.Rm(cmd.Context(), args[0]); err != nil {
		exitErr("rm", err)
	}
	fmt.Printf(`{"ok":true,"removed":%q}`+"\n", args[0])
}

func runSnapshotStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), getDBPath())
	if err != nil {
		exitErr("stats", err)
	}

	render(stats, func(w io.Writer) {
		fmt.Fprintf(w, "%s (%s)\n", stats.DBPath, humanize.Bytes(uint64(stats.DBSizeBytes)))
		fmt.Fprintf(w, "snapshots: %d, n-gram rows: %s, emission rows: %s\n",
			stats.Snapshots, humanize.Comma(int64(stats.NGramRows)), humanize.Comma(int64(stats.EmissionRows)))
		for _, n := range stats.SnapshotNames {
			fmt.Fprintf(w, "  %s: %d\n", n.Name, n.Count)
		}
	})
}
