// Package cli implements the hmmcount CLI commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rcliao/hmmcount/internal/config"
	"github.com/rcliao/hmmcount/internal/hmm"
	"github.com/rcliao/hmmcount/internal/logger"
	"github.com/rcliao/hmmcount/internal/model"
	"github.com/rcliao/hmmcount/internal/store"
)

var (
	dbPath     string
	formatFlag string
	configPath string

	cfg       *config.Config
	cliLogger = zerolog.Nop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "hmmcount",
	Short: "Count tag n-grams and emissions for an HMM tagger",
	Long: `Reads a corpus of "word tag" lines (blank line between sentences) and
writes tag n-gram and word/tag emission counts. Counts can be read back,
turned into emission probabilities, and used to relabel rare words.`,
	PersistentPreRun: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Snapshot database path (default: store.path from config)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json, yaml or text")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./config.yaml or ~/.hmmcount/config.yaml)")
}

func setup(cmd *cobra.Command, args []string) {
	settings, err := logger.LoadSettings()
	if err != nil {
		exitErr("read log settings", err)
	}
	cliLogger = logger.New(cmd.Name(), settings)

	cfg, err = config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if !model.ValidFormats[formatFlag] {
		exitErr("format", fmt.Errorf("unknown format %q (use json, yaml or text)", formatFlag))
	}
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.Store.Path
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

// openInput opens the named file, or stdin for "" and "-".
func openInput(name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

// addCountsFlags registers the flags that select a counts source.
func addCountsFlags(cmd *cobra.Command) {
	cmd.Flags().String("counts", "", "Counts file written by train (- for stdin)")
	cmd.Flags().StringP("snapshot", "s", "", "Snapshot id or name to load instead of a counts file")
}

// loadCounts reads counts from --snapshot or --counts.
func loadCounts(cmd *cobra.Command) *hmm.Counts {
	ref, _ := cmd.Flags().GetString("snapshot")
	path, _ := cmd.Flags().GetString("counts")

	if ref != "" {
		s, err := openStore()
		if err != nil {
			exitErr("open store", err)
		}
		defer s.Close()

		snap, c, err := s.Load(cmd.Context(), ref)
		if err != nil {
			exitErr("load snapshot", err)
		}
		cliLogger.Debug().Str("snapshot", snap.ID).Int("order", c.N).Msg("loaded snapshot")
		return c
	}

	if path == "" {
		exitErr("counts", fmt.Errorf("--counts or --snapshot is required"))
	}
	in, err := openInput(path)
	if err != nil {
		exitErr("open counts", err)
	}
	defer in.Close()

	c, err := hmm.ReadCounts(in)
	if err != nil {
		exitErr("read counts", err)
	}
	return c
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
