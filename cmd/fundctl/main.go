// Command fundctl queries and converts fund datasets from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aristath/fundadvisor/internal/config"
	"github.com/aristath/fundadvisor/internal/di"
	"github.com/aristath/fundadvisor/pkg/logger"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	dataset string
	timeout time.Duration
	verbose bool

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "fundctl",
		Short: "Fund advisor command line tools",
		Long: `fundctl runs the fund advisor's ranking and allocation logic against a
fund dataset without starting the HTTP server.

The dataset defaults to FUND_DATASET and may be a CSV, JSON, msgpack snapshot
or SQLite file, or an s3://bucket/key URI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.dataset, "dataset", "", "Fund dataset path or s3:// URI (default FUND_DATASET)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "Timeout for loading the dataset and generating narratives")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(
		newTopCmd(opts),
		newFundCmd(opts),
		newCategoriesCmd(opts),
		newRecommendCmd(opts),
		newSnapshotCmd(opts),
	)

	return rootCmd
}

// setup loads configuration and builds a logger that writes to stderr, so
// stdout carries only command output.
func (o *rootOptions) setup(stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if o.dataset != "" {
		cfg.FundDataset = o.dataset
	}

	level := "warn"
	if o.verbose {
		level = "debug"
	}

	o.cfg = cfg
	o.log = logger.New(logger.Config{Level: level, Pretty: true, Output: stderr})
	return nil
}

// container wires every service on top of the selected dataset.
func (o *rootOptions) container(ctx context.Context) (*di.Container, error) {
	return di.Wire(ctx, o.cfg, o.log)
}

func (o *rootOptions) withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
