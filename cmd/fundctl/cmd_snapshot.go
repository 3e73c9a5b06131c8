package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aristath/fundadvisor/internal/modules/funds"
)

func newSnapshotCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Convert a dataset into a msgpack snapshot, JSON file or SQLite database",
		Long: `Load the dataset, validate it and write it to --out. The output format
follows the extension: .msgpack/.mpk, .json or .db/.sqlite/.sqlite3.
Snapshots may be written to s3://bucket/key; SQLite databases may not.`,
		Example: `  fundctl snapshot --dataset data/funds.csv --out data/funds.msgpack
  fundctl snapshot --out s3://funds/latest.msgpack`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.withTimeout(cmd)
			defer cancel()

			loadOpts := funds.LoadOptions{Log: opts.log}
			if opts.cfg.S3 != nil {
				loadOpts.S3 = opts.cfg.S3.ToFundsConfig()
			}

			dataset, err := funds.LoadDataset(ctx, opts.cfg.FundDataset, loadOpts)
			if err != nil {
				return err
			}

			if err := funds.Save(ctx, dataset.Funds(), out, loadOpts); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}

			opts.log.Info().
				Str("source", opts.cfg.FundDataset).
				Str("dest", out).
				Int("funds", dataset.Len()).
				Msg("Snapshot written")

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d funds to %s\n", dataset.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Destination path or s3:// URI")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
