// Command tx-engine processes a CSV transaction stream and prints the final
// account balances as CSV on stdout.
//
// With no arguments the stream is read from stdin. With one or more file
// arguments each file is processed in order against the same engine state
// and one combined report is emitted. Diagnostics for rejected records go to
// stderr; a malformed record aborts the run with no report.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TaoVonQi/tx-engine/account"
	"github.com/TaoVonQi/tx-engine/csvio"
	"github.com/TaoVonQi/tx-engine/engine"
	"github.com/TaoVonQi/tx-engine/ledger"
	"github.com/TaoVonQi/tx-engine/zaplog"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		logLevel string
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:          "tx-engine [file ...]",
		Short:        "Process a transaction stream and report final account balances",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if !quiet {
				built, _, err := zaplog.New(zaplog.Config{
					Environment: zaplog.EnvironmentProduction,
					Level:       logLevel,
				})
				if err != nil {
					return err
				}
				defer func() { _ = built.Sync() }()
				logger = built
			}

			eng := engine.New(ledger.New(), account.New(), logger)

			if len(args) == 0 {
				if err := runStream(cmd.Context(), eng, cmd.InOrStdin()); err != nil {
					return err
				}
			}

			for _, path := range args {
				if err := runFile(cmd.Context(), eng, path); err != nil {
					return err
				}
			}

			return csvio.WriteReport(cmd.OutOrStdout(), eng.Snapshot())
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "minimum diagnostic level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress per-record diagnostics")

	return cmd
}

func runStream(ctx context.Context, eng *engine.Engine, in io.Reader) error {
	src, err := csvio.NewReader(in)
	if err != nil {
		return err
	}

	return eng.Run(ctx, src)
}

func runFile(ctx context.Context, eng *engine.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := runStream(ctx, eng, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}
