package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Procure/internal/config"
	"github.com/MikeSquared-Agency/Procure/internal/export"
	"github.com/MikeSquared-Agency/Procure/internal/scoring"
	"github.com/MikeSquared-Agency/Procure/internal/session"
	"github.com/MikeSquared-Agency/Procure/internal/wizard"
)

func newEvaluateCommand(opts *rootOptions) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Fill in the decision matrix interactively and print the ranking",
		Long: `Prompt for suppliers, their scores on every criterion and the strategic
context, then print the weighted matrix, totals and ranking.

Use --csv to also write the matrix to a file. Pass a directory to get the
default file name for the chosen context.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Logging, opts.debug)

			scorer, err := scoring.NewScorer(cfg.Matrix, logger)
			if err != nil {
				return err
			}

			res, err := wizard.Run(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Matrix, wizard.Options{
				Limits: session.Limits{
					MinSuppliers:     cfg.Session.MinSuppliers,
					MaxSuppliers:     cfg.Session.MaxSuppliers,
					DefaultSuppliers: cfg.Session.DefaultSuppliers,
				},
			})
			if err != nil {
				return err
			}

			return report(cmd.OutOrStdout(), scorer, res, csvPath, logger)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "write the matrix as CSV to this file or directory")
	return cmd
}

// report evaluates res and prints the matrix and ranking, optionally writing
// the CSV export.
func report(out io.Writer, scorer *scoring.Scorer, res *wizard.Result, csvPath string, logger *slog.Logger) error {
	ev, err := scorer.Evaluate(res.Context, res.Suppliers)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nDecision matrix (%s)\n", ev.Context) //nolint:errcheck
	wizard.RenderTable(out, ev.Table)
	fmt.Fprintln(out) //nolint:errcheck
	wizard.RenderTotals(out, ev)

	if csvPath == "" {
		return nil
	}
	if info, err := os.Stat(csvPath); err == nil && info.IsDir() {
		csvPath = filepath.Join(csvPath, export.Filename(ev.Context))
	}
	f, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := export.WriteCSV(f, ev.Table); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}
	logger.Debug("matrix exported", "path", csvPath)
	fmt.Fprintf(out, "\nWrote %s\n", csvPath) //nolint:errcheck
	return nil
}
