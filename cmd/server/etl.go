package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/retailops/returns-complaints/app"
	"github.com/retailops/returns-complaints/app/admin"
	"github.com/retailops/returns-complaints/etl"
	"github.com/retailops/returns-complaints/models"
)

var rowsFlag int

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Drop and recreate the schema, then seed the reference data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer models.Close(db)

		if err := models.ResetSchema(cmd.Context(), db); err != nil {
			return err
		}
		logger.Info("database initialized")
		return nil
	},
}

var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Load a batch of synthetic complaints and the sample CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := cfg.ETLRows
		if cmd.Flags().Changed("rows") {
			rows = rowsFlag
		}
		return withPipeline(cmd, func(p *etl.Pipeline) (etl.RunResult, error) {
			return runAll(cmd.Context(), p, rows, cfg.SampleCSV)
		})
	},
}

// runAll loads rows synthetic complaints and then sampleCSV, if set. The
// returned result covers every stage that ran, including a failed one.
func runAll(ctx context.Context, r admin.Runner, rows int, sampleCSV string) (etl.RunResult, error) {
	total, err := r.RunSynthetic(ctx, rows)
	if err != nil || sampleCSV == "" {
		return total, err
	}
	fromCSV, err := r.ImportCSV(ctx, sampleCSV)
	total.Merge(fromCSV.Result)
	total.Added += fromCSV.Added
	return total, err
}

var importCmd = &cobra.Command{
	Use:   "import <csv>",
	Short: "Load complaints from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPipeline(cmd, func(p *etl.Pipeline) (etl.RunResult, error) {
			return p.ImportCSV(cmd.Context(), args[0])
		})
	},
}

// withPipeline runs fn over a prepared database and prints its result as
// JSON on stdout, also when fn fails part way.
func withPipeline(cmd *cobra.Command, fn func(p *etl.Pipeline) (etl.RunResult, error)) error {
	db, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer models.Close(db)

	if err := prepareDB(cmd.Context(), db); err != nil {
		return err
	}

	res, err := fn(app.NewPipeline(db, appOptions(), nil, logger))
	if err == nil {
		logger.Info("pipeline done", zap.Int64("added", res.Added), zap.Int("skipped", res.Skipped))
	}
	return report(cmd.OutOrStdout(), res, err)
}

// report writes res as indented JSON and returns runErr, joined with any
// write error.
func report(w io.Writer, res etl.RunResult, runErr error) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Join(runErr, enc.Encode(res))
}
