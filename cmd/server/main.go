package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/retailops/returns-complaints/app"
	"github.com/retailops/returns-complaints/config"
	"github.com/retailops/returns-complaints/logging"
	"github.com/retailops/returns-complaints/models"
)

var (
	// Global flags
	debug   bool
	envFile string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "complaints",
	Short: "Product return complaints reporting service",
	Long: `Records product return complaints, renders dashboards over them and
loads complaint batches from synthetic data or CSV files.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("debug") {
			cfg.Debug = debug
		}
		logger, err = logging.New(cfg.Debug)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")

	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (overrides HTTP_ADDR)")
	etlCmd.Flags().IntVar(&rowsFlag, "rows", 0, "synthetic rows to generate (overrides ETL_ROWS)")

	rootCmd.AddCommand(serveCmd, initDBCmd, etlCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openDB(ctx context.Context) (*gorm.DB, error) {
	db, err := models.Open(ctx, cfg.DatabaseDSN, models.PoolOptions{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("database connected",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)
	return db, nil
}

// prepareDB creates missing tables and seeds the reference data of a fresh
// database.
func prepareDB(ctx context.Context, db *gorm.DB) error {
	if err := models.Migrate(ctx, db); err != nil {
		return err
	}
	seeded, err := models.EnsureSeeded(ctx, db)
	if err != nil {
		return err
	}
	if seeded {
		logger.Info("reference data seeded")
	}
	return nil
}

func appOptions() app.Options {
	return app.Options{
		ETLRows:        cfg.ETLRows,
		SampleCSV:      cfg.SampleCSV,
		BatchSize:      cfg.BatchSize,
		NumberAttempts: cfg.NumberAttempts,
	}
}
