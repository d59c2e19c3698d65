package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/Dan9191/budget-advisor/internal/config"
	"github.com/Dan9191/budget-advisor/internal/repository"
	"github.com/Dan9191/budget-advisor/internal/service"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rescoreFlags struct {
	workers int
}

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Re-score stored decisions against current budgets",
	Long: `Re-analyze every stored decision against its owner's active budget and
update the ones whose tier changed. Database settings are read from the same
environment variables as the API server (DB_CONN, LOG_LEVEL, ...).`,
	Args: cobra.NoArgs,
	RunE: runRescore,
}

func init() {
	rescoreCmd.Flags().IntVarP(&rescoreFlags.workers, "workers", "w", runtime.NumCPU(), "Users processed concurrently")
}

func runRescore(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(cmd.Context()); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	svc := service.NewService(repository.NewRepository(db), nil, nil, logger, cfg)
	stats, err := svc.Rescore(cmd.Context(), rescoreFlags.workers)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
