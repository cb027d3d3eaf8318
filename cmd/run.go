package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halvard/quizdrill/internal/app"
	"github.com/halvard/quizdrill/internal/bank"
	"github.com/halvard/quizdrill/internal/progress"
	"github.com/halvard/quizdrill/internal/queue"
	"github.com/halvard/quizdrill/internal/storage"
	"github.com/halvard/quizdrill/internal/study"
)

// runApp wires the services and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, logCloser, err := app.NewLogger(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logCloser.Close()

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	bk, err := bank.Load(cfg.Bank.Path)
	if err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}

	records := progress.NewStore(ctx, st, log)
	builder := queue.NewBuilder(nil, cfg.Review.SmartLimit)
	controller := study.NewController(ctx, bk, records, builder, st, log)

	log.Info("starting", "bank", cfg.Bank.Path, "questions", bk.Len(), "db", dbPath)

	return app.Run(app.Options{
		Bank:       bk,
		Records:    records,
		Controller: controller,
		Logger:     log,
	})
}
