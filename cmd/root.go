package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halvard/quizdrill/internal/config"
	"github.com/halvard/quizdrill/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "quizdrill",
	Short: "Terminal flashcard trainer",
	Long:  "Quizdrill — a terminal trainer that tracks per-question progress and builds weighted review queues from a JSON question bank.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides QUIZDRILL_CONFIG)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZDRILL_DB)")
	rootCmd.PersistentFlags().String("bank", "", "Path to question bank JSON (overrides QUIZDRILL_BANK)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the effective config: flags beat environment beats the
// config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Storage.Path = p
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cfg.Bank.Path = p
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.Storage.Path != "" {
		return cfg.Storage.Path, storage.EnsureDir(cfg.Storage.Path)
	}
	return storage.DefaultPath()
}
