package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halvard/quizdrill/internal/bank"
	"github.com/halvard/quizdrill/internal/progress"
	"github.com/halvard/quizdrill/internal/queue"
	"github.com/halvard/quizdrill/internal/storage"
	"github.com/halvard/quizdrill/internal/study"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all progress and any paused session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprint(cmd.OutOrStdout(), "This wipes all progress and any paused session. Continue? [y/N]: ")
			reader := bufio.NewReader(cmd.InOrStdin())
			answer, _ := reader.ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		// An empty bank is fine here: resetting must work even when the
		// bank file is missing.
		bk, err := bank.New(nil)
		if err != nil {
			return err
		}

		log := slog.New(slog.DiscardHandler)
		records := progress.NewStore(ctx, st, log)
		controller := study.NewController(ctx, bk, records, queue.NewBuilder(nil, 0), st, log)

		if err := controller.ResetAll(ctx); err != nil {
			return fmt.Errorf("reset: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
