package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/halvard/quizdrill/internal/bank"
	"github.com/halvard/quizdrill/internal/progress"
	"github.com/halvard/quizdrill/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

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

		bk, err := bank.Load(cfg.Bank.Path)
		if err != nil {
			return fmt.Errorf("load question bank: %w", err)
		}

		records := progress.NewStore(ctx, st, slog.New(slog.DiscardHandler))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Bank: %s (%d questions)\n\n", cfg.Bank.Path, bk.Len())

		byCategory := make(map[string][]string)
		allIDs := make([]string, 0, bk.Len())
		for _, q := range bk.Questions() {
			byCategory[q.Category] = append(byCategory[q.Category], q.ID)
			allIDs = append(allIDs, q.ID)
		}

		nameWidth := len("CATEGORY")
		for _, cat := range bk.Categories() {
			if len(cat) > nameWidth {
				nameWidth = len(cat)
			}
		}

		fmt.Fprintf(out, "%-*s  %5s  %8s  %8s  %5s\n", nameWidth, "CATEGORY", "TOTAL", "MASTERED", "LEARNING", "NEW")
		for _, cat := range bk.Categories() {
			ids := byCategory[cat]
			c := records.Counts(ids)
			fmt.Fprintf(out, "%-*s  %5d  %8d  %8d  %5d\n", nameWidth, cat, len(ids), c.Mastered, c.Learning, c.New)
		}

		total := records.Counts(allIDs)
		fmt.Fprintf(out, "\nOverall: %d/%d mastered", total.Mastered, bk.Len())
		if bk.Len() > 0 {
			fmt.Fprintf(out, " (%.0f%%)", float64(total.Mastered)/float64(bk.Len())*100)
		}
		fmt.Fprintln(out)
		return nil
	},
}
