package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chart-color-inspector/internal/config"
	"chart-color-inspector/internal/repository"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent analysis runs",
		Long: `History lists recent analysis runs recorded in the local database,
newest first.`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of entries to show")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	history, err := repository.OpenHistory(config.DefaultHistoryDir())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer history.Close()

	entries, err := history.RecentAnalyses(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "no recorded analyses")
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(out, "%s  %-8s %8d pixels (%5.2f%%)  %s\n",
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.ColorName, entry.TotalMatched, entry.Percentage, entry.ImagePath)
	}
	fmt.Fprintf(out, "%d entr%s\n", len(entries), pluralY(len(entries)))
	return nil
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
