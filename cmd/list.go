package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-coach/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'cscoach analyze <events.json>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-28s  %-12s  %-20s  %4s  %4s  %5s\n",
		"NAME", "MAP", "ANALYZED", "K", "D", "K/D")
	fmt.Fprintf(os.Stdout, "%-28s  %-12s  %-20s  %4s  %4s  %5s\n",
		"────────────────────────────", "────────────", "────────────────────", "────", "────", "─────")
	for _, m := range matches {
		fmt.Fprintf(os.Stdout, "%-28s  %-12s  %-20s  %4d  %4d  %5.2f\n",
			m.Name, m.MapName, m.AnalyzedAt, m.Kills, m.Deaths, m.KD)
	}
	return nil
}
