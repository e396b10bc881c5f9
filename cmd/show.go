package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-coach/internal/report"
	"github.com/pable/go-cs-coach/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a stored match report",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	name := args[0]

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	rec, err := db.GetMatch(name)
	if err != nil {
		return fmt.Errorf("load match: %w", err)
	}
	if rec == nil {
		fmt.Fprintf(os.Stderr, "No match stored under %q. Run 'cscoach list' to see stored names.\n", name)
		return nil
	}

	report.PrintMatchReport(os.Stdout, rec.Name, rec.Analysis)
	return nil
}
