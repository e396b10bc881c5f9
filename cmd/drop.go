package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-coach/internal/storage"
)

var dropCmd = &cobra.Command{
	Use:   "drop <name>",
	Short: "Delete one stored match",
	Args:  cobra.ExactArgs(1),
	RunE:  runDrop,
}

func runDrop(cmd *cobra.Command, args []string) error {
	name := args[0]

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	deleted, err := db.DeleteMatch(name)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if !deleted {
		fmt.Fprintf(os.Stderr, "No match stored under %q.\n", name)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted %q.\n", name)
	return nil
}
