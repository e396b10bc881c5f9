package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-coach/internal/analyzer"
	"github.com/pable/go-cs-coach/internal/model"
	"github.com/pable/go-cs-coach/internal/report"
	"github.com/pable/go-cs-coach/internal/storage"
)

var (
	analyzeName    string
	analyzeNoStore bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <events.json>",
	Short: "Analyze one match event dump and store the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeName, "name", "", "name to store the match under (default: file name without extension)")
	analyzeCmd.Flags().BoolVar(&analyzeNoStore, "no-store", false, "print the report without storing it")
}

// loadBundle decodes one match event dump from disk.
func loadBundle(path string) (*model.EventBundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	var bundle model.EventBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return &bundle, nil
}

func matchName(path, override string) string {
	if override != "" {
		return override
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	name := matchName(path, analyzeName)

	bundle, err := loadBundle(path)
	if err != nil {
		return err
	}

	analysis := analyzer.Analyze(*bundle)
	report.PrintMatchReport(os.Stdout, name, analysis)

	if analyzeNoStore {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if err := db.InsertMatch(name, analysis); err != nil {
		return fmt.Errorf("store match: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\nStored as %q.\n", name)
	return nil
}
