package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pable/go-cs-coach/internal/aggregate"
	"github.com/pable/go-cs-coach/internal/analyzer"
	"github.com/pable/go-cs-coach/internal/rank"
	"github.com/pable/go-cs-coach/internal/report"
	"github.com/pable/go-cs-coach/log"
)

var folderCmd = &cobra.Command{
	Use:   "folder <dir>",
	Short: "Analyze every event dump in a directory and aggregate the results",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolder,
}

func runFolder(cmd *cobra.Command, args []string) error {
	dir := args[0]

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("scan directory: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .json event dumps in %s", dir)
	}
	// Sorted file names stand in for chronological order.
	sort.Strings(paths)

	agg := aggregate.New()
	for _, path := range paths {
		bundle, err := loadBundle(path)
		if err != nil {
			log.Warn("skipping unreadable dump", zap.String("path", path), zap.Error(err))
			continue
		}
		agg.Add(analyzer.Analyze(*bundle), matchName(path, ""))
	}

	result, err := agg.Compute()
	if err != nil {
		return fmt.Errorf("no usable event dumps in %s", dir)
	}
	log.Info("aggregated matches", zap.Int("count", agg.Len()))

	report.PrintAggregateReport(os.Stdout, result)

	estimate, err := rank.Estimate(rank.FromAggregateSummary(result.Summary))
	if err != nil {
		log.Debug("rank estimate unavailable", zap.Error(err))
		return nil
	}
	report.PrintRankCard(os.Stdout, estimate)
	return nil
}
