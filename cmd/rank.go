package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-coach/internal/aggregate"
	"github.com/pable/go-cs-coach/internal/rank"
	"github.com/pable/go-cs-coach/internal/report"
	"github.com/pable/go-cs-coach/internal/storage"
)

var rankLast int

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Estimate a skill tier from stored matches",
	Args:  cobra.NoArgs,
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().IntVar(&rankLast, "last", 0, "only use the N most recent matches (0 = all)")
}

func runRank(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	records, err := db.GetAllAnalyses(rankLast)
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no matches stored yet; run 'cscoach analyze' first")
	}

	var input rank.Input
	if len(records) == 1 {
		input = rank.FromMatchSummary(records[0].Analysis.Summary)
	} else {
		agg := aggregate.New()
		for _, rec := range records {
			agg.Add(rec.Analysis, rec.Name)
		}
		result, err := agg.Compute()
		if err != nil {
			return fmt.Errorf("aggregate matches: %w", err)
		}
		input = rank.FromAggregateSummary(result.Summary)
	}

	estimate, err := rank.Estimate(input)
	if errors.Is(err, rank.ErrInsufficientData) {
		fmt.Fprintln(os.Stdout, "Not enough data for a rank estimate (no deaths recorded).")
		return nil
	}
	if err != nil {
		return fmt.Errorf("estimate rank: %w", err)
	}

	report.PrintRankCard(os.Stdout, estimate)
	return nil
}
