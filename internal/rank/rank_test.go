package rank

import (
	"testing"

	"github.com/pable/go-cs-coach/internal/model"
)

// masterGuardian mirrors that tier's benchmark values exactly.
func masterGuardian() Input {
	return Input{
		KDRatio:         1.0,
		HeadshotRate:    35,
		CrosshairOffset: 32,
		BadCrosshairPct: 48,
		AvoidablePct:    40,
		FlashUsefulPct:  45,
		ExpensivePct:    45,
		Consistency:     0.4,
	}
}

func TestEstimate_BenchmarkFixedPoint(t *testing.T) {
	got, err := Estimate(masterGuardian())
	if err != nil {
		t.Fatal(err)
	}
	if got.Rank != "Master Guardian" {
		t.Fatalf("an exact benchmark profile must select its tier, got %q", got.Rank)
	}
	if got.Score != 100 {
		t.Errorf("score at the benchmark: want 100, got %.1f", got.Score)
	}
	// Score 100 sits at the top of the tier's Elo range.
	if got.Elo != 11000 {
		t.Errorf("elo: want 11000, got %d", got.Elo)
	}
	if got.PrevRank != "Gold Nova" || got.NextRank != "Legendary Eagle" {
		t.Errorf("neighbors: got %q / %q", got.PrevRank, got.NextRank)
	}
	if len(got.Strengths) != 3 {
		t.Errorf("all metrics at 100 must yield 3 strengths, got %v", got.Strengths)
	}
	if len(got.Weaknesses) != 0 {
		t.Errorf("no weaknesses expected at the benchmark, got %v", got.Weaknesses)
	}
}

func TestEstimate_InsufficientData(t *testing.T) {
	if _, err := Estimate(Input{}); err != ErrInsufficientData {
		t.Fatalf("want ErrInsufficientData, got %v", err)
	}
}

func TestEstimate_TopTierHasNoProgression(t *testing.T) {
	in := Input{
		KDRatio:         2.3,
		HeadshotRate:    75,
		CrosshairOffset: 8,
		BadCrosshairPct: 3,
		AvoidablePct:    3,
		FlashUsefulPct:  92,
		ExpensivePct:    3,
		Consistency:     0.10,
	}
	got, err := Estimate(in)
	if err != nil {
		t.Fatal(err)
	}
	if got.Rank != "Professional" {
		t.Fatalf("want Professional, got %q", got.Rank)
	}
	if got.NextRank != "" || got.Progression != nil {
		t.Error("top tier has no next rank or progression")
	}
	if got.PrevRank != "Semi-Pro" {
		t.Errorf("prev rank: got %q", got.PrevRank)
	}
}

func TestEstimate_Progression(t *testing.T) {
	got, err := Estimate(masterGuardian())
	if err != nil {
		t.Fatal(err)
	}
	p := got.Progression
	if p == nil || p.NextRank != "Legendary Eagle" {
		t.Fatalf("progression: got %+v", p)
	}

	kd := p.Gaps["kd_ratio"]
	if kd.Current != 1.0 || kd.Target != 1.15 || kd.Gap != 0.2 || kd.Status != "need_improvement" {
		t.Errorf("kd gap: got %+v", kd)
	}
	// Lower-is-better metric already under the next tier's target.
	avoid := p.Gaps["avoidable_deaths_pct"]
	if avoid.Target != 30 || avoid.Status != "need_improvement" {
		t.Errorf("avoidable gap: got %+v", avoid)
	}
}

func TestScoreMetric(t *testing.T) {
	// Inside a tenth of the tolerance counts as a perfect match.
	if got := scoreMetric(1.01, 1.0, true, 0.3); got != 100 {
		t.Errorf("near match: want 100, got %.1f", got)
	}
	// Favorable side climbs gently and caps at 100.
	if got := scoreMetric(1.15, 1.0, true, 0.3); got != 90 {
		t.Errorf("favorable diff: want 90, got %.1f", got)
	}
	if got := scoreMetric(5.0, 1.0, true, 0.3); got != 100 {
		t.Errorf("favorable cap: want 100, got %.1f", got)
	}
	// Unfavorable side drops steeply and floors at 0.
	if got := scoreMetric(0.85, 1.0, true, 0.3); got != 40 {
		t.Errorf("unfavorable diff: want 40, got %.1f", got)
	}
	if got := scoreMetric(0.0, 2.0, true, 0.3); got != 0 {
		t.Errorf("unfavorable floor: want 0, got %.1f", got)
	}
	// Lower-is-better flips the sign.
	if got := scoreMetric(25, 32, false, 10); got != 94 {
		t.Errorf("lower-is-better favorable: want 94, got %.1f", got)
	}
}

func TestInputConversions(t *testing.T) {
	single := FromMatchSummary(model.Summary{KDRatio: 1.2, HeadshotRate: 40})
	if single.Consistency != 0.5 {
		t.Errorf("single-match consistency defaults to 0.5, got %.2f", single.Consistency)
	}

	agg := FromAggregateSummary(model.AggregateSummary{AvgKDRatio: 1.2, StdKDRatio: 0.25})
	if agg.KDRatio != 1.2 || agg.Consistency != 0.25 {
		t.Errorf("aggregate conversion: got %+v", agg)
	}
}
