// Package rank estimates a player's skill tier by scoring their
// metrics against per-tier benchmarks. Each metric is scored 0-100
// around the benchmark, the weighted sum picks the tier, and the score
// interpolates an Elo inside the tier's range.
package rank

import (
	"errors"
	"math"
	"sort"

	"github.com/pable/go-cs-coach/internal/model"
)

// ErrInsufficientData means the summary carried no usable stats.
var ErrInsufficientData = errors.New("not enough data to estimate a rank")

// Input is the metric slice the estimator scores. Consistency is the
// K/D standard deviation across matches; lower is better.
type Input struct {
	KDRatio         float64
	HeadshotRate    float64
	CrosshairOffset float64
	BadCrosshairPct float64
	AvoidablePct    float64
	FlashUsefulPct  float64
	ExpensivePct    float64
	Consistency     float64
}

// FromMatchSummary builds an Input from a single match. With one match
// there is no spread to measure, so consistency sits at a neutral 0.5.
func FromMatchSummary(s model.Summary) Input {
	return Input{
		KDRatio:         s.KDRatio,
		HeadshotRate:    s.HeadshotRate,
		CrosshairOffset: s.AvgCrosshairOffset,
		BadCrosshairPct: s.BadCrosshairPct,
		AvoidablePct:    s.AvoidableDeathsPct,
		FlashUsefulPct:  s.FlashUsefulPct,
		ExpensivePct:    s.ExpensiveDeathsPct,
		Consistency:     0.5,
	}
}

// FromAggregateSummary builds an Input from a cross-match summary.
func FromAggregateSummary(s model.AggregateSummary) Input {
	return Input{
		KDRatio:         s.AvgKDRatio,
		HeadshotRate:    s.AvgHeadshotRate,
		CrosshairOffset: s.AvgCrosshairOffset,
		BadCrosshairPct: s.AvgBadCrosshairPct,
		AvoidablePct:    s.AvgAvoidableDeathsPct,
		FlashUsefulPct:  s.AvgFlashUsefulPct,
		ExpensivePct:    s.AvgExpensiveDeathsPct,
		Consistency:     s.StdKDRatio,
	}
}

// Benchmark is one tier's expected metric profile.
type Benchmark struct {
	Name            string
	Label           string
	EloMin, EloMax  int
	KDRatio         float64
	HeadshotRate    float64
	CrosshairOffset float64
	BadCrosshairPct float64
	AvoidablePct    float64
	FlashUsefulPct  float64
	ExpensivePct    float64
	Consistency     float64
}

// benchmarks is ordered from lowest to highest tier. Values compiled
// from community stat buckets and pro averages.
var benchmarks = []Benchmark{
	{"Silver", "Silver (0-5000 Elo)", 0, 5000, 0.65, 20, 55, 75, 60, 25, 65, 0.6},
	{"Gold Nova", "Gold Nova (5000-8000 Elo)", 5000, 8000, 0.85, 28, 42, 62, 50, 35, 55, 0.5},
	{"Master Guardian", "Master Guardian (8000-11000 Elo)", 8000, 11000, 1.0, 35, 32, 48, 40, 45, 45, 0.4},
	{"Legendary Eagle", "Legendary Eagle (11000-14000 Elo)", 11000, 14000, 1.15, 42, 25, 35, 30, 55, 35, 0.32},
	{"Supreme/Global", "Supreme/Global (14000-18000 Elo)", 14000, 18000, 1.3, 48, 20, 25, 22, 65, 25, 0.25},
	{"Faceit 1-3", "Faceit 1-3 (18000-20000 Elo)", 18000, 20000, 1.4, 52, 18, 20, 18, 70, 20, 0.22},
	{"Faceit 4-7", "Faceit 4-7 (20000-24000 Elo)", 20000, 24000, 1.55, 56, 15, 15, 15, 75, 15, 0.18},
	{"Faceit 8-10", "Faceit 8-10 (24000-28000 Elo)", 24000, 28000, 1.75, 62, 12, 10, 10, 82, 10, 0.15},
	{"Semi-Pro", "Semi-Pro (28000-32000 Elo)", 28000, 32000, 2.0, 68, 10, 5, 5, 88, 5, 0.12},
	{"Professional", "Professional (32000+ Elo)", 32000, 40000, 2.3, 75, 8, 3, 3, 92, 3, 0.10},
}

// metric identifiers, in scoring order.
const (
	metricKD           = "kd_ratio"
	metricHSR          = "headshot_rate"
	metricOffset       = "crosshair_offset"
	metricBadCrosshair = "bad_crosshair_pct"
	metricAvoidable    = "avoidable_deaths_pct"
	metricFlash        = "flash_useful_pct"
	metricExpensive    = "expensive_deaths_pct"
	metricConsistency  = "consistency"
)

var allMetrics = []string{
	metricKD, metricHSR, metricOffset, metricBadCrosshair,
	metricAvoidable, metricFlash, metricExpensive, metricConsistency,
}

// weights drive the tier score. Pre-aim quality is scored for the
// breakdown but not weighted; crosshair offset already covers aim.
var weights = map[string]float64{
	metricKD:          0.25,
	metricHSR:         0.15,
	metricOffset:      0.20,
	metricAvoidable:   0.15,
	metricFlash:       0.10,
	metricExpensive:   0.10,
	metricConsistency: 0.05,
}

var weightedMetrics = []string{
	metricKD, metricHSR, metricOffset,
	metricAvoidable, metricFlash, metricExpensive, metricConsistency,
}

var higherIsBetter = map[string]bool{
	metricKD:    true,
	metricHSR:   true,
	metricFlash: true,
}

var tolerances = map[string]float64{
	metricKD:           0.3,
	metricHSR:          10,
	metricOffset:       10,
	metricBadCrosshair: 15,
	metricAvoidable:    15,
	metricFlash:        15,
	metricExpensive:    15,
	metricConsistency:  0.2,
}

var readableNames = map[string]string{
	metricKD:           "K/D Ratio",
	metricHSR:          "Headshot Rate",
	metricOffset:       "Crosshair Placement",
	metricBadCrosshair: "Pre-Aim Quality",
	metricAvoidable:    "Decision Making",
	metricFlash:        "Utility Usage",
	metricExpensive:    "Economy Discipline",
	metricConsistency:  "Consistency",
}

func (in Input) metric(name string) float64 {
	switch name {
	case metricKD:
		return in.KDRatio
	case metricHSR:
		return in.HeadshotRate
	case metricOffset:
		return in.CrosshairOffset
	case metricBadCrosshair:
		return in.BadCrosshairPct
	case metricAvoidable:
		return in.AvoidablePct
	case metricFlash:
		return in.FlashUsefulPct
	case metricExpensive:
		return in.ExpensivePct
	default:
		return in.Consistency
	}
}

func (b Benchmark) metric(name string) float64 {
	switch name {
	case metricKD:
		return b.KDRatio
	case metricHSR:
		return b.HeadshotRate
	case metricOffset:
		return b.CrosshairOffset
	case metricBadCrosshair:
		return b.BadCrosshairPct
	case metricAvoidable:
		return b.AvoidablePct
	case metricFlash:
		return b.FlashUsefulPct
	case metricExpensive:
		return b.ExpensivePct
	default:
		return b.Consistency
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// scoreMetric grades one metric against a benchmark on a 0-100 scale:
// 100 inside a tenth of the tolerance, a gentle bonus slope on the
// favorable side, a steep penalty slope on the unfavorable one.
func scoreMetric(player, bench float64, favorHigh bool, tolerance float64) float64 {
	if math.Abs(player-bench) < tolerance*0.1 {
		return 100
	}
	diff := player - bench
	if !favorHigh {
		diff = bench - player
	}
	if diff >= 0 {
		return round1(math.Min(100, 80+diff/tolerance*20))
	}
	return round1(math.Max(0, 80+diff/tolerance*80))
}

// MetricGap describes one metric's distance to the next tier.
type MetricGap struct {
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Gap     float64 `json:"gap"`
	Status  string  `json:"status"`
}

// Progression lists what separates the player from the next tier.
type Progression struct {
	NextRank  string               `json:"next_rank"`
	NextLabel string               `json:"next_label"`
	Gaps      map[string]MetricGap `json:"gaps"`
}

// Result is a full rank estimate.
type Result struct {
	Rank         string             `json:"estimated_rank"`
	Elo          int                `json:"estimated_elo"`
	EloMin       int                `json:"elo_min"`
	EloMax       int                `json:"elo_max"`
	Label        string             `json:"label"`
	Score        float64            `json:"score"`
	Confidence   string             `json:"confidence"`
	MetricScores map[string]float64 `json:"metric_scores"`
	Strengths    []string           `json:"strengths"`
	Weaknesses   []string           `json:"weaknesses"`
	PrevRank     string             `json:"prev_rank,omitempty"`
	NextRank     string             `json:"next_rank,omitempty"`
	Progression  *Progression       `json:"progression,omitempty"`
}

// Estimate scores the input against every tier and returns the best
// match with confidence, strengths, weaknesses and progression.
func Estimate(in Input) (*Result, error) {
	if in.KDRatio <= 0 {
		return nil, ErrInsufficientData
	}

	perRank := make([]map[string]float64, len(benchmarks))
	weighted := make([]float64, len(benchmarks))
	for i, b := range benchmarks {
		scores := make(map[string]float64, len(allMetrics))
		for _, m := range allMetrics {
			scores[m] = scoreMetric(in.metric(m), b.metric(m), higherIsBetter[m], tolerances[m])
		}
		perRank[i] = scores
		total := 0.0
		for _, m := range weightedMetrics {
			total += scores[m] * weights[m]
		}
		weighted[i] = round1(total)
	}

	best := 0
	for i := 1; i < len(weighted); i++ {
		if weighted[i] > weighted[best] {
			best = i
		}
	}
	bench := benchmarks[best]
	score := weighted[best]

	pos := 0.3
	if score >= 80 {
		pos = (score - 80) / 20
	}
	elo := bench.EloMin + int(float64(bench.EloMax-bench.EloMin)*pos)

	res := &Result{
		Rank:         bench.Name,
		Elo:          elo,
		EloMin:       bench.EloMin,
		EloMax:       bench.EloMax,
		Label:        bench.Label,
		Score:        score,
		Confidence:   confidence(weighted, best),
		MetricScores: perRank[best],
	}
	res.Strengths, res.Weaknesses = strengthsWeaknesses(perRank[best])

	if best > 0 {
		res.PrevRank = benchmarks[best-1].Name
	}
	if best < len(benchmarks)-1 {
		next := benchmarks[best+1]
		res.NextRank = next.Name
		res.Progression = progression(in, next)
	}
	return res, nil
}

func confidence(weighted []float64, best int) string {
	neighbors := []float64{}
	if best > 0 {
		neighbors = append(neighbors, weighted[best-1])
	}
	if best < len(weighted)-1 {
		neighbors = append(neighbors, weighted[best+1])
	}
	if len(neighbors) == 0 {
		return "High"
	}
	sum := 0.0
	for _, n := range neighbors {
		sum += n
	}
	diff := weighted[best] - sum/float64(len(neighbors))
	switch {
	case diff > 15:
		return "High"
	case diff > 8:
		return "Medium"
	default:
		return "Low"
	}
}

func strengthsWeaknesses(scores map[string]float64) (strengths, weaknesses []string) {
	ordered := append([]string(nil), allMetrics...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return scores[ordered[i]] > scores[ordered[j]]
	})

	strengths = []string{}
	for _, m := range ordered[:3] {
		if scores[m] >= 75 {
			strengths = append(strengths, readableNames[m])
		}
	}
	weaknesses = []string{}
	for _, m := range ordered[len(ordered)-3:] {
		if scores[m] < 60 {
			weaknesses = append(weaknesses, readableNames[m])
		}
	}
	return strengths, weaknesses
}

func progression(in Input, next Benchmark) *Progression {
	gaps := make(map[string]MetricGap, len(weightedMetrics))
	for _, m := range weightedMetrics {
		current := in.metric(m)
		target := next.metric(m)
		gap := target - current
		if !higherIsBetter[m] {
			gap = current - target
		}
		status := "already_there"
		if gap > 0 {
			status = "need_improvement"
		}
		gaps[m] = MetricGap{
			Current: round1(current),
			Target:  round1(target),
			Gap:     round1(math.Abs(gap)),
			Status:  status,
		}
	}
	return &Progression{NextRank: next.Name, NextLabel: next.Label, Gaps: gaps}
}
