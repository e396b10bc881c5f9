// Package analyzer orchestrates the per-match pipeline: crosshair
// placement, death and flash classification, economy, positioning and
// the resulting training priorities, folded into one MatchAnalysis.
package analyzer

import (
	"math"

	"github.com/pable/go-cs-coach/internal/classify"
	"github.com/pable/go-cs-coach/internal/economy"
	"github.com/pable/go-cs-coach/internal/model"
	"github.com/pable/go-cs-coach/internal/priority"
	"github.com/pable/go-cs-coach/internal/zones"
)

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Analyze runs the full pipeline over one event bundle. Pure and
// eager; the result is complete once returned.
func Analyze(bundle model.EventBundle) *model.MatchAnalysis {
	crosshair := classify.AnalyzeCrosshair(bundle.Deaths)
	deaths := classify.ClassifyDeaths(bundle.Deaths, bundle.Flashes)
	kills := classify.ClassifyKills(bundle.Kills)
	flashes := classify.ClassifyFlashes(bundle.Flashes)

	eco := economy.Analyze(bundle.Deaths, bundle.Kills)

	positioning := zones.Analyze(bundle.Deaths, bundle.Kills, bundle.MapName)
	positioning.Recommendations = zones.Recommendations(positioning)

	totalDeaths := len(bundle.Deaths)
	totalKills := len(bundle.Kills)
	totalFlashes := len(bundle.Flashes)

	avoidable := 0
	noAdvantage := 0
	for _, d := range deaths {
		if d.IsAvoidable {
			avoidable++
		}
		if !d.HadAnyAdvantage {
			noAdvantage++
		}
	}

	useful := 0
	popFlashes := 0
	for _, f := range flashes {
		if f.IsUseful {
			useful++
		}
		if f.IsPopFlash {
			popFlashes++
		}
	}

	headshots := 0
	for _, k := range bundle.Kills {
		if k.Headshot {
			headshots++
		}
	}

	badCrosshairPct := pct(crosshair.BadPlacementCount, totalDeaths)
	avoidablePct := pct(avoidable, totalDeaths)
	noAdvantagePct := pct(noAdvantage, totalDeaths)
	flashUsefulPct := pct(useful, totalFlashes)
	popFlashPct := pct(popFlashes, totalFlashes)
	hsr := pct(headshots, totalKills)

	priorities := priority.Determine(priority.Metrics{
		BadCrosshairPct:    badCrosshairPct,
		AvoidablePct:       avoidablePct,
		NoAdvantagePct:     noAdvantagePct,
		FlashUsefulPct:     flashUsefulPct,
		PopFlashPct:        popFlashPct,
		HeadshotRate:       hsr,
		ExpensiveDeathsPct: eco.Summary.ExpensiveDeathPct,
	}, totalFlashes)

	return &model.MatchAnalysis{
		Summary: model.Summary{
			TotalKills:          totalKills,
			TotalDeaths:         totalDeaths,
			KDRatio:             round2(model.KD(totalKills, totalDeaths)),
			HeadshotRate:        round1(hsr),
			BadCrosshairPct:     round1(badCrosshairPct),
			AvoidableDeathsPct:  round1(avoidablePct),
			NoAdvantageDuelsPct: round1(noAdvantagePct),
			FlashUsefulPct:      round1(flashUsefulPct),
			PopFlashPct:         round1(popFlashPct),
			AvgCrosshairOffset:  round1(crosshair.AvgOffset),
			TotalFlashes:        totalFlashes,
			TotalValueLost:      eco.Summary.TotalValueLost,
			AvgDeathCost:        eco.Summary.AvgDeathCost,
			ExpensiveDeathsPct:  eco.Summary.ExpensiveDeathPct,
		},
		Crosshair:   crosshair,
		Deaths:      deaths,
		Kills:       kills,
		Flashes:     flashes,
		Economy:     eco,
		Positioning: positioning,
		Priorities:  priorities,
	}
}
