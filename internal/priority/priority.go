// Package priority ranks the gameplay gaps found in a match into the
// top training priorities. Each rule fires above (or below) a fixed
// threshold and carries a severity so the worst habits surface first.
package priority

import (
	"fmt"
	"math"
	"sort"

	"github.com/pable/go-cs-coach/internal/model"
)

// Category labels double as aggregation keys across matches, so they
// stay stable and ASCII.
const (
	CategoryCrosshair     = "Crosshair placement"
	CategoryAvoidable     = "Avoidable deaths"
	CategoryDisadvantaged = "Disadvantaged duels"
	CategoryUtility       = "Utility usage"
	CategoryPopFlash      = "Pop flashes"
	CategoryHeadshot      = "Headshot rate"
	CategoryEconomy       = "Economic discipline"
	CategoryKeepItUp      = "Keep it up"
)

// Metrics is the per-match summary slice the ranking rules read.
type Metrics struct {
	BadCrosshairPct    float64
	AvoidablePct       float64
	NoAdvantagePct     float64
	FlashUsefulPct     float64
	PopFlashPct        float64
	HeadshotRate       float64
	ExpensiveDeathsPct float64
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// Determine applies every threshold rule, sorts firing issues by
// severity and returns the top three. With nothing to fix it returns a
// single zero-severity entry so reports always have a priorities row.
func Determine(m Metrics, flashCount int) []model.Priority {
	issues := []model.Priority{}

	if m.BadCrosshairPct > 50 {
		issues = append(issues, model.Priority{
			Category:       CategoryCrosshair,
			Stats:          fmt.Sprintf("%.0f%% of duels lost with pre-aim off by more than 30 degrees", m.BadCrosshairPct),
			Recommendation: "Drill pre-aim on common angles, deathmatch with placement focus",
			Severity:       m.BadCrosshairPct,
		})
	}

	if m.AvoidablePct > 40 {
		issues = append(issues, model.Priority{
			Category:       CategoryAvoidable,
			Stats:          fmt.Sprintf("%.0f%% of deaths were avoidable", m.AvoidablePct),
			Recommendation: "Stay with teammates and use utility before peeking",
			Severity:       m.AvoidablePct,
		})
	}

	if m.NoAdvantagePct > 40 {
		issues = append(issues, model.Priority{
			Category:       CategoryDisadvantaged,
			Stats:          fmt.Sprintf("%.0f%% of duels taken without any advantage", m.NoAdvantagePct),
			Recommendation: "Create an edge before peeking: flash support and jiggle peeks",
			Severity:       m.NoAdvantagePct,
		})
	}

	if m.FlashUsefulPct < 60 {
		issues = append(issues, model.Priority{
			Category:       CategoryUtility,
			Stats:          fmt.Sprintf("Only %.0f%% of flashes were useful", m.FlashUsefulPct),
			Recommendation: "Throw flashes to open duels, not to empty the inventory",
			Severity:       100 - m.FlashUsefulPct,
		})
	}

	if m.PopFlashPct < 40 && flashCount > 3 {
		issues = append(issues, model.Priority{
			Category:       CategoryPopFlash,
			Stats:          fmt.Sprintf("Only %.0f%% of flashes were pop flashes", m.PopFlashPct),
			Recommendation: "Learn the pop flash lineups for your maps",
			Severity:       100 - m.PopFlashPct,
		})
	}

	if m.HeadshotRate < 35 {
		issues = append(issues, model.Priority{
			Category:       CategoryHeadshot,
			Stats:          fmt.Sprintf("Headshot rate at %.0f%% (target: 40%%+)", m.HeadshotRate),
			Recommendation: "Deathmatch aiming for the head only",
			Severity:       35 - m.HeadshotRate,
		})
	}

	if m.ExpensiveDeathsPct > 50 {
		issues = append(issues, model.Priority{
			Category:       CategoryEconomy,
			Stats:          fmt.Sprintf("%.0f%% of deaths lose more than $3000", m.ExpensiveDeathsPct),
			Recommendation: "Protect expensive gear, play safer on full buys",
			Severity:       m.ExpensiveDeathsPct * 0.8,
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity > issues[j].Severity
	})
	if len(issues) > 3 {
		issues = issues[:3]
	}
	for i := range issues {
		issues[i].Severity = round1(issues[i].Severity)
	}

	if len(issues) == 0 {
		issues = append(issues, model.Priority{
			Category:       CategoryKeepItUp,
			Stats:          "Solid overall level",
			Recommendation: "Focus on consistency and clutch composure",
			Severity:       0,
		})
	}
	return issues
}
