// Package aggregate merges per-match analyses into a cross-match
// picture: averaged metrics with consistency labels, exact totals,
// recurring priorities, zone rollups and first-half versus second-half
// trends. Matches must be added in chronological order; trends assume
// it.
package aggregate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/pable/go-cs-coach/internal/model"
)

// ErrNoMatches is returned by Compute when nothing was added.
var ErrNoMatches = errors.New("no matches to aggregate")

// Aggregator accumulates match analyses. The zero value is usable.
type Aggregator struct {
	analyses []*model.MatchAnalysis
	names    []string
	mapName  string
}

// New returns an empty Aggregator.
func New() *Aggregator { return &Aggregator{} }

// Add appends one match. The map name is captured from the first
// match; a folder of demos is expected to share one map.
func (g *Aggregator) Add(a *model.MatchAnalysis, name string) {
	g.analyses = append(g.analyses, a)
	g.names = append(g.names, name)
	if g.mapName == "" {
		g.mapName = a.Positioning.MapName
	}
}

// Len reports how many matches were added.
func (g *Aggregator) Len() int { return len(g.analyses) }

func round0(v float64) float64 { return math.Round(v) }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// stdev is the sample standard deviation (n-1), 0 for fewer than two
// samples.
func stdev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	sum := 0.0
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

// Compute merges everything added so far.
func (g *Aggregator) Compute() (*model.AggregatedAnalysis, error) {
	if len(g.analyses) == 0 {
		return nil, ErrNoMatches
	}

	return &model.AggregatedAnalysis{
		Meta: model.AggregateMeta{
			TotalDemos: len(g.analyses),
			DemoNames:  g.names,
			MapName:    g.mapName,
		},
		Summary:     g.summary(),
		Crosshair:   g.crosshair(),
		Deaths:      g.deaths(),
		Utility:     g.utility(),
		Economy:     g.economy(),
		Positioning: g.positioning(),
		Priorities:  g.priorities(),
		Trends:      g.trends(),
		BestWorst:   g.bestWorst(),
	}, nil
}

func (g *Aggregator) collect(f func(model.Summary) float64) []float64 {
	out := make([]float64, len(g.analyses))
	for i, a := range g.analyses {
		out[i] = f(a.Summary)
	}
	return out
}

func (g *Aggregator) summary() model.AggregateSummary {
	kds := g.collect(func(s model.Summary) float64 { return s.KDRatio })
	hsrs := g.collect(func(s model.Summary) float64 { return s.HeadshotRate })

	totalKills, totalDeaths, totalFlashes, totalValueLost := 0, 0, 0, 0
	for _, a := range g.analyses {
		totalKills += a.Summary.TotalKills
		totalDeaths += a.Summary.TotalDeaths
		totalFlashes += a.Summary.TotalFlashes
		totalValueLost += a.Summary.TotalValueLost
	}

	stdKD := stdev(kds)
	stdHSR := stdev(hsrs)

	consistencyKD := "Low"
	if stdKD < 0.3 {
		consistencyKD = "High"
	} else if stdKD < 0.6 {
		consistencyKD = "Medium"
	}
	consistencyHSR := "Low"
	if stdHSR < 5 {
		consistencyHSR = "High"
	} else if stdHSR < 10 {
		consistencyHSR = "Medium"
	}

	return model.AggregateSummary{
		AvgKDRatio:             round2(mean(kds)),
		StdKDRatio:             round2(stdKD),
		AvgHeadshotRate:        round1(mean(hsrs)),
		StdHeadshotRate:        round1(stdHSR),
		AvgBadCrosshairPct:     round1(mean(g.collect(func(s model.Summary) float64 { return s.BadCrosshairPct }))),
		AvgAvoidableDeathsPct:  round1(mean(g.collect(func(s model.Summary) float64 { return s.AvoidableDeathsPct }))),
		AvgNoAdvantageDuelsPct: round1(mean(g.collect(func(s model.Summary) float64 { return s.NoAdvantageDuelsPct }))),
		AvgFlashUsefulPct:      round1(mean(g.collect(func(s model.Summary) float64 { return s.FlashUsefulPct }))),
		AvgPopFlashPct:         round1(mean(g.collect(func(s model.Summary) float64 { return s.PopFlashPct }))),
		AvgCrosshairOffset:     round1(mean(g.collect(func(s model.Summary) float64 { return s.AvgCrosshairOffset }))),
		TotalKills:             totalKills,
		TotalDeaths:            totalDeaths,
		TotalFlashes:           totalFlashes,
		TotalValueLost:         totalValueLost,
		AvgDeathCost:           round0(mean(g.collect(func(s model.Summary) float64 { return float64(s.AvgDeathCost) }))),
		AvgExpensiveDeathsPct:  round1(mean(g.collect(func(s model.Summary) float64 { return s.ExpensiveDeathsPct }))),
		ConsistencyKD:          consistencyKD,
		ConsistencyHSR:         consistencyHSR,
	}
}

func (g *Aggregator) crosshair() model.AggregateCrosshair {
	offsets := make([]float64, 0, len(g.analyses))
	totalAnalyzed, totalBad := 0, 0
	terrible := []model.Placement{}
	for _, a := range g.analyses {
		offsets = append(offsets, a.Crosshair.AvgOffset)
		totalAnalyzed += a.Crosshair.TotalAnalyzed
		totalBad += a.Crosshair.BadPlacementCount
		terrible = append(terrible, a.Crosshair.TerriblePlacements...)
	}

	sort.SliceStable(terrible, func(i, j int) bool { return terrible[i].Offset > terrible[j].Offset })
	if len(terrible) > 10 {
		terrible = terrible[:10]
	}

	badPct := 0.0
	if totalAnalyzed > 0 {
		badPct = float64(totalBad) / float64(totalAnalyzed) * 100
	}

	return model.AggregateCrosshair{
		AvgOffset:         round1(mean(offsets)),
		TotalAnalyzed:     totalAnalyzed,
		TotalBadPlacement: totalBad,
		BadPlacementPct:   round1(badPct),
		WorstPlacements:   terrible,
	}
}

func (g *Aggregator) deaths() model.AggregateDeaths {
	totalDeaths, totalAvoidable, totalNoAdvantage := 0, 0, 0
	weaponCounts := map[string]int{}
	for _, a := range g.analyses {
		totalDeaths += len(a.Deaths)
		for _, d := range a.Deaths {
			if d.IsAvoidable {
				totalAvoidable++
			}
			if !d.HadAnyAdvantage {
				totalNoAdvantage++
			}
			weaponCounts[d.Weapon]++
		}
	}

	weapons := make([]model.WeaponCount, 0, len(weaponCounts))
	for w, n := range weaponCounts {
		weapons = append(weapons, model.WeaponCount{Weapon: w, Count: n})
	}
	sort.Slice(weapons, func(i, j int) bool {
		if weapons[i].Count != weapons[j].Count {
			return weapons[i].Count > weapons[j].Count
		}
		return weapons[i].Weapon < weapons[j].Weapon
	})
	if len(weapons) > 5 {
		weapons = weapons[:5]
	}

	avoidablePct, noAdvantagePct := 0.0, 0.0
	if totalDeaths > 0 {
		avoidablePct = round1(float64(totalAvoidable) / float64(totalDeaths) * 100)
		noAdvantagePct = round1(float64(totalNoAdvantage) / float64(totalDeaths) * 100)
	}

	return model.AggregateDeaths{
		TotalDeaths:        totalDeaths,
		TotalAvoidable:     totalAvoidable,
		AvoidablePct:       avoidablePct,
		TotalNoAdvantage:   totalNoAdvantage,
		NoAdvantagePct:     noAdvantagePct,
		CommonDeathWeapons: weapons,
	}
}

func (g *Aggregator) utility() model.AggregateUtility {
	totalFlashes, totalUseful, totalPop := 0, 0, 0
	for _, a := range g.analyses {
		totalFlashes += len(a.Flashes)
		for _, f := range a.Flashes {
			if f.IsUseful {
				totalUseful++
			}
			if f.IsPopFlash {
				totalPop++
			}
		}
	}

	usefulPct, popPct := 0.0, 0.0
	if totalFlashes > 0 {
		usefulPct = round1(float64(totalUseful) / float64(totalFlashes) * 100)
		popPct = round1(float64(totalPop) / float64(totalFlashes) * 100)
	}

	return model.AggregateUtility{
		TotalFlashes:    totalFlashes,
		TotalUseful:     totalUseful,
		UsefulPct:       usefulPct,
		TotalPopFlashes: totalPop,
		PopFlashPct:     popPct,
	}
}

func (g *Aggregator) economy() model.AggregateEconomy {
	totalLost := 0
	costs := make([]float64, 0, len(g.analyses))
	expensivePcts := make([]float64, 0, len(g.analyses))
	roundTypes := map[string]model.RoundTypeStats{}

	for _, a := range g.analyses {
		totalLost += a.Economy.Summary.TotalValueLost
		costs = append(costs, float64(a.Economy.Summary.AvgDeathCost))
		expensivePcts = append(expensivePcts, a.Economy.Summary.ExpensiveDeathPct)
		for buyType, s := range a.Economy.RoundTypes {
			agg := roundTypes[buyType]
			agg.Deaths += s.Deaths
			agg.TotalValueLost += s.TotalValueLost
			roundTypes[buyType] = agg
		}
	}

	for buyType, s := range roundTypes {
		if s.Deaths > 0 {
			s.AvgValueLost = s.TotalValueLost / s.Deaths
			roundTypes[buyType] = s
		}
	}

	return model.AggregateEconomy{
		TotalValueLost:        totalLost,
		AvgDeathCost:          round0(mean(costs)),
		AvgExpensiveDeathsPct: round1(mean(expensivePcts)),
		RoundTypes:            roundTypes,
	}
}

func (g *Aggregator) positioning() model.AggregatePositioning {
	zones := map[string]model.ZoneStats{}
	for _, a := range g.analyses {
		for name, p := range a.Positioning.ZonePerformance {
			z := zones[name]
			z.Kills += p.Kills
			z.Deaths += p.Deaths
			zones[name] = z
		}
	}
	for name, z := range zones {
		z.KDRatio = round2(model.KD(z.Kills, z.Deaths))
		z.Engagements = z.Kills + z.Deaths
		zones[name] = z
	}

	ranked := []model.AggregateZone{}
	for name, z := range zones {
		if z.Engagements >= 3 {
			ranked = append(ranked, model.AggregateZone{
				Zone:    name,
				KDRatio: z.KDRatio,
				Kills:   z.Kills,
				Deaths:  z.Deaths,
			})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].KDRatio != ranked[j].KDRatio {
			return ranked[i].KDRatio < ranked[j].KDRatio
		}
		return ranked[i].Zone < ranked[j].Zone
	})

	worst := ranked
	if len(worst) > 3 {
		worst = worst[:3]
	}
	best := make([]model.AggregateZone, 0, 3)
	for i := len(ranked) - 1; i >= 0 && len(best) < 3; i-- {
		best = append(best, ranked[i])
	}

	return model.AggregatePositioning{
		MapName:         g.mapName,
		ZonePerformance: zones,
		WorstZones:      worst,
		BestZones:       best,
	}
}

func (g *Aggregator) priorities() []model.AggregatePriority {
	type bucket struct {
		count         int
		totalSeverity float64
	}
	buckets := map[string]*bucket{}
	for _, a := range g.analyses {
		for _, p := range a.Priorities {
			b := buckets[p.Category]
			if b == nil {
				b = &bucket{}
				buckets[p.Category] = b
			}
			b.count++
			b.totalSeverity += p.Severity
		}
	}

	out := make([]model.AggregatePriority, 0, len(buckets))
	n := len(g.analyses)
	for category, b := range buckets {
		out = append(out, model.AggregatePriority{
			Category:    category,
			Frequency:   round0(float64(b.count) / float64(n) * 100),
			AvgSeverity: round1(b.totalSeverity / float64(b.count)),
			AppearsIn:   fmt.Sprintf("%d/%d demos", b.count, n),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgSeverity != out[j].AvgSeverity {
			return out[i].AvgSeverity > out[j].AvgSeverity
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// trends splits the chronological sequence at mid = (n+1)/2 so the
// first half takes the extra match on odd counts, then compares the
// half means.
func (g *Aggregator) trends() model.Trends {
	n := len(g.analyses)
	if n < 2 {
		return model.Trends{Available: false}
	}

	mid := (n + 1) / 2
	firstKD := make([]float64, 0, mid)
	secondKD := make([]float64, 0, n-mid)
	firstHSR := make([]float64, 0, mid)
	secondHSR := make([]float64, 0, n-mid)
	firstXH := make([]float64, 0, mid)
	secondXH := make([]float64, 0, n-mid)

	for i, a := range g.analyses {
		s := a.Summary
		if i < mid {
			firstKD = append(firstKD, s.KDRatio)
			firstHSR = append(firstHSR, s.HeadshotRate)
			firstXH = append(firstXH, s.BadCrosshairPct)
		} else {
			secondKD = append(secondKD, s.KDRatio)
			secondHSR = append(secondHSR, s.HeadshotRate)
			secondXH = append(secondXH, s.BadCrosshairPct)
		}
	}

	label := func(change float64) string {
		switch {
		case change > 0:
			return "Improving"
		case change < 0:
			return "Declining"
		default:
			return "Stable"
		}
	}

	kdChange := mean(secondKD) - mean(firstKD)
	hsrChange := mean(secondHSR) - mean(firstHSR)
	xhChange := mean(secondXH) - mean(firstXH)

	return model.Trends{
		Available:       true,
		KDTrend:         label(kdChange),
		KDChange:        round2(kdChange),
		HSRTrend:        label(hsrChange),
		HSRChange:       round1(hsrChange),
		CrosshairTrend:  label(-xhChange), // fewer bad placements is better
		CrosshairChange: round1(xhChange),
	}
}

func (g *Aggregator) bestWorst() model.BestWorst {
	type entry struct {
		value float64
		name  string
	}

	byKD := make([]entry, len(g.analyses))
	byCrosshair := make([]entry, len(g.analyses))
	for i, a := range g.analyses {
		byKD[i] = entry{a.Summary.KDRatio, g.names[i]}
		byCrosshair[i] = entry{a.Summary.BadCrosshairPct, g.names[i]}
	}
	sort.SliceStable(byKD, func(i, j int) bool { return byKD[i].value < byKD[j].value })
	sort.SliceStable(byCrosshair, func(i, j int) bool { return byCrosshair[i].value < byCrosshair[j].value })

	last := len(g.analyses) - 1
	return model.BestWorst{
		BestKD:         model.DemoExtreme{Demo: byKD[last].name, Value: byKD[last].value},
		WorstKD:        model.DemoExtreme{Demo: byKD[0].name, Value: byKD[0].value},
		BestCrosshair:  model.DemoExtreme{Demo: byCrosshair[0].name, Value: byCrosshair[0].value},
		WorstCrosshair: model.DemoExtreme{Demo: byCrosshair[last].name, Value: byCrosshair[last].value},
	}
}
