// Package report renders analysis results as terminal tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/pable/go-cs-coach/internal/model"
	"github.com/pable/go-cs-coach/internal/rank"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintMatchHeader prints a one-line header for a stored match.
func PrintMatchHeader(w io.Writer, name string, a *model.MatchAnalysis) {
	fmt.Fprintf(w, "\nMatch: %s  |  Map: %s  |  K/D: %.2f (%d/%d)\n\n",
		name, a.Positioning.MapName, a.Summary.KDRatio, a.Summary.TotalKills, a.Summary.TotalDeaths)
}

// PrintMatchReport renders the full single-match report.
func PrintMatchReport(w io.Writer, name string, a *model.MatchAnalysis) {
	PrintMatchHeader(w, name, a)
	PrintSummaryTable(w, a.Summary)

	fmt.Fprintln(w, "\nTraining priorities:")
	PrintPriorities(w, a.Priorities)

	fmt.Fprintln(w, "\nEconomy:")
	PrintEconomyTable(w, a.Economy)

	fmt.Fprintln(w, "\nPositioning:")
	PrintPositioningTable(w, a.Positioning)

	if len(a.Crosshair.TerriblePlacements) > 0 {
		fmt.Fprintln(w, "\nWorst crosshair placements:")
		PrintPlacements(w, a.Crosshair.TerriblePlacements)
	}
}

// PrintSummaryTable prints the headline metrics of one match.
func PrintSummaryTable(w io.Writer, s model.Summary) {
	table := newTable(w)
	table.Header("K", "D", "K/D", "HS%", "BAD_XHAIR%", "AVOID%", "NO_ADV%",
		"FLASH_USE%", "POP_FLASH%", "AVG_OFFSET", "$LOST")
	table.Append(
		strconv.Itoa(s.TotalKills),
		strconv.Itoa(s.TotalDeaths),
		fmt.Sprintf("%.2f", s.KDRatio),
		fmt.Sprintf("%.1f%%", s.HeadshotRate),
		fmt.Sprintf("%.1f%%", s.BadCrosshairPct),
		fmt.Sprintf("%.1f%%", s.AvoidableDeathsPct),
		fmt.Sprintf("%.1f%%", s.NoAdvantageDuelsPct),
		fmt.Sprintf("%.1f%%", s.FlashUsefulPct),
		fmt.Sprintf("%.1f%%", s.PopFlashPct),
		fmt.Sprintf("%.1f°", s.AvgCrosshairOffset),
		strconv.Itoa(s.TotalValueLost),
	)
	table.Render()
}

// PrintPriorities prints the ranked training priorities.
func PrintPriorities(w io.Writer, priorities []model.Priority) {
	table := newTable(w)
	table.Header("PRIORITY", "STATS", "RECOMMENDATION", "SEVERITY")
	for _, p := range priorities {
		table.Append(p.Category, p.Stats, p.Recommendation, fmt.Sprintf("%.1f", p.Severity))
	}
	table.Render()
}

// PrintPlacements prints a placement list sorted worst-first.
func PrintPlacements(w io.Writer, placements []model.Placement) {
	sorted := append([]model.Placement(nil), placements...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset > sorted[j].Offset })

	table := newTable(w)
	table.Header("TICK", "OFFSET", "ATTACKER")
	for _, p := range sorted {
		table.Append(strconv.Itoa(p.Tick), fmt.Sprintf("%.1f°", p.Offset), p.Attacker)
	}
	table.Render()
}

// buyTypeOrder keeps economy rows in escalation order.
func buyTypeOrder(buyType string) int {
	switch buyType {
	case "pistol":
		return 0
	case "eco":
		return 1
	case "force_buy":
		return 2
	case "full_buy":
		return 3
	default:
		return 4
	}
}

// PrintEconomyTable prints the economy summary and buy-type breakdown.
func PrintEconomyTable(w io.Writer, e model.EconomyAnalysis) {
	fmt.Fprintf(w, "Value lost: $%d  |  Avg death cost: $%d  |  Expensive deaths: %d (%.1f%%)  |  Net: $%d\n",
		e.Summary.TotalValueLost, e.Summary.AvgDeathCost,
		e.Summary.ExpensiveDeaths, e.Summary.ExpensiveDeathPct, e.Summary.NetEconomy)

	types := make([]string, 0, len(e.RoundTypes))
	for name := range e.RoundTypes {
		types = append(types, name)
	}
	sort.Slice(types, func(i, j int) bool { return buyTypeOrder(types[i]) < buyTypeOrder(types[j]) })

	table := newTable(w)
	table.Header("BUY_TYPE", "DEATHS", "AVG_$LOST", "TOTAL_$LOST")
	for _, name := range types {
		s := e.RoundTypes[name]
		table.Append(name, strconv.Itoa(s.Deaths), strconv.Itoa(s.AvgValueLost), strconv.Itoa(s.TotalValueLost))
	}
	table.Render()
}

// PrintPositioningTable prints zone performance plus danger and strong
// zone callouts.
func PrintPositioningTable(w io.Writer, p model.PositioningAnalysis) {
	zones := make([]string, 0, len(p.ZonePerformance))
	for name := range p.ZonePerformance {
		zones = append(zones, name)
	}
	sort.Strings(zones)

	table := newTable(w)
	table.Header("ZONE", "K", "D", "K/D", "RATING")
	for _, name := range zones {
		z := p.ZonePerformance[name]
		table.Append(name, strconv.Itoa(z.Kills), strconv.Itoa(z.Deaths),
			fmt.Sprintf("%.2f", z.KDRatio), z.Performance)
	}
	table.Render()

	for _, d := range p.DangerZones {
		fmt.Fprintf(w, "  danger: %s (%d deaths, K/D %.2f, severity %.0f)\n",
			d.Zone, d.Deaths, d.KDRatio, d.Severity)
	}
	for _, s := range p.StrongZones {
		fmt.Fprintf(w, "  strong: %s (K/D %.2f)\n", s.Zone, s.KDRatio)
	}
	for _, r := range p.Recommendations {
		fmt.Fprintf(w, "  > %s\n", r)
	}
}

// PrintAggregateReport renders the cross-match report.
func PrintAggregateReport(w io.Writer, agg *model.AggregatedAnalysis) {
	fmt.Fprintf(w, "\n%d demos on %s\n\n", agg.Meta.TotalDemos, agg.Meta.MapName)

	s := agg.Summary
	table := newTable(w)
	table.Header("AVG_K/D", "STD", "AVG_HS%", "BAD_XHAIR%", "AVOID%",
		"FLASH_USE%", "AVG_OFFSET", "K", "D", "CONSISTENCY")
	table.Append(
		fmt.Sprintf("%.2f", s.AvgKDRatio),
		fmt.Sprintf("%.2f", s.StdKDRatio),
		fmt.Sprintf("%.1f%%", s.AvgHeadshotRate),
		fmt.Sprintf("%.1f%%", s.AvgBadCrosshairPct),
		fmt.Sprintf("%.1f%%", s.AvgAvoidableDeathsPct),
		fmt.Sprintf("%.1f%%", s.AvgFlashUsefulPct),
		fmt.Sprintf("%.1f°", s.AvgCrosshairOffset),
		strconv.Itoa(s.TotalKills),
		strconv.Itoa(s.TotalDeaths),
		s.ConsistencyKD,
	)
	table.Render()

	if len(agg.Priorities) > 0 {
		fmt.Fprintln(w, "\nRecurring priorities:")
		pt := newTable(w)
		pt.Header("PRIORITY", "FREQUENCY", "AVG_SEVERITY", "APPEARS_IN")
		for _, p := range agg.Priorities {
			pt.Append(p.Category, fmt.Sprintf("%.0f%%", p.Frequency),
				fmt.Sprintf("%.1f", p.AvgSeverity), p.AppearsIn)
		}
		pt.Render()
	}

	if agg.Trends.Available {
		fmt.Fprintln(w, "\nTrends (first half vs second half):")
		tt := newTable(w)
		tt.Header("METRIC", "TREND", "CHANGE")
		tt.Append("K/D", agg.Trends.KDTrend, fmt.Sprintf("%+.2f", agg.Trends.KDChange))
		tt.Append("HS%", agg.Trends.HSRTrend, fmt.Sprintf("%+.1f", agg.Trends.HSRChange))
		tt.Append("Bad crosshair %", agg.Trends.CrosshairTrend, fmt.Sprintf("%+.1f", agg.Trends.CrosshairChange))
		tt.Render()
	}

	if len(agg.Positioning.WorstZones) > 0 || len(agg.Positioning.BestZones) > 0 {
		fmt.Fprintln(w, "\nZones:")
		zt := newTable(w)
		zt.Header(" ", "ZONE", "K", "D", "K/D")
		for _, z := range agg.Positioning.WorstZones {
			zt.Append("worst", z.Zone, strconv.Itoa(z.Kills), strconv.Itoa(z.Deaths), fmt.Sprintf("%.2f", z.KDRatio))
		}
		for _, z := range agg.Positioning.BestZones {
			zt.Append("best", z.Zone, strconv.Itoa(z.Kills), strconv.Itoa(z.Deaths), fmt.Sprintf("%.2f", z.KDRatio))
		}
		zt.Render()
	}

	bw := agg.BestWorst
	fmt.Fprintf(w, "\nBest K/D: %s (%.2f)  |  Worst K/D: %s (%.2f)\n",
		bw.BestKD.Demo, bw.BestKD.Value, bw.WorstKD.Demo, bw.WorstKD.Value)
	fmt.Fprintf(w, "Best pre-aim: %s (%.1f%% bad)  |  Worst pre-aim: %s (%.1f%% bad)\n",
		bw.BestCrosshair.Demo, bw.BestCrosshair.Value, bw.WorstCrosshair.Demo, bw.WorstCrosshair.Value)
}

// PrintRankCard renders a rank estimate.
func PrintRankCard(w io.Writer, r *rank.Result) {
	fmt.Fprintf(w, "\nEstimated rank: %s  |  ~%d Elo (%d-%d)  |  Confidence: %s\n",
		r.Label, r.Elo, r.EloMin, r.EloMax, r.Confidence)

	if len(r.Strengths) > 0 {
		fmt.Fprintf(w, "Strengths:  %s\n", joinList(r.Strengths))
	}
	if len(r.Weaknesses) > 0 {
		fmt.Fprintf(w, "Weaknesses: %s\n", joinList(r.Weaknesses))
	}

	if r.Progression != nil {
		fmt.Fprintf(w, "\nRoad to %s:\n", r.Progression.NextLabel)
		metrics := make([]string, 0, len(r.Progression.Gaps))
		for m := range r.Progression.Gaps {
			metrics = append(metrics, m)
		}
		sort.Strings(metrics)

		table := newTable(w)
		table.Header("METRIC", "CURRENT", "TARGET", "GAP", "STATUS")
		for _, m := range metrics {
			g := r.Progression.Gaps[m]
			table.Append(m,
				fmt.Sprintf("%.1f", g.Current),
				fmt.Sprintf("%.1f", g.Target),
				fmt.Sprintf("%.1f", g.Gap),
				g.Status)
		}
		table.Render()
	}
}

func joinList(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
