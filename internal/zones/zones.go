// Package zones maps world coordinates to named map areas and scores
// per-zone performance. Zone tables are hand-calibrated axis-aligned
// rectangles; the first matching rectangle wins, so table order is
// part of the calibration.
package zones

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pable/go-cs-coach/internal/model"
)

type rect struct {
	minX, maxX, minY, maxY float64
	name                   string
}

var mapZones = map[string][]rect{
	"de_dust2": {
		{-2600, -1800, 1400, 2600, "T Spawn"},
		{-1800, -800, 1400, 2600, "Long Doors"},
		{-800, 600, 1400, 2600, "Long"},
		{600, 1600, 1400, 2600, "A Site"},
		{1600, 2600, 1400, 2600, "CT Spawn"},

		{-2600, -1800, -600, 1400, "Tunnels"},
		{-1800, -800, -600, 1400, "Mid Doors"},
		{-800, 600, -600, 1400, "Mid"},
		{600, 1600, -600, 1400, "B Doors"},
		{1600, 2600, -600, 1400, "B Site"},

		{-2600, -1800, -2600, -600, "Lower Tunnels"},
		{-1800, 2600, -2600, -600, "Outside B"},
	},
	"de_mirage": {
		{-3300, -2200, -1800, -300, "T Spawn"},
		{-2200, -1100, -1800, -300, "T Ramp"},
		{-1100, 200, -1800, -300, "Palace"},
		{200, 1400, -1800, -300, "A Site"},
		{1400, 2600, -1800, -300, "CT Spawn"},

		{-2200, -1100, -300, 1200, "Top Mid"},
		{-1100, 200, -300, 1200, "Mid"},
		{200, 1400, -300, 1200, "Connector"},

		{-2200, -1100, 1200, 2600, "Underpass"},
		{-1100, 200, 1200, 2600, "Apartments"},
		{200, 1400, 1200, 2600, "B Site"},
	},
	"de_inferno": {
		{-2800, -1600, -2400, -800, "T Spawn"},
		{-1600, -400, -2400, -800, "Banana"},
		{-400, 800, -2400, -800, "B Site"},

		{-2800, -1600, -800, 800, "Second Mid"},
		{-1600, -400, -800, 800, "Mid"},
		{-400, 800, -800, 800, "Arch"},
		{800, 2000, -800, 800, "Pit"},

		{-1600, -400, 800, 2200, "Apartments"},
		{-400, 800, 800, 2200, "Balcony"},
		{800, 2000, 800, 2200, "A Site"},
		{2000, 3200, 800, 2200, "CT Spawn"},
	},
}

// UnknownZone is the fallback for unmapped coordinates and maps
// without a zone table.
const UnknownZone = "Unknown"

// SupportedMaps lists the maps with a zone table, sorted.
func SupportedMaps() []string {
	maps := make([]string, 0, len(mapZones))
	for name := range mapZones {
		maps = append(maps, name)
	}
	sort.Strings(maps)
	return maps
}

// Lookup returns the zone name containing (x, y) on the given map.
// Bounds are inclusive and the first matching rectangle wins.
func Lookup(mapName string, x, y float64) string {
	for _, z := range mapZones[strings.ToLower(mapName)] {
		if z.minX <= x && x <= z.maxX && z.minY <= y && y <= z.maxY {
			return z.name
		}
	}
	return UnknownZone
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Analyze tallies deaths and kills per zone and derives per-zone
// performance, danger and strong zone lists and heatmap coordinates.
func Analyze(deaths []model.DeathEvent, kills []model.KillEvent, mapName string) model.PositioningAnalysis {
	mapName = strings.ToLower(mapName)

	deathCounts := map[string]int{}
	heat := model.Heatmap{DeathPositions: []model.Coord{}, KillPositions: []model.Coord{}}
	for _, d := range deaths {
		zone := UnknownZone
		if d.Position != nil {
			zone = Lookup(mapName, d.Position.X, d.Position.Y)
			heat.DeathPositions = append(heat.DeathPositions, model.Coord{X: d.Position.X, Y: d.Position.Y})
		}
		deathCounts[zone]++
	}

	killCounts := map[string]int{}
	for _, k := range kills {
		zone := UnknownZone
		if k.Position != nil {
			zone = Lookup(mapName, k.Position.X, k.Position.Y)
			heat.KillPositions = append(heat.KillPositions, model.Coord{X: k.Position.X, Y: k.Position.Y})
		}
		killCounts[zone]++
	}

	perf := map[string]model.ZonePerformance{}
	for zone := range union(deathCounts, killCounts) {
		k, d := killCounts[zone], deathCounts[zone]
		kd := round2(model.KD(k, d))
		label := "average"
		if kd > 1.0 {
			label = "strong"
		} else if kd < 0.5 {
			label = "weak"
		}
		perf[zone] = model.ZonePerformance{
			Kills:       k,
			Deaths:      d,
			KDRatio:     kd,
			Engagements: k + d,
			Performance: label,
		}
	}

	return model.PositioningAnalysis{
		MapName:         mapName,
		DeathZones:      tally(deathCounts, len(deaths)),
		KillZones:       tally(killCounts, len(kills)),
		ZonePerformance: perf,
		DangerZones:     dangerZones(perf),
		StrongZones:     strongZones(perf),
		Heatmap:         heat,
	}
}

func union(a, b map[string]int) map[string]struct{} {
	out := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

// tally builds the by-zone count map plus a deterministic top-3 list
// (count desc, name asc on ties).
func tally(counts map[string]int, total int) model.ZoneTally {
	top := make([]model.ZoneCount, 0, len(counts))
	for zone, n := range counts {
		top = append(top, model.ZoneCount{Zone: zone, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Zone < top[j].Zone
	})
	if len(top) > 3 {
		top = top[:3]
	}
	return model.ZoneTally{ByZone: counts, Top: top, Total: total}
}

func dangerZones(perf map[string]model.ZonePerformance) []model.DangerZone {
	out := []model.DangerZone{}
	for zone, p := range perf {
		if p.KDRatio < 0.7 && p.Engagements >= 2 {
			severity := math.Min(100, float64(p.Deaths)*10+(1.0-p.KDRatio)*20)
			out = append(out, model.DangerZone{
				Zone:     zone,
				KDRatio:  p.KDRatio,
				Deaths:   p.Deaths,
				Kills:    p.Kills,
				Severity: severity,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		return out[i].Zone < out[j].Zone
	})
	return out
}

func strongZones(perf map[string]model.ZonePerformance) []model.StrongZone {
	out := []model.StrongZone{}
	for zone, p := range perf {
		if p.KDRatio >= 1.5 && p.Engagements >= 2 {
			out = append(out, model.StrongZone{
				Zone:    zone,
				KDRatio: p.KDRatio,
				Deaths:  p.Deaths,
				Kills:   p.Kills,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].KDRatio != out[j].KDRatio {
			return out[i].KDRatio > out[j].KDRatio
		}
		return out[i].Zone < out[j].Zone
	})
	return out
}

// Recommendations turns the zone picture into positioning advice.
func Recommendations(p model.PositioningAnalysis) []string {
	recs := []string{}

	if len(p.DangerZones) > 0 {
		top := p.DangerZones[0]
		recs = append(recs, fmt.Sprintf(
			"Avoid %s: %d deaths at K/D %.2f. Play safer or rotate away from this zone",
			top.Zone, top.Deaths, top.KDRatio))
		if len(p.DangerZones) > 1 {
			second := p.DangerZones[1]
			recs = append(recs, fmt.Sprintf(
				"%s is also a problem spot: %d deaths", second.Zone, second.Deaths))
		}
	}

	if len(p.StrongZones) > 0 {
		top := p.StrongZones[0]
		recs = append(recs, fmt.Sprintf(
			"Exploit %s: K/D %.2f. Take more fights here", top.Zone, top.KDRatio))
	}

	if len(p.DangerZones) > 5 {
		recs = append(recs, "Deaths are spread across many zones. Focus on holding 2 or 3 key positions")
	}

	return recs
}
