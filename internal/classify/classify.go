// Package classify turns raw death, kill and flash events into
// per-event judgments: crosshair placement quality, death avoidability
// and flash usefulness. All functions are pure; missing position
// samples make the geometric predicates return their neutral value.
package classify

import (
	"math"

	"github.com/pable/go-cs-coach/internal/geom"
	"github.com/pable/go-cs-coach/internal/model"
)

const (
	// TickRate is the demo tick rate all windows are expressed in.
	TickRate = 64

	// FlashWindowTicks is how far back a thrown flash still counts as
	// entry preparation (3 seconds).
	FlashWindowTicks = 192

	// CloseRangeUnits bounds a close-range duel.
	CloseRangeUnits = 500.0

	// BadOffsetDeg and TerribleOffsetDeg grade crosshair placement.
	BadOffsetDeg      = 30.0
	TerribleOffsetDeg = 60.0

	// TradeDistanceUnits is the radius used upstream when counting
	// teammates near a death.
	TradeDistanceUnits = 800.0
)

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// NoTeammateNearby reports whether the player died with nobody in
// trade range.
func NoTeammateNearby(d model.DeathEvent) bool { return d.TeammatesNearby == 0 }

// Isolated reports fewer than two teammates in range.
func Isolated(d model.DeathEvent) bool { return d.TeammatesNearby < 2 }

// HadNumbers reports at least one teammate in range.
func HadNumbers(d model.DeathEvent) bool { return d.TeammatesNearby > 0 }

// TradePossible reports whether a teammate was close enough to refrag.
// TeammatesNearby is counted within TradeDistanceUnits upstream.
func TradePossible(d model.DeathEvent) bool { return d.TeammatesNearby > 0 }

// ClosedAngleProxy treats dying to a headshot as evidence the duel was
// a held angle rather than an open fight.
func ClosedAngleProxy(d model.DeathEvent) bool { return d.Headshot }

// ThrewRecentFlash reports whether any flash was thrown inside the
// window [tick-FlashWindowTicks, tick) before the given tick.
func ThrewRecentFlash(flashes []model.FlashEvent, tick int) bool {
	for _, f := range flashes {
		if tick-FlashWindowTicks <= f.Tick && f.Tick < tick {
			return true
		}
	}
	return false
}

// CloseRange reports whether the duel happened under CloseRangeUnits.
// False when either position sample is missing.
func CloseRange(d model.DeathEvent) bool {
	if d.Position == nil || d.AttackerPosition == nil {
		return false
	}
	return geom.Distance(*d.Position, *d.AttackerPosition) < CloseRangeUnits
}

func orUnknown(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// ClassifyDeath applies both death rule sets. Avoidable: at least one
// risk factor (no teammate, no recent flash) and no offsetting
// advantage (recent flash, numbers or close range). Disadvantaged:
// none of recent flash, numbers, a held angle or a possible trade.
func ClassifyDeath(d model.DeathEvent, flashes []model.FlashEvent) model.DeathAnalysis {
	noTeammate := NoTeammateNearby(d)
	recentFlash := ThrewRecentFlash(flashes, d.Tick)
	numbers := HadNumbers(d)
	closeRange := CloseRange(d)

	advantage := recentFlash || numbers || closeRange

	riskCount := 0
	if noTeammate {
		riskCount++
	}
	if !recentFlash {
		riskCount++
	}

	return model.DeathAnalysis{
		Tick:            d.Tick,
		IsAvoidable:     riskCount >= 1 && !advantage,
		HadAnyAdvantage: advantage,
		IsDisadvantaged: !(recentFlash || numbers || ClosedAngleProxy(d) || TradePossible(d)),
		RiskFactors: model.RiskFactors{
			NoTeammate: noTeammate,
			Isolated:   Isolated(d),
			NoUtility:  !recentFlash,
		},
		Attacker: orUnknown(d.Attacker, "Unknown"),
		Weapon:   orUnknown(d.Weapon, "unknown"),
	}
}

// ClassifyDeaths maps ClassifyDeath over the deaths in order.
func ClassifyDeaths(deaths []model.DeathEvent, flashes []model.FlashEvent) []model.DeathAnalysis {
	out := make([]model.DeathAnalysis, 0, len(deaths))
	for _, d := range deaths {
		out = append(out, ClassifyDeath(d, flashes))
	}
	return out
}

// ClassifyKill measures crosshair placement at the kill tick. Missing
// positions leave the offset at zero and count as good placement.
func ClassifyKill(k model.KillEvent) model.KillAnalysis {
	offset := 0.0
	if k.Position != nil && k.VictimPosition != nil {
		offset = geom.AngularOffset(*k.Position, k.Pitch, k.Yaw, *k.VictimPosition)
	}
	return model.KillAnalysis{
		Tick:            k.Tick,
		Victim:          orUnknown(k.Victim, "Unknown"),
		Headshot:        k.Headshot,
		Weapon:          orUnknown(k.Weapon, "unknown"),
		CrosshairOffset: round1(offset),
		GoodPlacement:   offset < BadOffsetDeg,
	}
}

// ClassifyKills maps ClassifyKill over the kills in order.
func ClassifyKills(kills []model.KillEvent) []model.KillAnalysis {
	out := make([]model.KillAnalysis, 0, len(kills))
	for _, k := range kills {
		out = append(out, ClassifyKill(k))
	}
	return out
}

// ClassifyFlash marks a flash useful when it blinded someone for over
// a second or led to a kill by the thrower.
func ClassifyFlash(f model.FlashEvent) model.FlashAnalysis {
	return model.FlashAnalysis{
		Tick:           f.Tick,
		IsUseful:       f.Effective || f.FollowedByKill,
		IsPopFlash:     f.PopFlash,
		HitSomeone:     f.Effective,
		FollowedByKill: f.FollowedByKill,
		BlindDuration:  f.BlindDuration,
		Victim:         orUnknown(f.Victim, "Unknown"),
	}
}

// ClassifyFlashes maps ClassifyFlash over the flashes in order.
func ClassifyFlashes(flashes []model.FlashEvent) []model.FlashAnalysis {
	out := make([]model.FlashAnalysis, 0, len(flashes))
	for _, f := range flashes {
		out = append(out, ClassifyFlash(f))
	}
	return out
}

// AnalyzeCrosshair aggregates per-death placement offsets. Deaths
// missing either position sample are skipped and do not count toward
// TotalAnalyzed.
func AnalyzeCrosshair(deaths []model.DeathEvent) model.CrosshairStats {
	stats := model.CrosshairStats{
		BadPlacements:      []model.Placement{},
		TerriblePlacements: []model.Placement{},
	}
	sum := 0.0

	for _, d := range deaths {
		if d.Position == nil || d.AttackerPosition == nil {
			continue
		}
		offset := geom.AngularOffset(*d.Position, d.Pitch, d.Yaw, *d.AttackerPosition)
		sum += offset
		stats.TotalAnalyzed++

		p := model.Placement{
			Tick:     d.Tick,
			Offset:   round1(offset),
			Attacker: orUnknown(d.Attacker, "Unknown"),
		}
		switch {
		case offset > TerribleOffsetDeg:
			stats.TerriblePlacements = append(stats.TerriblePlacements, p)
			stats.BadPlacementCount++
		case offset > BadOffsetDeg:
			stats.BadPlacements = append(stats.BadPlacements, p)
			stats.BadPlacementCount++
		}
	}

	if stats.TotalAnalyzed > 0 {
		stats.AvgOffset = sum / float64(stats.TotalAnalyzed)
	}
	return stats
}
