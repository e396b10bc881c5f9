package classify

import (
	"testing"

	"github.com/pable/go-cs-coach/internal/geom"
	"github.com/pable/go-cs-coach/internal/model"
)

func vec(x, y, z float64) *geom.Vec3 { return &geom.Vec3{X: x, Y: y, Z: z} }

func death(tick, teammates int, pos, attackerPos *geom.Vec3) model.DeathEvent {
	return model.DeathEvent{
		Tick:             tick,
		Victim:           "player",
		Attacker:         "enemy",
		Weapon:           "ak47",
		Position:         pos,
		AttackerPosition: attackerPos,
		TeammatesNearby:  teammates,
	}
}

func TestClassifyDeath_IsolatedNoUtility(t *testing.T) {
	// Alone, no flash thrown, duel at 1200 units: nothing offsets the risk.
	d := death(10000, 0, vec(0, 0, 0), vec(1200, 0, 0))
	got := ClassifyDeath(d, nil)

	if !got.IsAvoidable {
		t.Error("isolated long-range death without utility must be avoidable")
	}
	if got.HadAnyAdvantage {
		t.Error("no advantage expected")
	}
	if !got.IsDisadvantaged {
		t.Error("death without flash, numbers, angle or trade is disadvantaged")
	}
	if !got.RiskFactors.NoTeammate || !got.RiskFactors.Isolated || !got.RiskFactors.NoUtility {
		t.Errorf("all risk factors expected, got %+v", got.RiskFactors)
	}
}

func TestClassifyDeath_WithNumbersAndRange(t *testing.T) {
	// Two teammates in trade range and a 300-unit duel: advantaged.
	d := death(10000, 2, vec(0, 0, 0), vec(300, 0, 0))
	got := ClassifyDeath(d, nil)

	if got.IsAvoidable {
		t.Error("death with numbers at close range must not be avoidable")
	}
	if !got.HadAnyAdvantage {
		t.Error("numbers and close range count as advantage")
	}
	if got.IsDisadvantaged {
		t.Error("a tradeable death is not disadvantaged")
	}
}

func TestClassifyDeath_RecentFlashIsAdvantage(t *testing.T) {
	d := death(10000, 0, vec(0, 0, 0), vec(1200, 0, 0))
	flashes := []model.FlashEvent{{Tick: 9900}}
	got := ClassifyDeath(d, flashes)

	if got.IsAvoidable {
		t.Error("a flash thrown 100 ticks before death offsets the risk")
	}
	if got.RiskFactors.NoUtility {
		t.Error("recent flash must clear the no-utility risk factor")
	}
}

func TestThrewRecentFlash_WindowBounds(t *testing.T) {
	const tick = 10000
	cases := []struct {
		flashTick int
		want      bool
	}{
		{tick - FlashWindowTicks, true},      // window start, inclusive
		{tick - FlashWindowTicks - 1, false}, // one tick too early
		{tick - 1, true},
		{tick, false}, // same tick does not count
	}
	for _, c := range cases {
		got := ThrewRecentFlash([]model.FlashEvent{{Tick: c.flashTick}}, tick)
		if got != c.want {
			t.Errorf("flash at %d vs death at %d: want %v, got %v", c.flashTick, tick, c.want, got)
		}
	}
}

func TestCloseRange_MissingPositions(t *testing.T) {
	if CloseRange(death(1, 0, nil, vec(0, 0, 0))) {
		t.Error("missing victim position must not read as close range")
	}
	if CloseRange(death(1, 0, vec(0, 0, 0), nil)) {
		t.Error("missing attacker position must not read as close range")
	}
}

func TestClassifyFlash_Usefulness(t *testing.T) {
	long := ClassifyFlash(model.FlashEvent{Tick: 1, BlindDuration: 1.5, Effective: true})
	if !long.IsUseful {
		t.Error("a 1.5s blind is useful")
	}

	short := ClassifyFlash(model.FlashEvent{Tick: 2, BlindDuration: 0.4})
	if short.IsUseful {
		t.Error("a 0.4s blind with no follow-up kill is wasted")
	}

	converted := ClassifyFlash(model.FlashEvent{Tick: 3, BlindDuration: 0.4, FollowedByKill: true})
	if !converted.IsUseful {
		t.Error("a short blind converted into a kill is useful")
	}
}

func TestClassifyKill_Placement(t *testing.T) {
	aligned := ClassifyKill(model.KillEvent{
		Tick:           1,
		Position:       vec(0, 0, 0),
		VictimPosition: vec(500, 0, 0),
	})
	if aligned.CrosshairOffset != 0 || !aligned.GoodPlacement {
		t.Errorf("aligned kill: want offset 0 and good placement, got %+v", aligned)
	}

	wide := ClassifyKill(model.KillEvent{
		Tick:           2,
		Yaw:            90,
		Position:       vec(0, 0, 0),
		VictimPosition: vec(500, 0, 0),
	})
	if wide.CrosshairOffset != 90 || wide.GoodPlacement {
		t.Errorf("90 degree flick: want offset 90 and bad placement, got %+v", wide)
	}

	missing := ClassifyKill(model.KillEvent{Tick: 3})
	if missing.CrosshairOffset != 0 || !missing.GoodPlacement {
		t.Errorf("missing positions: want neutral result, got %+v", missing)
	}
}

func TestAnalyzeCrosshair(t *testing.T) {
	deaths := []model.DeathEvent{
		death(1, 0, vec(0, 0, 0), vec(500, 0, 0)), // aligned, 0 degrees
		{Tick: 2, Attacker: "enemy", Yaw: 45, Position: vec(0, 0, 0), AttackerPosition: vec(500, 0, 0)},  // 45, bad
		{Tick: 3, Attacker: "enemy", Yaw: 180, Position: vec(0, 0, 0), AttackerPosition: vec(500, 0, 0)}, // 180, terrible
		death(4, 0, nil, vec(500, 0, 0)), // skipped
	}
	got := AnalyzeCrosshair(deaths)

	if got.TotalAnalyzed != 3 {
		t.Fatalf("want 3 analyzed deaths, got %d", got.TotalAnalyzed)
	}
	if got.BadPlacementCount != 2 {
		t.Errorf("want 2 placements over the bad threshold, got %d", got.BadPlacementCount)
	}
	if len(got.BadPlacements) != 1 || got.BadPlacements[0].Offset != 45 {
		t.Errorf("want one bad placement at 45, got %+v", got.BadPlacements)
	}
	if len(got.TerriblePlacements) != 1 || got.TerriblePlacements[0].Offset != 180 {
		t.Errorf("want one terrible placement at 180, got %+v", got.TerriblePlacements)
	}
	want := (0.0 + 45 + 180) / 3
	if got.AvgOffset != want {
		t.Errorf("avg offset: want %f, got %f", want, got.AvgOffset)
	}
}

func TestAnalyzeCrosshair_Empty(t *testing.T) {
	got := AnalyzeCrosshair(nil)
	if got.AvgOffset != 0 || got.TotalAnalyzed != 0 || got.BadPlacementCount != 0 {
		t.Errorf("empty input must yield zeroes, got %+v", got)
	}
}
