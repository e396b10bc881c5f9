package analyzer

import (
	"testing"

	"github.com/pable/go-cs-coach/internal/geom"
	"github.com/pable/go-cs-coach/internal/model"
)

func vec(x, y, z float64) *geom.Vec3 { return &geom.Vec3{X: x, Y: y, Z: z} }

// bundle builds a small but fully-populated match: 2 kills (1 HS),
// 2 deaths (one isolated at range, one supported up close), 2 flashes.
func bundle() model.EventBundle {
	return model.EventBundle{
		MapName: "de_dust2",
		Kills: []model.KillEvent{
			{Tick: 1000, Victim: "a", Weapon: "ak47", Headshot: true,
				Position: vec(0, 0, 0), VictimPosition: vec(400, 0, 0)},
			{Tick: 2000, Victim: "b", Weapon: "ak47",
				Position: vec(0, 0, 0), Yaw: 90, VictimPosition: vec(400, 0, 0)},
		},
		Deaths: []model.DeathEvent{
			{Tick: 3000, Attacker: "a", Weapon: "awp", TeammatesNearby: 0,
				Position: vec(0, 2000, 0), AttackerPosition: vec(1500, 2000, 0),
				ArmorValue: 100, HasHelmet: true},
			{Tick: 4000, Attacker: "b", Weapon: "glock", TeammatesNearby: 2,
				Position: vec(0, 0, 0), AttackerPosition: vec(300, 0, 0)},
		},
		Flashes: []model.FlashEvent{
			{Tick: 500, BlindDuration: 1.5, Effective: true, PopFlash: true},
			{Tick: 1500, BlindDuration: 0.3},
		},
	}
}

func TestAnalyze_Summary(t *testing.T) {
	got := Analyze(bundle())

	s := got.Summary
	if s.TotalKills != 2 || s.TotalDeaths != 2 || s.TotalFlashes != 2 {
		t.Fatalf("counts: got %+v", s)
	}
	if s.KDRatio != 1.0 {
		t.Errorf("kd: want 1.0, got %.2f", s.KDRatio)
	}
	if s.HeadshotRate != 50 {
		t.Errorf("hsr: want 50, got %.1f", s.HeadshotRate)
	}
	// One of two deaths is avoidable (isolated, long range, no flash
	// thrown in the prior 3 seconds).
	if s.AvoidableDeathsPct != 50 {
		t.Errorf("avoidable: want 50, got %.1f", s.AvoidableDeathsPct)
	}
	if s.NoAdvantageDuelsPct != 50 {
		t.Errorf("no advantage: want 50, got %.1f", s.NoAdvantageDuelsPct)
	}
	if s.FlashUsefulPct != 50 || s.PopFlashPct != 50 {
		t.Errorf("flash pcts: got %.1f/%.1f", s.FlashUsefulPct, s.PopFlashPct)
	}
}

func TestAnalyze_ZeroDeathsKD(t *testing.T) {
	got := Analyze(model.EventBundle{
		MapName: "de_mirage",
		Kills:   []model.KillEvent{{Tick: 1}, {Tick: 2}, {Tick: 3}},
	})
	if got.Summary.KDRatio != 3 {
		t.Errorf("kd with zero deaths equals the kill count: got %.2f", got.Summary.KDRatio)
	}
}

func TestAnalyze_EmptyBundle(t *testing.T) {
	got := Analyze(model.EventBundle{MapName: "de_inferno"})

	s := got.Summary
	if s.KDRatio != 0 || s.HeadshotRate != 0 || s.AvoidableDeathsPct != 0 || s.FlashUsefulPct != 0 {
		t.Errorf("empty bundle must produce all-zero summary, got %+v", s)
	}
	if len(got.Priorities) == 0 {
		t.Error("priorities must never be empty")
	}
}

func TestAnalyze_SectionsWired(t *testing.T) {
	got := Analyze(bundle())

	if len(got.Deaths) != 2 || len(got.Kills) != 2 || len(got.Flashes) != 2 {
		t.Fatalf("classification lists must cover every event")
	}
	if got.Economy.Summary.TotalValueLost == 0 {
		t.Error("economy block missing: the awp death carries value")
	}
	if got.Positioning.MapName != "de_dust2" {
		t.Errorf("positioning map: got %q", got.Positioning.MapName)
	}
	if got.Positioning.DeathZones.Total != 2 {
		t.Errorf("positioning death tally: got %+v", got.Positioning.DeathZones)
	}
}
