package zones

import (
	"testing"

	"github.com/pable/go-cs-coach/internal/geom"
	"github.com/pable/go-cs-coach/internal/model"
)

func at(x, y float64) *geom.Vec3 { return &geom.Vec3{X: x, Y: y} }

func TestLookup(t *testing.T) {
	cases := []struct {
		mapName string
		x, y    float64
		want    string
	}{
		{"de_dust2", 0, 2000, "Long"},
		{"de_dust2", 2000, 0, "B Site"},
		{"de_dust2", -2000, -2000, "Lower Tunnels"},
		{"DE_DUST2", 0, 2000, "Long"}, // map name is case-insensitive
		{"de_mirage", -500, -1000, "Palace"},
		{"de_mirage", 800, 2000, "B Site"},
		{"de_inferno", -1000, -2000, "Banana"},
		{"de_inferno", 1500, 1500, "A Site"},
		{"de_dust2", 9999, 9999, UnknownZone},
		{"de_train", 0, 0, UnknownZone}, // no table for this map
	}
	for _, c := range cases {
		if got := Lookup(c.mapName, c.x, c.y); got != c.want {
			t.Errorf("Lookup(%s, %.0f, %.0f): want %q, got %q", c.mapName, c.x, c.y, c.want, got)
		}
	}
}

func TestLookup_SharedEdgeFirstMatchWins(t *testing.T) {
	// x=600 lies on the boundary of both Long (-800..600) and
	// A Site (600..1600); the earlier table entry must win.
	if got := Lookup("de_dust2", 600, 2000); got != "Long" {
		t.Errorf("boundary point must resolve to the first table entry, got %q", got)
	}
}

func TestAnalyze_ZonePerformance(t *testing.T) {
	// Two kills and one death in Mid, two deaths in Long.
	kills := []model.KillEvent{
		{Tick: 1, Position: at(0, 0)},
		{Tick: 2, Position: at(100, 100)},
	}
	deaths := []model.DeathEvent{
		{Tick: 3, Position: at(-100, 0)},
		{Tick: 4, Position: at(0, 2000)},
		{Tick: 5, Position: at(100, 2000)},
	}

	got := Analyze(deaths, kills, "de_dust2")

	mid := got.ZonePerformance["Mid"]
	if mid.Kills != 2 || mid.Deaths != 1 || mid.KDRatio != 2.0 || mid.Performance != "strong" {
		t.Errorf("Mid performance: got %+v", mid)
	}
	long := got.ZonePerformance["Long"]
	if long.Kills != 0 || long.Deaths != 2 || long.KDRatio != 0 || long.Performance != "weak" {
		t.Errorf("Long performance: got %+v", long)
	}

	if got.DeathZones.Total != 3 || got.DeathZones.Top[0].Zone != "Long" {
		t.Errorf("death tally: got %+v", got.DeathZones)
	}
	if got.KillZones.ByZone["Mid"] != 2 {
		t.Errorf("kill tally: got %+v", got.KillZones)
	}
}

func TestAnalyze_DangerAndStrongZones(t *testing.T) {
	deaths := []model.DeathEvent{
		{Tick: 1, Position: at(0, 2000)}, // Long
		{Tick: 2, Position: at(0, 2000)},
		{Tick: 3, Position: at(0, 2000)},
		{Tick: 4, Position: at(0, 0)}, // Mid
	}
	kills := []model.KillEvent{
		{Tick: 5, Position: at(0, 0)}, // Mid: 2k 1d
		{Tick: 6, Position: at(0, 0)},
	}

	got := Analyze(deaths, kills, "de_dust2")

	if len(got.DangerZones) != 1 || got.DangerZones[0].Zone != "Long" {
		t.Fatalf("want Long as the only danger zone, got %+v", got.DangerZones)
	}
	// 3 deaths * 10 + (1 - 0) * 20 = 50.
	if got.DangerZones[0].Severity != 50 {
		t.Errorf("danger severity: want 50, got %.1f", got.DangerZones[0].Severity)
	}

	if len(got.StrongZones) != 1 || got.StrongZones[0].Zone != "Mid" || got.StrongZones[0].KDRatio != 2.0 {
		t.Errorf("want Mid as the only strong zone, got %+v", got.StrongZones)
	}
}

func TestAnalyze_MissingPositions(t *testing.T) {
	deaths := []model.DeathEvent{{Tick: 1}, {Tick: 2, Position: at(0, 0)}}
	got := Analyze(deaths, nil, "de_dust2")

	if got.DeathZones.ByZone[UnknownZone] != 1 || got.DeathZones.ByZone["Mid"] != 1 {
		t.Errorf("missing position must land in %q: got %+v", UnknownZone, got.DeathZones.ByZone)
	}
	if len(got.Heatmap.DeathPositions) != 1 {
		t.Errorf("heatmap must skip missing positions, got %d", len(got.Heatmap.DeathPositions))
	}
}

func TestRecommendations(t *testing.T) {
	p := model.PositioningAnalysis{
		DangerZones: []model.DangerZone{
			{Zone: "Long", KDRatio: 0.2, Deaths: 5},
			{Zone: "Tunnels", KDRatio: 0.5, Deaths: 3},
		},
		StrongZones: []model.StrongZone{{Zone: "Mid", KDRatio: 2.5}},
	}
	recs := Recommendations(p)
	if len(recs) != 3 {
		t.Fatalf("want 3 recommendations, got %d: %v", len(recs), recs)
	}

	if got := Recommendations(model.PositioningAnalysis{}); len(got) != 0 {
		t.Errorf("no zones, no advice: got %v", got)
	}
}
