// Package model defines the normalized event records consumed by the
// analysis engine and the result trees it produces. Everything here is
// plain data: JSON-tagged, cycle-free, and read-only once built.
package model

import "github.com/pable/go-cs-coach/internal/geom"

// ---- Normalized events from the demo-parsing collaborator ----

// DeathEvent is one kill event with the analyzed player as victim.
// Position pointers are nil when the tick table had no sample for the
// player at that tick; consumers skip those samples.
type DeathEvent struct {
	Tick             int        `json:"tick"`
	Victim           string     `json:"victim"`
	Attacker         string     `json:"attacker"`
	Weapon           string     `json:"weapon"`
	Headshot         bool       `json:"headshot"`
	Position         *geom.Vec3 `json:"position,omitempty"`
	Pitch            float64    `json:"pitch"`
	Yaw              float64    `json:"yaw"`
	AttackerPosition *geom.Vec3 `json:"attacker_position,omitempty"`
	TeammatesNearby  int        `json:"teammates_nearby"`
	ArmorValue       int        `json:"armor_value"`
	HasHelmet        bool       `json:"has_helmet"`
	HasDefuser       bool       `json:"has_defuser"`
	Inventory        []string   `json:"inventory,omitempty"`
	EquipValue       int        `json:"equip_value"`
}

// KillEvent is the symmetric record with the analyzed player as attacker.
type KillEvent struct {
	Tick           int        `json:"tick"`
	Attacker       string     `json:"attacker"`
	Victim         string     `json:"victim"`
	Weapon         string     `json:"weapon"`
	Headshot       bool       `json:"headshot"`
	Position       *geom.Vec3 `json:"position,omitempty"`
	Pitch          float64    `json:"pitch"`
	Yaw            float64    `json:"yaw"`
	VictimPosition *geom.Vec3 `json:"victim_position,omitempty"`
}

// FlashEvent is a blind effect caused by a flash the analyzed player
// threw. Effective, FollowedByKill and PopFlash are upstream judgments
// made at extraction time, when full tick data is still available.
type FlashEvent struct {
	Tick           int     `json:"tick"`
	Thrower        string  `json:"thrower"`
	Victim         string  `json:"victim"`
	BlindDuration  float64 `json:"blind_duration"`
	Effective      bool    `json:"effective"`
	FollowedByKill bool    `json:"followed_by_kill"`
	PopFlash       bool    `json:"pop_flash"`
}

// EventBundle is the full normalized input for one match.
type EventBundle struct {
	Deaths  []DeathEvent `json:"deaths"`
	Kills   []KillEvent  `json:"kills"`
	Flashes []FlashEvent `json:"flashes"`
	MapName string       `json:"map_name"`
}

// KD computes kills/deaths, defined as the kill count when deaths is
// zero so it never yields NaN or Inf.
func KD(kills, deaths int) float64 {
	if deaths == 0 {
		return float64(kills)
	}
	return float64(kills) / float64(deaths)
}

// ---- Single-match analysis result ----

type Summary struct {
	TotalKills          int     `json:"total_kills"`
	TotalDeaths         int     `json:"total_deaths"`
	KDRatio             float64 `json:"kd_ratio"`
	HeadshotRate        float64 `json:"headshot_rate"`
	BadCrosshairPct     float64 `json:"bad_crosshair_pct"`
	AvoidableDeathsPct  float64 `json:"avoidable_deaths_pct"`
	NoAdvantageDuelsPct float64 `json:"no_advantage_duels_pct"`
	FlashUsefulPct      float64 `json:"flash_useful_pct"`
	PopFlashPct         float64 `json:"pop_flash_pct"`
	AvgCrosshairOffset  float64 `json:"avg_crosshair_offset"`
	TotalFlashes        int     `json:"total_flashes"`
	TotalValueLost      int     `json:"total_value_lost"`
	AvgDeathCost        int     `json:"avg_death_cost"`
	ExpensiveDeathsPct  float64 `json:"expensive_deaths_pct"`
}

// Placement records one death where the victim's crosshair was far off
// the attacker.
type Placement struct {
	Tick     int     `json:"tick"`
	Offset   float64 `json:"offset"`
	Attacker string  `json:"attacker"`
}

type CrosshairStats struct {
	AvgOffset          float64     `json:"avg_offset"`
	BadPlacementCount  int         `json:"bad_placement_count"`
	BadPlacements      []Placement `json:"bad_placements"`
	TerriblePlacements []Placement `json:"terrible_placements"`
	TotalAnalyzed      int         `json:"total_analyzed"`
}

type RiskFactors struct {
	NoTeammate bool `json:"no_teammate"`
	Isolated   bool `json:"isolated"`
	NoUtility  bool `json:"no_utility"`
}

// DeathAnalysis carries both classification rule sets: the avoidable
// judgment (risk factors without any offsetting advantage) and the
// stricter disadvantaged-duel judgment. Reports use both independently.
type DeathAnalysis struct {
	Tick            int         `json:"tick"`
	IsAvoidable     bool        `json:"is_avoidable"`
	HadAnyAdvantage bool        `json:"had_any_advantage"`
	IsDisadvantaged bool        `json:"is_disadvantaged"`
	RiskFactors     RiskFactors `json:"risk_factors"`
	Attacker        string      `json:"attacker"`
	Weapon          string      `json:"weapon"`
}

type KillAnalysis struct {
	Tick            int     `json:"tick"`
	Victim          string  `json:"victim"`
	Headshot        bool    `json:"headshot"`
	Weapon          string  `json:"weapon"`
	CrosshairOffset float64 `json:"crosshair_offset"`
	GoodPlacement   bool    `json:"good_placement"`
}

type FlashAnalysis struct {
	Tick           int     `json:"tick"`
	IsUseful       bool    `json:"is_useful"`
	IsPopFlash     bool    `json:"is_pop_flash"`
	HitSomeone     bool    `json:"hit_someone"`
	FollowedByKill bool    `json:"followed_by_kill"`
	BlindDuration  float64 `json:"blind_duration"`
	Victim         string  `json:"victim"`
}

// ---- Economy ----

type DeathValue struct {
	Tick        int    `json:"tick"`
	Weapon      string `json:"weapon"`
	WeaponValue int    `json:"weapon_value"`
	ArmorValue  int    `json:"armor_value"`
	HelmetValue int    `json:"helmet_value"`
	KitValue    int    `json:"kit_value"`
	TotalValue  int    `json:"total_value"`
	BuyType     string `json:"buy_type"`
	Attacker    string `json:"attacker"`
}

type KillValue struct {
	Tick       int    `json:"tick"`
	Victim     string `json:"victim"`
	Weapon     string `json:"weapon"`
	KillReward int    `json:"kill_reward"`
	Headshot   bool   `json:"headshot"`
}

type EcoDiscipline struct {
	HighValueDeaths   int          `json:"high_value_deaths"`
	HighValueDeathPct float64      `json:"high_value_death_pct"`
	RifleDeaths       int          `json:"rifle_deaths"`
	AWPDeaths         int          `json:"awp_deaths"`
	EcoDeaths         int          `json:"eco_deaths"`
	ForceBuyDeaths    int          `json:"force_buy_deaths"`
	WorstLosses       []DeathValue `json:"worst_losses"`
}

type RoundTypeStats struct {
	Deaths         int `json:"deaths"`
	AvgValueLost   int `json:"avg_value_lost"`
	TotalValueLost int `json:"total_value_lost"`
}

type EconomySummary struct {
	TotalValueLost    int     `json:"total_value_lost"`
	AvgDeathCost      int     `json:"avg_death_cost"`
	ExpensiveDeaths   int     `json:"expensive_deaths"`
	ExpensiveDeathPct float64 `json:"expensive_death_pct"`
	TotalValueGained  int     `json:"total_value_gained"`
	NetEconomy        int     `json:"net_economy"`
}

type EconomyAnalysis struct {
	Summary       EconomySummary            `json:"summary"`
	DeathValues   []DeathValue              `json:"death_values"`
	EcoDiscipline EcoDiscipline             `json:"eco_discipline"`
	KillROI       []KillValue               `json:"kill_roi"`
	RoundTypes    map[string]RoundTypeStats `json:"round_types"`
}

// ---- Positioning ----

type ZoneCount struct {
	Zone  string `json:"zone"`
	Count int    `json:"count"`
}

type ZoneTally struct {
	ByZone map[string]int `json:"by_zone"`
	Top    []ZoneCount    `json:"top"`
	Total  int            `json:"total"`
}

type ZonePerformance struct {
	Kills       int     `json:"kills"`
	Deaths      int     `json:"deaths"`
	KDRatio     float64 `json:"kd_ratio"`
	Engagements int     `json:"engagements"`
	Performance string  `json:"performance"`
}

type DangerZone struct {
	Zone     string  `json:"zone"`
	KDRatio  float64 `json:"kd_ratio"`
	Deaths   int     `json:"deaths"`
	Kills    int     `json:"kills"`
	Severity float64 `json:"severity"`
}

type StrongZone struct {
	Zone    string  `json:"zone"`
	KDRatio float64 `json:"kd_ratio"`
	Deaths  int     `json:"deaths"`
	Kills   int     `json:"kills"`
}

type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Heatmap carries raw 2D coordinates for external visualization; the
// engine passes them through untouched.
type Heatmap struct {
	DeathPositions []Coord `json:"death_positions"`
	KillPositions  []Coord `json:"kill_positions"`
}

type PositioningAnalysis struct {
	MapName         string                     `json:"map_name"`
	DeathZones      ZoneTally                  `json:"death_zones"`
	KillZones       ZoneTally                  `json:"kill_zones"`
	ZonePerformance map[string]ZonePerformance `json:"zone_performance"`
	DangerZones     []DangerZone               `json:"danger_zones"`
	StrongZones     []StrongZone               `json:"strong_zones"`
	Heatmap         Heatmap                    `json:"heatmap"`
	Recommendations []string                   `json:"recommendations"`
}

// ---- Priorities ----

type Priority struct {
	Category       string  `json:"category"`
	Stats          string  `json:"stats"`
	Recommendation string  `json:"recommendation"`
	Severity       float64 `json:"severity"`
}

// MatchAnalysis is the full result for one match.
type MatchAnalysis struct {
	Summary     Summary             `json:"summary"`
	Crosshair   CrosshairStats      `json:"crosshair"`
	Deaths      []DeathAnalysis     `json:"deaths"`
	Kills       []KillAnalysis      `json:"kills"`
	Flashes     []FlashAnalysis     `json:"flashes"`
	Economy     EconomyAnalysis     `json:"economy"`
	Positioning PositioningAnalysis `json:"positioning"`
	Priorities  []Priority          `json:"priorities"`
}

// ---- Cross-match aggregation ----

type AggregateMeta struct {
	TotalDemos int      `json:"total_demos"`
	DemoNames  []string `json:"demo_names"`
	MapName    string   `json:"map_name"`
}

type AggregateSummary struct {
	AvgKDRatio             float64 `json:"avg_kd_ratio"`
	StdKDRatio             float64 `json:"std_kd_ratio"`
	AvgHeadshotRate        float64 `json:"avg_headshot_rate"`
	StdHeadshotRate        float64 `json:"std_headshot_rate"`
	AvgBadCrosshairPct     float64 `json:"avg_bad_crosshair_pct"`
	AvgAvoidableDeathsPct  float64 `json:"avg_avoidable_deaths_pct"`
	AvgNoAdvantageDuelsPct float64 `json:"avg_no_advantage_duels_pct"`
	AvgFlashUsefulPct      float64 `json:"avg_flash_useful_pct"`
	AvgPopFlashPct         float64 `json:"avg_pop_flash_pct"`
	AvgCrosshairOffset     float64 `json:"avg_crosshair_offset"`
	TotalKills             int     `json:"total_kills"`
	TotalDeaths            int     `json:"total_deaths"`
	TotalFlashes           int     `json:"total_flashes"`
	TotalValueLost         int     `json:"total_value_lost"`
	AvgDeathCost           float64 `json:"avg_death_cost"`
	AvgExpensiveDeathsPct  float64 `json:"avg_expensive_deaths_pct"`
	ConsistencyKD          string  `json:"consistency_kd"`
	ConsistencyHSR         string  `json:"consistency_hsr"`
}

type AggregateCrosshair struct {
	AvgOffset         float64     `json:"avg_offset"`
	TotalAnalyzed     int         `json:"total_analyzed"`
	TotalBadPlacement int         `json:"total_bad_placement"`
	BadPlacementPct   float64     `json:"bad_placement_pct"`
	WorstPlacements   []Placement `json:"worst_placements"`
}

type WeaponCount struct {
	Weapon string `json:"weapon"`
	Count  int    `json:"count"`
}

type AggregateDeaths struct {
	TotalDeaths        int           `json:"total_deaths"`
	TotalAvoidable     int           `json:"total_avoidable"`
	AvoidablePct       float64       `json:"avoidable_pct"`
	TotalNoAdvantage   int           `json:"total_no_advantage"`
	NoAdvantagePct     float64       `json:"no_advantage_pct"`
	CommonDeathWeapons []WeaponCount `json:"most_common_death_weapons"`
}

type AggregateUtility struct {
	TotalFlashes    int     `json:"total_flashes"`
	TotalUseful     int     `json:"total_useful"`
	UsefulPct       float64 `json:"useful_pct"`
	TotalPopFlashes int     `json:"total_pop_flashes"`
	PopFlashPct     float64 `json:"pop_flash_pct"`
}

type AggregateEconomy struct {
	TotalValueLost        int                       `json:"total_value_lost"`
	AvgDeathCost          float64                   `json:"avg_death_cost"`
	AvgExpensiveDeathsPct float64                   `json:"avg_expensive_deaths_pct"`
	RoundTypes            map[string]RoundTypeStats `json:"round_types"`
}

type ZoneStats struct {
	Kills       int     `json:"kills"`
	Deaths      int     `json:"deaths"`
	KDRatio     float64 `json:"kd_ratio"`
	Engagements int     `json:"engagements"`
}

type AggregateZone struct {
	Zone    string  `json:"zone"`
	KDRatio float64 `json:"kd_ratio"`
	Kills   int     `json:"kills"`
	Deaths  int     `json:"deaths"`
}

type AggregatePositioning struct {
	MapName         string               `json:"map_name"`
	ZonePerformance map[string]ZoneStats `json:"zone_performance"`
	WorstZones      []AggregateZone      `json:"worst_zones"`
	BestZones       []AggregateZone      `json:"best_zones"`
}

type AggregatePriority struct {
	Category    string  `json:"category"`
	Frequency   float64 `json:"frequency"`
	AvgSeverity float64 `json:"avg_severity"`
	AppearsIn   string  `json:"appears_in"`
}

// Trends compares first-half against second-half means across the
// chronological match sequence. Available is false below two matches.
type Trends struct {
	Available       bool    `json:"available"`
	KDTrend         string  `json:"kd_trend,omitempty"`
	KDChange        float64 `json:"kd_change"`
	HSRTrend        string  `json:"hsr_trend,omitempty"`
	HSRChange       float64 `json:"hsr_change"`
	CrosshairTrend  string  `json:"crosshair_trend,omitempty"`
	CrosshairChange float64 `json:"crosshair_change"`
}

type DemoExtreme struct {
	Demo  string  `json:"demo"`
	Value float64 `json:"value"`
}

type BestWorst struct {
	BestKD         DemoExtreme `json:"best_kd"`
	WorstKD        DemoExtreme `json:"worst_kd"`
	BestCrosshair  DemoExtreme `json:"best_crosshair"`
	WorstCrosshair DemoExtreme `json:"worst_crosshair"`
}

// AggregatedAnalysis is the merged result over N chronological matches.
type AggregatedAnalysis struct {
	Meta        AggregateMeta        `json:"meta"`
	Summary     AggregateSummary     `json:"summary"`
	Crosshair   AggregateCrosshair   `json:"crosshair"`
	Deaths      AggregateDeaths      `json:"deaths"`
	Utility     AggregateUtility     `json:"utility"`
	Economy     AggregateEconomy     `json:"economy"`
	Positioning AggregatePositioning `json:"positioning"`
	Priorities  []AggregatePriority  `json:"priorities"`
	Trends      Trends               `json:"trends"`
	BestWorst   BestWorst            `json:"best_worst"`
}
