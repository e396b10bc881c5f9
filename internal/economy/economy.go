// Package economy values deaths and kills in in-game dollars: cost of
// lost equipment, kill rewards, buy-type breakdowns and discipline
// signals like dying too often with expensive gear.
package economy

import (
	"math"
	"sort"

	"github.com/pable/go-cs-coach/internal/model"
)

// 2024 buy menu prices. Grenades, knife and world damage carry no
// replacement cost.
var weaponPrices = map[string]int{
	// pistols
	"usp_silencer": 0,
	"glock":        0,
	"hkp2000":      0,
	"p250":         300,
	"fiveseven":    500,
	"tec9":         500,
	"cz75a":        500,
	"deagle":       700,
	"elite":        300,
	"revolver":     600,

	// smgs
	"mac10": 1050,
	"mp9":   1250,
	"mp7":   1500,
	"ump45": 1200,
	"p90":   2350,
	"bizon": 1400,
	"mp5sd": 1500,

	// rifles
	"famas":         2050,
	"galilar":       1800,
	"m4a1":          2900,
	"m4a1_silencer": 2900,
	"ak47":          2700,
	"aug":           3300,
	"sg556":         3000,

	// snipers
	"ssg08":  1700,
	"awp":    4750,
	"scar20": 5000,
	"g3sg1":  5000,

	// heavy
	"nova":     1050,
	"xm1014":   2000,
	"mag7":     1300,
	"sawedoff": 1100,
	"negev":    1700,
	"m249":     5200,

	"knife":        0,
	"unknown":      0,
	"world":        0,
	"inferno":      0,
	"hegrenade":    0,
	"flashbang":    0,
	"smokegrenade": 0,
	"molotov":      0,
	"incgrenade":   0,
}

const (
	armorPrice  = 650
	helmetPrice = 350
	kitPrice    = 400

	expensiveDeathValue = 3000
	highValueDeath      = 3500
	riflePriceFloor     = 2700
	awpPriceFloor       = 4750
)

var smgWeapons = map[string]bool{
	"mac10": true, "mp9": true, "mp7": true, "ump45": true,
	"p90": true, "bizon": true, "mp5sd": true,
}

var shotgunOrTaser = map[string]bool{
	"nova": true, "xm1014": true, "mag7": true, "sawedoff": true, "taser": true,
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// WeaponPrice returns the buy price of a weapon, 0 for unknown names.
func WeaponPrice(weapon string) int { return weaponPrices[weapon] }

// BuyType buckets an equipment value the way round-economy callouts do.
func BuyType(totalValue int) string {
	switch {
	case totalValue < 1000:
		return "pistol"
	case totalValue < 2000:
		return "eco"
	case totalValue < 3500:
		return "force_buy"
	default:
		return "full_buy"
	}
}

// KillReward is the money awarded for a kill with the given weapon.
func KillReward(weapon string) int {
	switch {
	case smgWeapons[weapon]:
		return 600
	case shotgunOrTaser[weapon]:
		return 900
	case weapon == "knife":
		return 1500
	case weapon == "awp":
		return 100
	case weapon == "ssg08":
		return 300
	default:
		return 300
	}
}

// DeathValue prices one death. The game-reported equip value wins when
// present; otherwise the value is rebuilt from weapon, armor, helmet
// and kit. Component fields are always filled for reporting.
func DeathValue(d model.DeathEvent) model.DeathValue {
	weapon := d.Weapon
	if weapon == "" {
		weapon = "unknown"
	}

	weaponValue := weaponPrices[weapon]
	armorValue, helmetValue := 0, 0
	if d.ArmorValue > 0 {
		armorValue = armorPrice
		if d.HasHelmet {
			helmetValue = helmetPrice
		}
	}
	kitValue := 0
	if d.HasDefuser {
		kitValue = kitPrice
	}

	total := d.EquipValue
	if total <= 0 {
		total = weaponValue + armorValue + helmetValue + kitValue
	}

	attacker := d.Attacker
	if attacker == "" {
		attacker = "Unknown"
	}

	return model.DeathValue{
		Tick:        d.Tick,
		Weapon:      weapon,
		WeaponValue: weaponValue,
		ArmorValue:  armorValue,
		HelmetValue: helmetValue,
		KitValue:    kitValue,
		TotalValue:  total,
		BuyType:     BuyType(total),
		Attacker:    attacker,
	}
}

// Analyze produces the full economic block for one match.
func Analyze(deaths []model.DeathEvent, kills []model.KillEvent) model.EconomyAnalysis {
	deathValues := make([]model.DeathValue, 0, len(deaths))
	for _, d := range deaths {
		deathValues = append(deathValues, DeathValue(d))
	}

	killROI := make([]model.KillValue, 0, len(kills))
	totalGained := 0
	for _, k := range kills {
		weapon := k.Weapon
		if weapon == "" {
			weapon = "unknown"
		}
		victim := k.Victim
		if victim == "" {
			victim = "Unknown"
		}
		reward := KillReward(weapon)
		totalGained += reward
		killROI = append(killROI, model.KillValue{
			Tick:       k.Tick,
			Victim:     victim,
			Weapon:     weapon,
			KillReward: reward,
			Headshot:   k.Headshot,
		})
	}

	totalLost := 0
	expensive := 0
	for _, dv := range deathValues {
		totalLost += dv.TotalValue
		if dv.TotalValue > expensiveDeathValue {
			expensive++
		}
	}

	avgCost := 0
	expensivePct := 0.0
	if len(deaths) > 0 {
		avgCost = totalLost / len(deaths)
		expensivePct = round1(float64(expensive) / float64(len(deaths)) * 100)
	}

	return model.EconomyAnalysis{
		Summary: model.EconomySummary{
			TotalValueLost:    totalLost,
			AvgDeathCost:      avgCost,
			ExpensiveDeaths:   expensive,
			ExpensiveDeathPct: expensivePct,
			TotalValueGained:  totalGained,
			NetEconomy:        totalGained - totalLost,
		},
		DeathValues:   deathValues,
		EcoDiscipline: ecoDiscipline(deathValues),
		KillROI:       killROI,
		RoundTypes:    roundTypes(deathValues),
	}
}

func ecoDiscipline(deathValues []model.DeathValue) model.EcoDiscipline {
	var disc model.EcoDiscipline
	highValue := []model.DeathValue{}

	for _, dv := range deathValues {
		if dv.TotalValue > highValueDeath {
			highValue = append(highValue, dv)
		}
		if dv.WeaponValue >= riflePriceFloor {
			disc.RifleDeaths++
		}
		if dv.WeaponValue >= awpPriceFloor {
			disc.AWPDeaths++
		}
		switch {
		case dv.TotalValue < 2000:
			disc.EcoDeaths++
		case dv.TotalValue < 3500:
			disc.ForceBuyDeaths++
		}
	}

	disc.HighValueDeaths = len(highValue)
	if len(deathValues) > 0 {
		disc.HighValueDeathPct = round1(float64(len(highValue)) / float64(len(deathValues)) * 100)
	}

	sort.SliceStable(highValue, func(i, j int) bool {
		return highValue[i].TotalValue > highValue[j].TotalValue
	})
	if len(highValue) > 3 {
		highValue = highValue[:3]
	}
	disc.WorstLosses = highValue
	return disc
}

// roundTypes rolls deaths up by buy category. All four categories are
// always present so reports render stable rows.
func roundTypes(deathValues []model.DeathValue) map[string]model.RoundTypeStats {
	stats := map[string]model.RoundTypeStats{
		"pistol":    {},
		"eco":       {},
		"force_buy": {},
		"full_buy":  {},
	}
	for _, dv := range deathValues {
		s := stats[dv.BuyType]
		s.Deaths++
		s.TotalValueLost += dv.TotalValue
		stats[dv.BuyType] = s
	}
	for name, s := range stats {
		if s.Deaths > 0 {
			s.AvgValueLost = s.TotalValueLost / s.Deaths
			stats[name] = s
		}
	}
	return stats
}
