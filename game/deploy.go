package game

// Deployment is the per-turn reinforcement breakdown for one player.
// ContinentBonuses always carries all six continents, zero when the
// player does not control one.
type Deployment struct {
	ContinentBonuses map[string]int `json:"continentBonuses"`
	TerritoryBonus   int            `json:"territoryBonus"`
	Total            int            `json:"total"`
}

// NextDeployment computes the reinforcement budget the player receives at
// the start of a turn: max(3, owned/3) plus the bonus of every continent
// they fully control. Pure; no randomness.
func NextDeployment(player int, territories map[string]*TerritoryState) Deployment {
	owned := 0
	ownedByContinent := make(map[string]int, len(Continents))
	for name, territory := range territories {
		if territory.Owner != player {
			continue
		}
		owned++
		ownedByContinent[Territories[name].Continent]++
	}

	territoryBonus := max(3, owned/3)

	bonuses := make(map[string]int, len(Continents))
	total := territoryBonus
	for name, continent := range Continents {
		bonus := 0
		if ownedByContinent[name] == continent.Territories {
			bonus = continent.Bonus
		}
		bonuses[name] = bonus
		total += bonus
	}

	return Deployment{
		ContinentBonuses: bonuses,
		TerritoryBonus:   territoryBonus,
		Total:            total,
	}
}
