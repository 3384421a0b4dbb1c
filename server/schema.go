package server

import (
	"domination/game"
)

// validateAction checks a decoded action against the enumerated schema
// (territory, card and phase names, per-type field shapes) before it
// reaches the reducer. It returns the offending field names; an empty
// slice means the shape is valid. Semantic legality (turn, phase,
// adjacency, army counts against state) stays with the reducer.
func validateAction(a game.Action) []string {
	var fields []string
	invalid := func(field string) {
		fields = append(fields, field)
	}

	if a.Player() < 1 {
		invalid("playerOrdinal")
	}

	switch a := a.(type) {
	case *game.Deploy:
		if _, ok := game.Territories[a.Territory]; !ok {
			invalid("territory")
		}
		if a.Armies < 1 {
			invalid("armies")
		}
	case *game.Attack:
		if _, ok := game.Territories[a.TerritoryFrom]; !ok {
			invalid("territoryFrom")
		}
		if _, ok := game.Territories[a.TerritoryTo]; !ok {
			invalid("territoryTo")
		}
		if !validDice(a.AttackingDiceRoll) {
			invalid("attackingDiceRoll")
		}
		if !validDice(a.DefendingDiceRoll) {
			invalid("defendingDiceRoll")
		}
	case *game.Occupy:
		if a.Armies < 1 {
			invalid("armies")
		}
	case *game.Fortify:
		if _, ok := game.Territories[a.TerritoryFrom]; !ok {
			invalid("territoryFrom")
		}
		if _, ok := game.Territories[a.TerritoryTo]; !ok {
			invalid("territoryTo")
		}
		if a.Armies < 1 {
			invalid("armies")
		}
	case *game.EndPhase:
		switch a.EndingPhase {
		case game.PhaseDeploy, game.PhaseAttack, game.PhaseOccupy, game.PhaseFortify:
		default:
			invalid("phase")
		}
	case *game.DrawCard:
		if !game.IsCardName(a.Card) {
			invalid("card")
		}
	case *game.TurnInCards:
		if len(a.Cards) != 3 {
			invalid("cards")
		}
		for _, card := range a.Cards {
			if !game.IsCardName(card) {
				invalid("cards")
				break
			}
		}
	}
	return fields
}

func validDice(dice []int) bool {
	if len(dice) < 1 {
		return false
	}
	for _, die := range dice {
		if die < 1 || die > 6 {
			return false
		}
	}
	return true
}
