package game

import (
	"fmt"

	"domination/rng"
)

// Wild card names. Every other card shares its name with a territory and
// carries that territory's card type.
const (
	WildCard1 = "wild1"
	WildCard2 = "wild2"
)

// CardNames lists the full 44-card deck in authoring order: one card per
// territory plus two wilds.
var CardNames = append(append([]string{}, TerritoryNames...), WildCard1, WildCard2)

// IsCardName reports whether name is a card in the deck.
func IsCardName(name string) bool {
	if name == WildCard1 || name == WildCard2 {
		return true
	}
	_, ok := Territories[name]
	return ok
}

// IsWildCard reports whether name is one of the two wild cards.
func IsWildCard(name string) bool {
	return name == WildCard1 || name == WildCard2
}

// ShuffleCards returns the deck in a fresh random order drawn from r.
func ShuffleCards(r *rng.Rng) []string {
	cards := append([]string{}, CardNames...)
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// cardBonus resolves the army bonus for exactly three turned-in cards.
// Wilds substitute for any type: three matching (or wild) cards pay the
// type's bonus, one of each type pays 10.
func cardBonus(cards []string) (int, error) {
	matchesAll := func(t CardType) bool {
		for _, name := range cards {
			if IsWildCard(name) {
				continue
			}
			if Territories[name].Card != t {
				return false
			}
		}
		return true
	}

	switch {
	case matchesAll(Artillery):
		return 8, nil
	case matchesAll(Cavalry):
		return 6, nil
	case matchesAll(Infantry):
		return 4, nil
	case isOneOfEach(cards):
		return 10, nil
	}
	return 0, fmt.Errorf("must turn in three of the same or one of each card")
}

func isOneOfEach(cards []string) bool {
	seen := map[CardType]bool{}
	for _, name := range cards {
		if IsWildCard(name) {
			continue
		}
		t := Territories[name].Card
		if seen[t] {
			return false
		}
		seen[t] = true
	}
	return true
}
