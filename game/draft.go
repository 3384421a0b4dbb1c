package game

import (
	"fmt"

	"domination/rng"
)

// startingArmies fixes each player's total starting army count by player
// count. Other counts are unsupported.
var startingArmies = map[int]int{
	2: 40,
	3: 35,
	4: 30,
	5: 25,
	6: 20,
}

// Draft produces the initial board: every territory shuffled and dealt
// round-robin with one army, then each player's remaining starting armies
// dropped one at a time on a uniformly picked territory they already own.
// The allocation is intentionally lumpy and reproduces bit-for-bit for a
// given RNG sequence.
func Draft(r *rng.Rng, playerCount int) (map[string]*TerritoryState, error) {
	total, ok := startingArmies[playerCount]
	if !ok {
		return nil, fmt.Errorf("unsupported player count %d", playerCount)
	}

	names := append([]string{}, TerritoryNames...)
	r.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})

	territories := make(map[string]*TerritoryState, len(names))
	owned := make(map[int][]string, playerCount)
	for i, name := range names {
		player := i%playerCount + 1
		territories[name] = &TerritoryState{Owner: player, Armies: 1}
		owned[player] = append(owned[player], name)
	}

	for player := 1; player <= playerCount; player++ {
		remaining := total - len(owned[player])
		for i := 0; i < remaining; i++ {
			name := owned[player][r.Intn(len(owned[player]))]
			territories[name].Armies++
		}
	}

	return territories, nil
}
