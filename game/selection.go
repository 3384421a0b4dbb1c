package game

import (
	"fmt"
	"time"
)

// Selection mirrors the local player's in-progress choices for the
// current turn: a pending territory and army count during deploy, a
// from/to pair with candidate targets during attack, an army count during
// occupy, a from/to pair with its computed route during fortify. It
// re-checks legality on every pick for immediate feedback, but nothing
// here is authoritative: committed actions are still validated by the
// reducer. It never mutates the state it was built from.
//
// A Selection is only valid for the event log length it was built
// against; whenever the log grows, discard it and build a fresh one (no
// merging).
type Selection struct {
	state  *GameState
	player int

	Territory  string
	From       string
	To         string
	Armies     int
	Candidates []string
	Route      []string
}

// NewSelection builds an empty selection for one player against a
// freshly reconstructed state. Occupy pre-selects the maximum advance,
// mirroring the pending turn data.
func NewSelection(gs *GameState, player int) *Selection {
	s := &Selection{state: gs, player: player}
	if turn, ok := gs.Turn.(OccupyTurn); ok && turn.PlayerOrdinal == player {
		s.From = turn.TerritoryFrom
		s.To = turn.TerritoryTo
		s.Armies = turn.SelectedArmies
	}
	return s
}

// SelectTerritory records a territory pick for the current phase. During
// deploy it targets a deployment; during attack and fortify the first
// pick is the source and the second the target.
func (s *Selection) SelectTerritory(name string) error {
	territory, ok := s.state.Territories[name]
	if !ok {
		return fmt.Errorf("unknown territory %s", name)
	}
	if s.state.Turn.Player() != s.player {
		return fmt.Errorf("not player %d's turn", s.player)
	}

	switch s.state.Turn.Phase() {
	case PhaseDeploy:
		if territory.Owner != s.player {
			return fmt.Errorf("player %d does not occupy %s", s.player, name)
		}
		s.Territory = name
		return nil

	case PhaseAttack:
		if s.From == "" || territory.Owner == s.player {
			return s.selectAttackSource(name, territory)
		}
		if !containsString(s.Candidates, name) {
			return fmt.Errorf("cannot attack %s from %s", name, s.From)
		}
		s.To = name
		return nil

	case PhaseFortify:
		if s.From == "" {
			if territory.Owner != s.player {
				return fmt.Errorf("player %d does not occupy %s", s.player, name)
			}
			if territory.Armies < 2 {
				return fmt.Errorf("%s has no armies to spare", name)
			}
			s.From = name
			return nil
		}
		route := FindShortestRoute(s.state.Territories, s.From, name)
		if route == nil {
			return fmt.Errorf("no route from %s to %s", s.From, name)
		}
		s.To = name
		s.Route = route
		return nil
	}
	return fmt.Errorf("cannot select a territory in the %s phase", s.state.Turn.Phase())
}

// selectAttackSource restarts the attack pick from a new source and
// recomputes the adjacent enemy candidates.
func (s *Selection) selectAttackSource(name string, territory *TerritoryState) error {
	if territory.Owner != s.player {
		return fmt.Errorf("player %d does not occupy %s", s.player, name)
	}
	if territory.Armies < 2 {
		return fmt.Errorf("%s has no armies to spare", name)
	}
	s.From = name
	s.To = ""
	s.Candidates = nil
	for _, neighbor := range Territories[name].Adjacent {
		if s.state.Territories[neighbor].Owner != s.player {
			s.Candidates = append(s.Candidates, neighbor)
		}
	}
	return nil
}

// SelectArmies records an army count for the phase: the amount to deploy,
// advance or fortify with.
func (s *Selection) SelectArmies(n int) error {
	if n < 1 {
		return fmt.Errorf("must select at least one army")
	}
	switch turn := s.state.Turn.(type) {
	case DeployTurn:
		if n > turn.ArmiesRemaining {
			return fmt.Errorf("cannot deploy %d armies with %d remaining", n, turn.ArmiesRemaining)
		}
	case OccupyTurn:
		if n < turn.MinArmies || n > turn.MaxArmies {
			return fmt.Errorf("must advance between %d and %d armies", turn.MinArmies, turn.MaxArmies)
		}
	case FortifyTurn:
		if s.From == "" {
			return fmt.Errorf("select a territory first")
		}
		if s.state.Territories[s.From].Armies-n < 1 {
			return fmt.Errorf("cannot move %d armies from %s: one must stay behind", n, s.From)
		}
	case AttackTurn:
		territory, ok := s.state.Territories[s.From]
		if s.From == "" || !ok {
			return fmt.Errorf("select a territory first")
		}
		if n > territory.Armies-1 {
			return fmt.Errorf("only %d armies can attack from %s", territory.Armies-1, s.From)
		}
	}
	s.Armies = n
	return nil
}

// Clear resets all pending picks without touching game state.
func (s *Selection) Clear() {
	s.Territory = ""
	s.From = ""
	s.To = ""
	s.Armies = 0
	s.Candidates = nil
	s.Route = nil
}

// Action builds the committed action for the completed selection, or
// errors if the selection is incomplete for the current phase.
func (s *Selection) Action(at time.Time) (Action, error) {
	switch s.state.Turn.Phase() {
	case PhaseDeploy:
		if s.Territory == "" || s.Armies < 1 {
			return nil, fmt.Errorf("deploy selection incomplete")
		}
		return &Deploy{PlayerOrdinal: s.player, Date: at, Territory: s.Territory, Armies: s.Armies}, nil
	case PhaseOccupy:
		if s.Armies < 1 {
			return nil, fmt.Errorf("occupy selection incomplete")
		}
		return &Occupy{PlayerOrdinal: s.player, Date: at, Armies: s.Armies}, nil
	case PhaseFortify:
		if s.From == "" || s.To == "" || s.Armies < 1 {
			return nil, fmt.Errorf("fortify selection incomplete")
		}
		return &Fortify{PlayerOrdinal: s.player, Date: at, TerritoryFrom: s.From, TerritoryTo: s.To, Armies: s.Armies}, nil
	}
	return nil, fmt.Errorf("no action to build in the %s phase", s.state.Turn.Phase())
}
