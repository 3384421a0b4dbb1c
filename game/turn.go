package game

import (
	"encoding/json"
	"fmt"
)

// Phase identifies a stage of a player's turn.
type Phase string

const (
	PhaseDeploy  Phase = "deploy"
	PhaseAttack  Phase = "attack"
	PhaseOccupy  Phase = "occupy"
	PhaseFortify Phase = "fortify"
)

// TurnState is the tagged union of per-phase turn data. Exactly one
// variant is active per game; the reducer replaces it wholesale on every
// transition. The type set is closed: only the four variants below
// implement it.
type TurnState interface {
	Phase() Phase
	Player() int
	isTurnState()
}

// DeployTurn is the reinforcement stage at the start of a turn.
type DeployTurn struct {
	PlayerOrdinal   int `json:"playerOrdinal"`
	ArmiesRemaining int `json:"armiesRemaining"`
}

func (t DeployTurn) Phase() Phase { return PhaseDeploy }
func (t DeployTurn) Player() int  { return t.PlayerOrdinal }
func (DeployTurn) isTurnState()   {}

// AttackTurn is the combat stage. TerritoryCaptured tracks whether any
// capture happened this phase, which gates the card draw owed when the
// phase ends.
type AttackTurn struct {
	PlayerOrdinal     int  `json:"playerOrdinal"`
	TerritoryCaptured bool `json:"territoryCaptured"`
}

func (t AttackTurn) Phase() Phase { return PhaseAttack }
func (t AttackTurn) Player() int  { return t.PlayerOrdinal }
func (AttackTurn) isTurnState()   {}

// OccupyTurn is the sub-step after an ambiguous capture: the attacker
// chooses how many armies advance into the taken territory, bounded by
// [MinArmies, MaxArmies].
type OccupyTurn struct {
	PlayerOrdinal  int    `json:"playerOrdinal"`
	TerritoryFrom  string `json:"territoryFrom"`
	TerritoryTo    string `json:"territoryTo"`
	MinArmies      int    `json:"minArmies"`
	MaxArmies      int    `json:"maxArmies"`
	SelectedArmies int    `json:"selectedArmies"`
}

func (t OccupyTurn) Phase() Phase { return PhaseOccupy }
func (t OccupyTurn) Player() int  { return t.PlayerOrdinal }
func (OccupyTurn) isTurnState()   {}

// FortifyTurn is the terminal stage of a turn; ending it hands the game
// to the next player's deploy.
type FortifyTurn struct {
	PlayerOrdinal int `json:"playerOrdinal"`
}

func (t FortifyTurn) Phase() Phase { return PhaseFortify }
func (t FortifyTurn) Player() int  { return t.PlayerOrdinal }
func (FortifyTurn) isTurnState()   {}

// MarshalTurnState encodes a turn state as a phase-tagged JSON object.
func MarshalTurnState(t TurnState) ([]byte, error) {
	body, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["phase"], _ = json.Marshal(t.Phase())
	return json.Marshal(fields)
}

// UnmarshalTurnState decodes a phase-tagged JSON object.
func UnmarshalTurnState(data []byte) (TurnState, error) {
	var tag struct {
		Phase Phase `json:"phase"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}
	switch tag.Phase {
	case PhaseDeploy:
		var t DeployTurn
		err := json.Unmarshal(data, &t)
		return t, err
	case PhaseAttack:
		var t AttackTurn
		err := json.Unmarshal(data, &t)
		return t, err
	case PhaseOccupy:
		var t OccupyTurn
		err := json.Unmarshal(data, &t)
		return t, err
	case PhaseFortify:
		var t FortifyTurn
		err := json.Unmarshal(data, &t)
		return t, err
	}
	return nil, fmt.Errorf("unknown turn phase %q", tag.Phase)
}
