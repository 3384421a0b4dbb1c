package game

import (
	"encoding/json"
	"fmt"
	"time"
)

// ActionType discriminates player-submitted actions.
type ActionType string

const (
	ActionDeploy      ActionType = "deploy"
	ActionAttack      ActionType = "attack"
	ActionOccupy      ActionType = "occupy"
	ActionFortify     ActionType = "fortify"
	ActionEndPhase    ActionType = "end_phase"
	ActionDrawCard    ActionType = "draw_card"
	ActionTurnInCards ActionType = "turn_in_cards"
)

// Action is the tagged union of everything a player can submit. The type
// set is closed; the reducer matches it exhaustively and treats an unknown
// variant as a programming error.
type Action interface {
	Event
	Type() ActionType
	Player() int
	Time() time.Time
	isAction()
}

// Deploy places armies on a territory the acting player owns.
type Deploy struct {
	PlayerOrdinal int       `json:"playerOrdinal"`
	Date          time.Time `json:"date"`
	Territory     string    `json:"territory"`
	Armies        int       `json:"armies"`
}

// Attack resolves one combat round between two adjacent territories. The
// dice are rolled when the action is created and carried with it, so
// replaying the log never re-rolls.
type Attack struct {
	PlayerOrdinal     int       `json:"playerOrdinal"`
	Date              time.Time `json:"date"`
	TerritoryFrom     string    `json:"territoryFrom"`
	TerritoryTo       string    `json:"territoryTo"`
	AttackingDiceRoll []int     `json:"attackingDiceRoll"`
	DefendingDiceRoll []int     `json:"defendingDiceRoll"`
}

// Occupy advances armies into the territory captured by the pending
// occupy phase.
type Occupy struct {
	PlayerOrdinal int       `json:"playerOrdinal"`
	Date          time.Time `json:"date"`
	Armies        int       `json:"armies"`
}

// Fortify moves armies between two territories the acting player owns.
type Fortify struct {
	PlayerOrdinal int       `json:"playerOrdinal"`
	Date          time.Time `json:"date"`
	TerritoryFrom string    `json:"territoryFrom"`
	TerritoryTo   string    `json:"territoryTo"`
	Armies        int       `json:"armies"`
}

// EndPhase closes the named phase; Phase must match the current one.
type EndPhase struct {
	PlayerOrdinal int       `json:"playerOrdinal"`
	Date          time.Time `json:"date"`
	EndingPhase   Phase     `json:"phase"`
}

// DrawCard ends the attack phase while collecting the card owed for a
// capture made during it.
type DrawCard struct {
	PlayerOrdinal int       `json:"playerOrdinal"`
	Date          time.Time `json:"date"`
	Card          string    `json:"card"`
}

// TurnInCards exchanges exactly three cards for bonus armies during the
// deploy phase.
type TurnInCards struct {
	PlayerOrdinal int       `json:"playerOrdinal"`
	Date          time.Time `json:"date"`
	Cards         []string  `json:"cards"`
}

func (a *Deploy) Type() ActionType      { return ActionDeploy }
func (a *Attack) Type() ActionType      { return ActionAttack }
func (a *Occupy) Type() ActionType      { return ActionOccupy }
func (a *Fortify) Type() ActionType     { return ActionFortify }
func (a *EndPhase) Type() ActionType    { return ActionEndPhase }
func (a *DrawCard) Type() ActionType    { return ActionDrawCard }
func (a *TurnInCards) Type() ActionType { return ActionTurnInCards }

func (a *Deploy) Player() int      { return a.PlayerOrdinal }
func (a *Attack) Player() int      { return a.PlayerOrdinal }
func (a *Occupy) Player() int      { return a.PlayerOrdinal }
func (a *Fortify) Player() int     { return a.PlayerOrdinal }
func (a *EndPhase) Player() int    { return a.PlayerOrdinal }
func (a *DrawCard) Player() int    { return a.PlayerOrdinal }
func (a *TurnInCards) Player() int { return a.PlayerOrdinal }

func (a *Deploy) Time() time.Time      { return a.Date }
func (a *Attack) Time() time.Time      { return a.Date }
func (a *Occupy) Time() time.Time      { return a.Date }
func (a *Fortify) Time() time.Time     { return a.Date }
func (a *EndPhase) Time() time.Time    { return a.Date }
func (a *DrawCard) Time() time.Time    { return a.Date }
func (a *TurnInCards) Time() time.Time { return a.Date }

func (*Deploy) isAction()      {}
func (*Attack) isAction()      {}
func (*Occupy) isAction()      {}
func (*Fortify) isAction()     {}
func (*EndPhase) isAction()    {}
func (*DrawCard) isAction()    {}
func (*TurnInCards) isAction() {}

func (a *Deploy) EventType() string      { return string(ActionDeploy) }
func (a *Attack) EventType() string      { return string(ActionAttack) }
func (a *Occupy) EventType() string      { return string(ActionOccupy) }
func (a *Fortify) EventType() string     { return string(ActionFortify) }
func (a *EndPhase) EventType() string    { return string(ActionEndPhase) }
func (a *DrawCard) EventType() string    { return string(ActionDrawCard) }
func (a *TurnInCards) EventType() string { return string(ActionTurnInCards) }

// MarshalAction encodes an action as a type-tagged JSON object, the wire
// and persisted form.
func MarshalAction(a Action) ([]byte, error) {
	body, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["type"], _ = json.Marshal(a.Type())
	return json.Marshal(fields)
}

// UnmarshalAction decodes a type-tagged JSON object into the matching
// action variant. Unknown types are rejected.
func UnmarshalAction(data []byte) (Action, error) {
	var tag struct {
		Type ActionType `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}

	var a Action
	switch tag.Type {
	case ActionDeploy:
		a = &Deploy{}
	case ActionAttack:
		a = &Attack{}
	case ActionOccupy:
		a = &Occupy{}
	case ActionFortify:
		a = &Fortify{}
	case ActionEndPhase:
		a = &EndPhase{}
	case ActionDrawCard:
		a = &DrawCard{}
	case ActionTurnInCards:
		a = &TurnInCards{}
	default:
		return nil, fmt.Errorf("unknown action type %q", tag.Type)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("decode %s action: %w", tag.Type, err)
	}
	return a, nil
}
