package game

import (
	"encoding/json"
	"time"
)

// Event is an entry in a game's append-only log: every submitted action
// plus the derived entries below. The log is the sole persisted history;
// GameState is a projection rebuilt by replaying it.
type Event interface {
	EventType() string
}

// DraftEvent summarizes one player's share of the initial draft.
type DraftEvent struct {
	PlayerOrdinal int       `json:"playerOrdinal"`
	Date          time.Time `json:"date"`
	Territories   int       `json:"territories"`
	Armies        int       `json:"armies"`
}

func (DraftEvent) EventType() string { return "draft" }

// DeploymentEvent records the reinforcement breakdown a player receives
// at the start of their turn.
type DeploymentEvent struct {
	PlayerOrdinal int        `json:"playerOrdinal"`
	Date          time.Time  `json:"date"`
	TurnNumber    int        `json:"turnNumber"`
	Deployment    Deployment `json:"deployment"`
}

func (DeploymentEvent) EventType() string { return "deployment" }

// TerritoryOccupiedEvent marks a successful capture.
type TerritoryOccupiedEvent struct {
	PlayerOrdinal int       `json:"playerOrdinal"`
	Date          time.Time `json:"date"`
	Territory     string    `json:"territory"`
}

func (TerritoryOccupiedEvent) EventType() string { return "territory_occupied" }

// MarshalEvent encodes an event as a type-tagged JSON object.
func MarshalEvent(e Event) ([]byte, error) {
	if a, ok := e.(Action); ok {
		return MarshalAction(a)
	}
	body, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["type"], _ = json.Marshal(e.EventType())
	return json.Marshal(fields)
}
