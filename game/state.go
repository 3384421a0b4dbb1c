package game

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// TerritoryState is the dynamic half of a territory: who holds it and
// with how many armies. Owner 0 means unclaimed. An owned territory has
// at least one army whenever an action has resolved; a zero count is only
// visible mid-capture, while an occupy phase is pending.
type TerritoryState struct {
	Owner  int `json:"owner"`
	Armies int `json:"armies"`
}

// GameState is the full state of one game. It is a derived projection:
// the persisted unit of truth is (seed, ordered actions), and GameState
// is rebuilt from those by NewGameState. Apply returns a fresh copy, so a
// held GameState never mutates.
type GameState struct {
	ID          string
	TurnNumber  int
	Players     []*Player
	Turn        TurnState
	Territories map[string]*TerritoryState
	Events      []Event
}

// Copy returns a deep copy. Events are immutable once appended, so the
// slice contents are shared; everything mutable is cloned.
func (gs *GameState) Copy() *GameState {
	players := make([]*Player, len(gs.Players))
	for i, p := range gs.Players {
		players[i] = p.copy()
	}

	territories := make(map[string]*TerritoryState, len(gs.Territories))
	for name, t := range gs.Territories {
		state := *t
		territories[name] = &state
	}

	events := make([]Event, len(gs.Events), len(gs.Events)+2)
	copy(events, gs.Events)

	return &GameState{
		ID:          gs.ID,
		TurnNumber:  gs.TurnNumber,
		Players:     players,
		Turn:        gs.Turn,
		Territories: territories,
		Events:      events,
	}
}

func (gs *GameState) player(ordinal int) *Player {
	for _, p := range gs.Players {
		if p.Ordinal == ordinal {
			return p
		}
	}
	return nil
}

// NewGameState rebuilds a game from its drafted board and full action
// history: draft events per player (ordinal order) and the first
// deployment, then every action folded through Apply. Given the same
// draft and actions the output is identical every time; no other mutation
// path exists.
func NewGameState(id string, players []*Player, territories map[string]*TerritoryState, actions []Action, at time.Time) (*GameState, error) {
	gs := &GameState{
		ID:          id,
		TurnNumber:  1,
		Players:     make([]*Player, len(players)),
		Territories: make(map[string]*TerritoryState, len(territories)),
	}
	for i, p := range players {
		gs.Players[i] = p.copy()
	}
	sort.Slice(gs.Players, func(i, j int) bool {
		return gs.Players[i].Ordinal < gs.Players[j].Ordinal
	})
	for name, t := range territories {
		state := *t
		gs.Territories[name] = &state
	}

	for _, p := range gs.Players {
		count, armies := 0, 0
		for _, t := range gs.Territories {
			if t.Owner == p.Ordinal {
				count++
				armies += t.Armies
			}
		}
		gs.Events = append(gs.Events, DraftEvent{
			PlayerOrdinal: p.Ordinal,
			Date:          at,
			Territories:   count,
			Armies:        armies,
		})
	}

	deployment := NextDeployment(1, gs.Territories)
	gs.Events = append(gs.Events, DeploymentEvent{
		PlayerOrdinal: 1,
		Date:          at,
		TurnNumber:    1,
		Deployment:    deployment,
	})
	gs.Turn = DeployTurn{PlayerOrdinal: 1, ArmiesRemaining: deployment.Total}

	for _, action := range actions {
		next, err := gs.Apply(action)
		if err != nil {
			return nil, err
		}
		gs = next
	}
	return gs, nil
}

// ActionError is a rejection by the reducer: the action was well-formed
// but illegal against the current state. Reason carries the player-facing
// explanation and is reachable through Unwrap.
type ActionError struct {
	Action ActionType
	Player int
	Reason error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("could not apply %s for player %d: %v", e.Action, e.Player, e.Reason)
}

func (e *ActionError) Unwrap() error { return e.Reason }

// Apply validates one action against the current state and returns the
// successor state, leaving the receiver untouched. The action is appended
// to the event log of the successor; on a validation failure the
// successor is discarded, so the log never records a rejected action.
func (gs *GameState) Apply(action Action) (*GameState, error) {
	next := gs.Copy()
	next.Events = append(next.Events, action)

	err := func() error {
		if action.Player() != next.Turn.Player() {
			return fmt.Errorf("not player %d's turn", action.Player())
		}
		switch a := action.(type) {
		case *Deploy:
			return next.applyDeploy(a)
		case *Attack:
			return next.applyAttack(a)
		case *Occupy:
			return next.applyOccupy(a)
		case *Fortify:
			return next.applyFortify(a)
		case *EndPhase:
			return next.endPhase(a.EndingPhase, "", a.Date)
		case *DrawCard:
			return next.applyDrawCard(a)
		case *TurnInCards:
			return next.applyTurnInCards(a)
		default:
			panic(fmt.Sprintf("unsupported action type %T", action))
		}
	}()
	if err != nil {
		return nil, &ActionError{Action: action.Type(), Player: action.Player(), Reason: err}
	}
	return next, nil
}

func (gs *GameState) applyDeploy(a *Deploy) error {
	turn, ok := gs.Turn.(DeployTurn)
	if !ok {
		return fmt.Errorf("not in the %s phase", PhaseDeploy)
	}
	if a.Armies < 1 {
		return fmt.Errorf("must deploy at least one army")
	}
	if a.Armies > turn.ArmiesRemaining {
		return fmt.Errorf("cannot deploy %d armies with %d remaining", a.Armies, turn.ArmiesRemaining)
	}
	territory, ok := gs.Territories[a.Territory]
	if !ok || territory.Owner != a.PlayerOrdinal {
		return fmt.Errorf("player %d does not occupy %s", a.PlayerOrdinal, a.Territory)
	}

	territory.Armies += a.Armies
	turn.ArmiesRemaining -= a.Armies
	gs.Turn = turn
	return nil
}

func (gs *GameState) applyAttack(a *Attack) error {
	turn, ok := gs.Turn.(AttackTurn)
	if !ok {
		return fmt.Errorf("not in the %s phase", PhaseAttack)
	}
	from, ok := gs.Territories[a.TerritoryFrom]
	if !ok || from.Owner != a.PlayerOrdinal {
		return fmt.Errorf("player %d does not occupy %s", a.PlayerOrdinal, a.TerritoryFrom)
	}
	attackingDice := len(a.AttackingDiceRoll)
	if attackingDice < 1 {
		return fmt.Errorf("must attack with at least one army")
	}
	if attackingDice > from.Armies-1 {
		return fmt.Errorf("attacking with %d armies requires %d in %s, one must stay behind", attackingDice, attackingDice+1, a.TerritoryFrom)
	}
	to, ok := gs.Territories[a.TerritoryTo]
	if !ok {
		return fmt.Errorf("unknown territory %s", a.TerritoryTo)
	}
	if to.Owner == a.PlayerOrdinal {
		return fmt.Errorf("cannot attack %s: already occupied", a.TerritoryTo)
	}
	if len(a.DefendingDiceRoll) > to.Armies {
		return fmt.Errorf("cannot defend %s with %d dice holding %d armies", a.TerritoryTo, len(a.DefendingDiceRoll), to.Armies)
	}
	if !AreAdjacent(a.TerritoryFrom, a.TerritoryTo) {
		return fmt.Errorf("%s does not border %s", a.TerritoryFrom, a.TerritoryTo)
	}

	attackerLosses, defenderLosses := resolveBattle(a.AttackingDiceRoll, a.DefendingDiceRoll)
	from.Armies -= attackerLosses
	to.Armies -= defenderLosses

	if to.Armies > 0 {
		return nil
	}

	// Capture: the surviving attacking dice must advance; up to all but
	// one army may follow.
	to.Owner = a.PlayerOrdinal
	minArmies := attackingDice - attackerLosses
	maxArmies := from.Armies - 1
	gs.Events = append(gs.Events, TerritoryOccupiedEvent{
		PlayerOrdinal: a.PlayerOrdinal,
		Date:          a.Date,
		Territory:     a.TerritoryTo,
	})

	if minArmies == maxArmies {
		from.Armies -= minArmies
		to.Armies += minArmies
		turn.TerritoryCaptured = true
		gs.Turn = turn
		return nil
	}

	gs.Turn = OccupyTurn{
		PlayerOrdinal:  a.PlayerOrdinal,
		TerritoryFrom:  a.TerritoryFrom,
		TerritoryTo:    a.TerritoryTo,
		MinArmies:      minArmies,
		MaxArmies:      maxArmies,
		SelectedArmies: maxArmies,
	}
	return nil
}

// resolveBattle compares dice sorted high-to-low, pairwise up to the
// shorter roll. Ties favor the defender.
func resolveBattle(attackingDice, defendingDice []int) (attackerLosses, defenderLosses int) {
	attacking := append([]int{}, attackingDice...)
	defending := append([]int{}, defendingDice...)
	sort.Sort(sort.Reverse(sort.IntSlice(attacking)))
	sort.Sort(sort.Reverse(sort.IntSlice(defending)))

	battles := min(len(attacking), len(defending))
	for i := 0; i < battles; i++ {
		if attacking[i] > defending[i] {
			defenderLosses++
		} else {
			attackerLosses++
		}
	}
	return attackerLosses, defenderLosses
}

func (gs *GameState) applyOccupy(a *Occupy) error {
	turn, ok := gs.Turn.(OccupyTurn)
	if !ok {
		return fmt.Errorf("not in the %s phase", PhaseOccupy)
	}
	if a.Armies < turn.MinArmies || a.Armies > turn.MaxArmies {
		return fmt.Errorf("must advance between %d and %d armies", turn.MinArmies, turn.MaxArmies)
	}
	if err := gs.moveArmies(a.PlayerOrdinal, turn.TerritoryFrom, turn.TerritoryTo, a.Armies); err != nil {
		return err
	}
	turn.SelectedArmies = a.Armies
	gs.Turn = turn
	return nil
}

func (gs *GameState) applyFortify(a *Fortify) error {
	if _, ok := gs.Turn.(FortifyTurn); !ok {
		return fmt.Errorf("not in the %s phase", PhaseFortify)
	}
	return gs.moveArmies(a.PlayerOrdinal, a.TerritoryFrom, a.TerritoryTo, a.Armies)
}

// moveArmies is the shared routine behind occupy and fortify. It checks
// ownership of both endpoints and that one army stays behind; it does not
// re-check route contiguity.
func (gs *GameState) moveArmies(player int, from, to string, armies int) error {
	source, ok := gs.Territories[from]
	if !ok || source.Owner != player {
		return fmt.Errorf("player %d does not occupy %s", player, from)
	}
	target, ok := gs.Territories[to]
	if !ok || target.Owner != player {
		return fmt.Errorf("player %d does not occupy %s", player, to)
	}
	if source.Armies-armies < 1 {
		return fmt.Errorf("cannot move %d armies from %s: one must stay behind", armies, from)
	}
	source.Armies -= armies
	target.Armies += armies
	return nil
}

func (gs *GameState) applyDrawCard(a *DrawCard) error {
	if a.Card == "" {
		return fmt.Errorf("expected to draw a card but none drawn")
	}
	return gs.endPhase(PhaseAttack, a.Card, a.Date)
}

// endPhase drives the turn-phase transition table. Ending the attack
// phase settles the card draw owed for a capture: end_phase carries no
// card, draw_card carries one.
func (gs *GameState) endPhase(phase Phase, card string, at time.Time) error {
	if gs.Turn.Phase() != phase {
		return fmt.Errorf("not in the %s phase", phase)
	}

	switch turn := gs.Turn.(type) {
	case DeployTurn:
		gs.Turn = AttackTurn{PlayerOrdinal: turn.PlayerOrdinal}
	case AttackTurn:
		if turn.TerritoryCaptured && card == "" {
			return fmt.Errorf("expected to draw a card but none drawn")
		}
		if !turn.TerritoryCaptured && card != "" {
			return fmt.Errorf("not expected to draw a card")
		}
		if card != "" {
			player := gs.player(turn.PlayerOrdinal)
			player.Cards = append(player.Cards, card)
		}
		gs.Turn = FortifyTurn{PlayerOrdinal: turn.PlayerOrdinal}
	case OccupyTurn:
		// A captured territory sits at zero armies until the advance
		// resolves; ending the phase before then would leave it empty
		// for good.
		if gs.Territories[turn.TerritoryTo].Armies < turn.MinArmies {
			return fmt.Errorf("expected to advance armies into %s", turn.TerritoryTo)
		}
		gs.Turn = AttackTurn{PlayerOrdinal: turn.PlayerOrdinal, TerritoryCaptured: true}
	case FortifyTurn:
		next := turn.PlayerOrdinal%len(gs.Players) + 1
		gs.TurnNumber++
		deployment := NextDeployment(next, gs.Territories)
		gs.Events = append(gs.Events, DeploymentEvent{
			PlayerOrdinal: next,
			Date:          at,
			TurnNumber:    gs.TurnNumber,
			Deployment:    deployment,
		})
		gs.Turn = DeployTurn{PlayerOrdinal: next, ArmiesRemaining: deployment.Total}
	}
	return nil
}

func (gs *GameState) applyTurnInCards(a *TurnInCards) error {
	turn, ok := gs.Turn.(DeployTurn)
	if !ok {
		return fmt.Errorf("not in the %s phase", PhaseDeploy)
	}
	if len(a.Cards) != 3 {
		return fmt.Errorf("must turn in three of the same or one of each card")
	}
	for _, card := range a.Cards {
		if !IsCardName(card) {
			return fmt.Errorf("unknown card %s", card)
		}
	}

	bonus, err := cardBonus(a.Cards)
	if err != nil {
		return err
	}

	player := gs.player(a.PlayerOrdinal)
	for _, card := range a.Cards {
		player.removeCard(card)
	}

	// The first turned-in card matching an occupied territory pays two
	// extra armies there; later matches pay nothing.
	for _, card := range a.Cards {
		if IsWildCard(card) {
			continue
		}
		if territory := gs.Territories[card]; territory.Owner == a.PlayerOrdinal {
			territory.Armies += 2
			break
		}
	}

	turn.ArmiesRemaining += bonus
	gs.Turn = turn
	return nil
}

// MarshalJSON renders the state with phase-tagged turn data and
// type-tagged events.
func (gs *GameState) MarshalJSON() ([]byte, error) {
	turn, err := MarshalTurnState(gs.Turn)
	if err != nil {
		return nil, err
	}
	events := make([]json.RawMessage, len(gs.Events))
	for i, e := range gs.Events {
		if events[i], err = MarshalEvent(e); err != nil {
			return nil, err
		}
	}
	return json.Marshal(struct {
		ID          string                     `json:"id"`
		TurnNumber  int                        `json:"turnNumber"`
		Players     []*Player                  `json:"players"`
		Turn        json.RawMessage            `json:"turn"`
		Territories map[string]*TerritoryState `json:"territories"`
		Events      []json.RawMessage          `json:"events"`
	}{gs.ID, gs.TurnNumber, gs.Players, turn, gs.Territories, events})
}
