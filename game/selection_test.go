package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectionDeploy(t *testing.T) {
	gs := testState(t, DeployTurn{PlayerOrdinal: 1, ArmiesRemaining: 5})
	s := NewSelection(gs, 1)

	require.EqualError(t, s.SelectTerritory("japan"), "player 1 does not occupy japan")
	require.EqualError(t, s.SelectTerritory("atlantis"), "unknown territory atlantis")
	require.NoError(t, s.SelectTerritory("brazil"))
	require.Equal(t, "brazil", s.Territory)

	require.EqualError(t, s.SelectArmies(6), "cannot deploy 6 armies with 5 remaining")
	require.NoError(t, s.SelectArmies(5))

	action, err := s.Action(testTime)
	require.NoError(t, err)
	require.Equal(t, &Deploy{PlayerOrdinal: 1, Date: testTime, Territory: "brazil", Armies: 5}, action)
}

func TestSelectionAttack(t *testing.T) {
	gs := testState(t, AttackTurn{PlayerOrdinal: 1})
	gs.Territories["brazil"].Armies = 5
	gs.Territories["argentina"].Armies = 1
	s := NewSelection(gs, 1)

	t.Run("source must have armies to spare", func(t *testing.T) {
		require.EqualError(t, s.SelectTerritory("argentina"), "argentina has no armies to spare")
	})

	t.Run("source pick computes enemy candidates", func(t *testing.T) {
		require.NoError(t, s.SelectTerritory("brazil"))
		require.Equal(t, "brazil", s.From)
		require.Equal(t, []string{"north_africa"}, s.Candidates,
			"every other brazil neighbor belongs to player 1")
	})

	t.Run("target must be a candidate", func(t *testing.T) {
		require.EqualError(t, s.SelectTerritory("east_africa"), "cannot attack east_africa from brazil")
		require.NoError(t, s.SelectTerritory("north_africa"))
		require.Equal(t, "north_africa", s.To)
	})

	t.Run("picking an owned territory restarts the source", func(t *testing.T) {
		require.NoError(t, s.SelectTerritory("ukraine"))
		require.Equal(t, "ukraine", s.From)
		require.Empty(t, s.To)
		require.ElementsMatch(t, []string{"ural", "afghanistan", "middle_east"}, s.Candidates)
	})

	t.Run("dice bounded by armies on the source", func(t *testing.T) {
		require.NoError(t, s.SelectTerritory("brazil"))
		require.EqualError(t, s.SelectArmies(5), "only 4 armies can attack from brazil")
		require.NoError(t, s.SelectArmies(3))
	})
}

func TestSelectionFortify(t *testing.T) {
	gs := testState(t, FortifyTurn{PlayerOrdinal: 1})
	gs.Territories["argentina"].Armies = 6
	s := NewSelection(gs, 1)

	require.NoError(t, s.SelectTerritory("argentina"))
	require.Equal(t, "argentina", s.From)

	require.EqualError(t, s.SelectTerritory("japan"), "no route from argentina to japan")

	require.NoError(t, s.SelectTerritory("central_america"))
	require.Equal(t, "central_america", s.To)
	require.Len(t, s.Route, 4, "argentina reaches central america in three hops")
	require.Equal(t, "argentina", s.Route[0])
	require.Equal(t, "central_america", s.Route[3])

	require.EqualError(t, s.SelectArmies(6), "cannot move 6 armies from argentina: one must stay behind")
	require.NoError(t, s.SelectArmies(5))

	action, err := s.Action(testTime)
	require.NoError(t, err)
	require.Equal(t, &Fortify{
		PlayerOrdinal: 1, Date: testTime,
		TerritoryFrom: "argentina", TerritoryTo: "central_america", Armies: 5,
	}, action)
}

func TestSelectionOccupy(t *testing.T) {
	gs := testState(t, OccupyTurn{
		PlayerOrdinal: 1,
		TerritoryFrom: "brazil", TerritoryTo: "north_africa",
		MinArmies: 2, MaxArmies: 7, SelectedArmies: 7,
	})
	s := NewSelection(gs, 1)

	require.Equal(t, "brazil", s.From, "occupy pre-fills from the pending turn")
	require.Equal(t, "north_africa", s.To)
	require.Equal(t, 7, s.Armies)

	require.EqualError(t, s.SelectArmies(1), "must advance between 2 and 7 armies")
	require.EqualError(t, s.SelectArmies(8), "must advance between 2 and 7 armies")
	require.NoError(t, s.SelectArmies(3))

	action, err := s.Action(testTime)
	require.NoError(t, err)
	require.Equal(t, &Occupy{PlayerOrdinal: 1, Date: testTime, Armies: 3}, action)
}

func TestSelectionRejectsOffTurnPicks(t *testing.T) {
	gs := testState(t, DeployTurn{PlayerOrdinal: 1, ArmiesRemaining: 3})
	s := NewSelection(gs, 2)

	require.EqualError(t, s.SelectTerritory("japan"), "not player 2's turn")
}

func TestSelectionClear(t *testing.T) {
	gs := testState(t, AttackTurn{PlayerOrdinal: 1})
	gs.Territories["brazil"].Armies = 5
	s := NewSelection(gs, 1)

	require.NoError(t, s.SelectTerritory("brazil"))
	require.NoError(t, s.SelectArmies(2))
	s.Clear()

	require.Empty(t, s.From)
	require.Empty(t, s.Candidates)
	require.Zero(t, s.Armies)

	_, err := s.Action(testTime)
	require.EqualError(t, err, "no action to build in the attack phase")
}

func TestSelectionIncomplete(t *testing.T) {
	gs := testState(t, DeployTurn{PlayerOrdinal: 1, ArmiesRemaining: 3})
	s := NewSelection(gs, 1)

	_, err := s.Action(testTime)
	require.EqualError(t, err, "deploy selection incomplete")
}
