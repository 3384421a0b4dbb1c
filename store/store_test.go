package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"domination/game"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testPlayers() []*game.Player {
	return []*game.Player{
		{Ordinal: 1, Username: "amara", DisplayName: "Amara"},
		{Ordinal: 2, Username: "boris", DisplayName: "Boris"},
	}
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	id, err := s.Create(ctx, 42, testPlayers())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	record, err := s.GetByUsername(ctx, id, "amara")
	require.NoError(t, err)
	require.Equal(t, id, record.ID)
	require.Equal(t, uint64(42), record.Seed)
	require.Equal(t, testPlayers(), record.Players)
	require.Empty(t, record.Actions)
	require.WithinDuration(t, time.Now().UTC(), record.CreatedAt, time.Minute)
}

func TestGetRequiresMembership(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	id, err := s.Create(ctx, 42, testPlayers())
	require.NoError(t, err)

	_, err = s.GetByUsername(ctx, id, "mallory")
	require.ErrorIs(t, err, ErrGameNotFound)

	_, err = s.GetByUsername(ctx, "no-such-game", "amara")
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestAppendPreservesOrderAndPayload(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	id, err := s.Create(ctx, 42, testPlayers())
	require.NoError(t, err)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	first := &game.Deploy{PlayerOrdinal: 1, Date: at, Territory: "brazil", Armies: 3}
	second := &game.EndPhase{PlayerOrdinal: 1, Date: at, EndingPhase: game.PhaseDeploy}

	require.NoError(t, s.Append(ctx, id, 0, first))
	require.NoError(t, s.Append(ctx, id, 1, second))

	record, err := s.GetByUsername(ctx, id, "boris")
	require.NoError(t, err)
	require.Equal(t, []game.Action{first, second}, record.Actions)
}

func TestAppendConflictOnStaleOrdinal(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	id, err := s.Create(ctx, 42, testPlayers())
	require.NoError(t, err)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	action := &game.Deploy{PlayerOrdinal: 1, Date: at, Territory: "brazil", Armies: 3}

	require.NoError(t, s.Append(ctx, id, 0, action))
	require.ErrorIs(t, s.Append(ctx, id, 0, action),
		ErrConflict, "second writer lost the race for ordinal 1")

	record, err := s.GetByUsername(ctx, id, "amara")
	require.NoError(t, err)
	require.Len(t, record.Actions, 1, "the losing write must not land")
}

func TestAppendToMissingGame(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	err := s.Append(ctx, "no-such-game", 0,
		&game.Deploy{PlayerOrdinal: 1, Date: at, Territory: "brazil", Armies: 3})
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestListByUsername(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	first, err := s.Create(ctx, 1, testPlayers())
	require.NoError(t, err)
	second, err := s.Create(ctx, 2, []*game.Player{
		{Ordinal: 1, Username: "amara", DisplayName: "Amara"},
		{Ordinal: 2, Username: "chen", DisplayName: "Chen"},
	})
	require.NoError(t, err)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Append(ctx, first, 0,
		&game.Deploy{PlayerOrdinal: 1, Date: at, Territory: "brazil", Armies: 3}))

	summaries, err := s.ListByUsername(ctx, "amara")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := map[string]GameSummary{}
	for _, summary := range summaries {
		byID[summary.ID] = summary
	}
	require.Equal(t, []string{"amara", "boris"}, byID[first].Players)
	require.Equal(t, 1, byID[first].Actions)
	require.Equal(t, []string{"amara", "chen"}, byID[second].Players)
	require.Equal(t, 0, byID[second].Actions)

	summaries, err = s.ListByUsername(ctx, "boris")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, first, summaries[0].ID)

	summaries, err = s.ListByUsername(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, summaries)
}
