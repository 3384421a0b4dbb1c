package server

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"domination/game"
	"domination/rng"
	"domination/store"
)

// Service owns the game lifecycle against the store: it seeds new games,
// reconstructs state by replay, and funnels submitted actions through the
// reducer before appending them to the log.
type Service struct {
	store *store.Store
	log   zerolog.Logger
}

// NewService wires a service over the given store.
func NewService(s *store.Store, log zerolog.Logger) *Service {
	return &Service{store: s, log: log}
}

// PlayerInput names one participant of a new game.
type PlayerInput struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// CreateGame seeds and drafts a new game for the given players in order
// (ordinals are assigned 1..n) and returns the initial state.
func (s *Service) CreateGame(ctx context.Context, inputs []PlayerInput) (*game.GameState, error) {
	if len(inputs) < 2 {
		return nil, fmt.Errorf("need at least two players")
	}
	players := make([]*game.Player, len(inputs))
	for i, input := range inputs {
		if input.Username == "" {
			return nil, fmt.Errorf("player %d has no username", i+1)
		}
		players[i] = &game.Player{
			Ordinal:     i + 1,
			Username:    input.Username,
			DisplayName: input.DisplayName,
		}
	}

	seed := drawSeed()
	if _, err := game.Draft(rng.FromSeed(seed), len(players)); err != nil {
		return nil, err
	}

	id, err := s.store.Create(ctx, seed, players)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	s.log.Info().Str("game", id).Int("players", len(players)).Msg("game created")

	return s.GetGame(ctx, id, players[0].Username)
}

// GetGame reconstructs the current state of a game, or ErrGameNotFound
// when it does not exist or username is not a player.
func (s *Service) GetGame(ctx context.Context, id, username string) (*game.GameState, error) {
	record, err := s.store.GetByUsername(ctx, id, username)
	if err != nil {
		return nil, err
	}
	return replay(record)
}

// ListGames lists the games the username participates in.
func (s *Service) ListGames(ctx context.Context, username string) ([]store.GameSummary, error) {
	return s.store.ListByUsername(ctx, username)
}

// UpdateGame applies one submitted action: reload (full replay), validate
// through the reducer, then append at the ordinal the replay saw. A
// concurrent commit surfaces as a store conflict; the whole cycle retries
// once against the fresh log before giving up.
func (s *Service) UpdateGame(ctx context.Context, id, username string, action game.Action) (*game.GameState, error) {
	for attempt := 0; ; attempt++ {
		record, err := s.store.GetByUsername(ctx, id, username)
		if err != nil {
			return nil, err
		}
		state, err := replay(record)
		if err != nil {
			return nil, err
		}
		next, err := state.Apply(action)
		if err != nil {
			return nil, err
		}

		err = s.store.Append(ctx, id, len(record.Actions), action)
		if err == nil {
			s.log.Info().Str("game", id).Str("action", string(action.Type())).
				Int("player", action.Player()).Msg("action applied")
			return next, nil
		}
		if errors.Is(err, store.ErrConflict) && attempt == 0 {
			s.log.Warn().Str("game", id).Msg("action log conflict, retrying")
			continue
		}
		return nil, err
	}
}

// replay rebuilds state from the persisted unit of truth: re-run the
// draft from the seed, then fold the action log. Every call works on
// fresh structures, so concurrent replays never share mutable data.
func replay(record *store.GameRecord) (*game.GameState, error) {
	territories, err := game.Draft(rng.FromSeed(record.Seed), len(record.Players))
	if err != nil {
		return nil, err
	}
	return game.NewGameState(record.ID, record.Players, territories, record.Actions, record.CreatedAt)
}

// drawSeed draws a fresh random seed for a new game. This is the only
// entropy in the system; everything after it is deterministic.
func drawSeed() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("draw seed: %v", err))
	}
	return binary.LittleEndian.Uint64(buf[:])
}
