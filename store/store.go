// Package store persists games as (seed, ordered actions) in SQLite.
// Game state is never stored: it is a projection replayed from the action
// log, which is append-only and ordinal-indexed.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"domination/game"
)

// ErrGameNotFound is returned when a game does not exist or the username
// is not one of its players.
var ErrGameNotFound = errors.New("game not found")

// ErrConflict is returned when an append targets a stale ordinal: another
// action was committed first, and the caller must reload and retry.
var ErrConflict = errors.New("action log conflict")

// Store wraps the SQLite connection.
type Store struct {
	db *sql.DB
}

// GameRecord is the persisted unit of truth for one game.
type GameRecord struct {
	ID        string
	Seed      uint64
	Players   []*game.Player
	Actions   []game.Action
	CreatedAt time.Time
}

// GameSummary is a listing row.
type GameSummary struct {
	ID        string
	Players   []string
	Actions   int
	CreatedAt time.Time
}

// Open opens (creating if needed) the store at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Single writer avoids lock contention; reads are short.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id         TEXT PRIMARY KEY,
			seed       INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS game_players (
			game_id      TEXT NOT NULL REFERENCES games(id),
			ordinal      INTEGER NOT NULL,
			username     TEXT NOT NULL,
			display_name TEXT NOT NULL,
			PRIMARY KEY (game_id, ordinal)
		);
		CREATE TABLE IF NOT EXISTS actions (
			game_id    TEXT NOT NULL REFERENCES games(id),
			ordinal    INTEGER NOT NULL,
			payload    TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (game_id, ordinal)
		);
		CREATE INDEX IF NOT EXISTS idx_game_players_username ON game_players(username);
	`)
	return err
}

// Create persists a new game with its seed and players and returns the
// generated game ID.
func (s *Store) Create(ctx context.Context, seed uint64, players []*game.Player) (string, error) {
	id := uuid.NewString()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO games (id, seed, created_at) VALUES (?, ?, ?)`,
		id, int64(seed), now); err != nil {
		return "", fmt.Errorf("insert game: %w", err)
	}
	for _, p := range players {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO game_players (game_id, ordinal, username, display_name) VALUES (?, ?, ?, ?)`,
			id, p.Ordinal, p.Username, p.DisplayName); err != nil {
			return "", fmt.Errorf("insert player %d: %w", p.Ordinal, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Append writes one action at ordinal expectedOrdinal+1. If that slot is
// already taken the write loses the race and ErrConflict is returned;
// the caller reloads the log and revalidates before retrying.
func (s *Store) Append(ctx context.Context, gameID string, expectedOrdinal int, action game.Action) error {
	payload, err := game.MarshalAction(action)
	if err != nil {
		return fmt.Errorf("encode action: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO actions (game_id, ordinal, payload, created_at) VALUES (?, ?, ?, ?)`,
		gameID, expectedOrdinal+1, string(payload), time.Now().UTC())
	if err != nil {
		var serr *sqlite.Error
		if errors.As(err, &serr) {
			switch serr.Code() {
			case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
				return ErrConflict
			case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
				return ErrGameNotFound
			}
		}
		return fmt.Errorf("append action: %w", err)
	}
	return nil
}

// GetByUsername loads a game's seed, players and ordered actions,
// provided username is one of its players.
func (s *Store) GetByUsername(ctx context.Context, gameID, username string) (*GameRecord, error) {
	record := &GameRecord{ID: gameID}
	var seed int64
	err := s.db.QueryRowContext(ctx, `
		SELECT g.seed, g.created_at
		FROM games g
		JOIN game_players p ON p.game_id = g.id
		WHERE g.id = ? AND p.username = ?`,
		gameID, username).Scan(&seed, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	record.Seed = uint64(seed)

	rows, err := s.db.QueryContext(ctx, `
		SELECT ordinal, username, display_name
		FROM game_players WHERE game_id = ? ORDER BY ordinal`, gameID)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p := &game.Player{}
		if err := rows.Scan(&p.Ordinal, &p.Username, &p.DisplayName); err != nil {
			return nil, err
		}
		record.Players = append(record.Players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	record.Actions, err = s.actions(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Store) actions(ctx context.Context, gameID string) ([]game.Action, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM actions WHERE game_id = ? ORDER BY ordinal`, gameID)
	if err != nil {
		return nil, fmt.Errorf("load actions: %w", err)
	}
	defer rows.Close()

	var actions []game.Action
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		action, err := game.UnmarshalAction([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("decode action %d: %w", len(actions), err)
		}
		actions = append(actions, action)
	}
	return actions, rows.Err()
}

// ListByUsername lists the games a player participates in, newest first.
func (s *Store) ListByUsername(ctx context.Context, username string) ([]GameSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.created_at,
			(SELECT COUNT(*) FROM actions a WHERE a.game_id = g.id)
		FROM games g
		JOIN game_players p ON p.game_id = g.id
		WHERE p.username = ?
		ORDER BY g.created_at DESC`, username)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var summaries []GameSummary
	for rows.Next() {
		var summary GameSummary
		if err := rows.Scan(&summary.ID, &summary.CreatedAt, &summary.Actions); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range summaries {
		players, err := s.db.QueryContext(ctx, `
			SELECT username FROM game_players WHERE game_id = ? ORDER BY ordinal`,
			summaries[i].ID)
		if err != nil {
			return nil, err
		}
		for players.Next() {
			var name string
			if err := players.Scan(&name); err != nil {
				players.Close()
				return nil, err
			}
			summaries[i].Players = append(summaries[i].Players, name)
		}
		if err := players.Err(); err != nil {
			players.Close()
			return nil, err
		}
		players.Close()
	}
	return summaries, nil
}
