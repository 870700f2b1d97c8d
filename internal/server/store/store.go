package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"chessington/internal/chessington"
	"chessington/internal/server/game"
)

var ErrNotFound = errors.New("stored game not found")

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id             TEXT PRIMARY KEY,
	fen            TEXT NOT NULL,
	pieces         TEXT NOT NULL,
	current_player INTEGER NOT NULL,
	position_hash  TEXT NOT NULL,
	created_at     INTEGER NOT NULL,
	updated_at     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS moves (
	game_id TEXT NOT NULL REFERENCES games(id),
	ply     INTEGER NOT NULL,
	from_sq TEXT NOT NULL,
	to_sq   TEXT NOT NULL,
	kind    INTEGER NOT NULL,
	player  INTEGER NOT NULL,
	PRIMARY KEY (game_id, ply)
);`

// Store keeps games in a SQLite file.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	// sqlite 只允许一个写者
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveGame upserts the game row and appends moves not stored yet.
func (s *Store) SaveGame(ctx context.Context, snap game.Snapshot) error {
	pieces, err := json.Marshal(snap.Placements)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO games (id, fen, pieces, current_player, position_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			fen = excluded.fen,
			pieces = excluded.pieces,
			current_player = excluded.current_player,
			position_hash = excluded.position_hash,
			updated_at = excluded.updated_at`,
		snap.ID, snap.FEN, string(pieces), int(snap.ToMove),
		strconv.FormatUint(snap.Hash, 16),
		snap.CreatedAt.UnixNano(), snap.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("save game %s: %w", snap.ID, err)
	}

	var stored int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM moves WHERE game_id = ?`, snap.ID).Scan(&stored); err != nil {
		return err
	}
	for _, mv := range snap.Moves[min(stored, len(snap.Moves)):] {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO moves (game_id, ply, from_sq, to_sq, kind, player) VALUES (?, ?, ?, ?, ?, ?)`,
			snap.ID, mv.Ply, mv.From.String(), mv.To.String(), int(mv.Kind), int(mv.Player))
		if err != nil {
			return fmt.Errorf("save game %s ply %d: %w", snap.ID, mv.Ply, err)
		}
	}
	return tx.Commit()
}

func (s *Store) LoadGame(ctx context.Context, id string) (game.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, fen, pieces, current_player, position_hash, created_at, updated_at
		FROM games WHERE id = ?`, id)
	snap, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Snapshot{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return game.Snapshot{}, err
	}
	snap.Moves, err = s.loadMoves(ctx, id)
	return snap, err
}

func (s *Store) ListGames(ctx context.Context) ([]game.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fen, pieces, current_player, position_hash, created_at, updated_at
		FROM games ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	var out []game.Snapshot
	for rows.Next() {
		snap, err := scanGame(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range out {
		if out[i].Moves, err = s.loadMoves(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(sc scanner) (game.Snapshot, error) {
	var (
		snap             game.Snapshot
		pieces, hash     string
		toMove           int
		created, updated int64
	)
	if err := sc.Scan(&snap.ID, &snap.FEN, &pieces, &toMove, &hash, &created, &updated); err != nil {
		return game.Snapshot{}, err
	}
	if err := json.Unmarshal([]byte(pieces), &snap.Placements); err != nil {
		return game.Snapshot{}, fmt.Errorf("game %s pieces: %w", snap.ID, err)
	}
	h, err := strconv.ParseUint(hash, 16, 64)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("game %s hash: %w", snap.ID, err)
	}
	snap.Hash = h
	snap.ToMove = chessington.Player(toMove)
	snap.CreatedAt = time.Unix(0, created)
	snap.UpdatedAt = time.Unix(0, updated)
	return snap, nil
}

func (s *Store) loadMoves(ctx context.Context, id string) ([]game.MoveRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ply, from_sq, to_sq, kind, player FROM moves
		WHERE game_id = ? ORDER BY ply`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.MoveRecord
	for rows.Next() {
		var (
			rec          game.MoveRecord
			from, to     string
			kind, player int
		)
		if err := rows.Scan(&rec.Ply, &from, &to, &kind, &player); err != nil {
			return nil, err
		}
		if rec.From, err = chessington.ParseSquare(from); err != nil {
			return nil, err
		}
		if rec.To, err = chessington.ParseSquare(to); err != nil {
			return nil, err
		}
		rec.Kind = chessington.Kind(kind)
		rec.Player = chessington.Player(player)
		out = append(out, rec)
	}
	return out, rows.Err()
}
