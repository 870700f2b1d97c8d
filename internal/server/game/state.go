package game

import (
	"sync"
	"time"

	"chessington/internal/chessington"
)

type GameState struct {
	ID        string
	Board     *chessington.Board
	Moves     []MoveRecord
	CreatedAt time.Time
	UpdatedAt time.Time

	// 生成走法与落子必须在同一把锁内完成
	mu sync.Mutex
}

// MoveRecord is one applied move, kept for persistence and export only.
type MoveRecord struct {
	Ply    int                `json:"ply"`
	From   chessington.Square `json:"from"`
	To     chessington.Square `json:"to"`
	Kind   chessington.Kind   `json:"kind"`
	Player chessington.Player `json:"player"`
}

// Snapshot is a copy of the game that is safe to read without the lock.
type Snapshot struct {
	ID         string
	FEN        string
	Hash       uint64
	ToMove     chessington.Player
	Placements []chessington.Placement
	Moves      []MoveRecord
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (g *GameState) snapshot() Snapshot {
	moves := make([]MoveRecord, len(g.Moves))
	copy(moves, g.Moves)
	return Snapshot{
		ID:         g.ID,
		FEN:        g.Board.EncodeFEN(),
		Hash:       g.Board.Hash(),
		ToMove:     g.Board.CurrentPlayer,
		Placements: g.Board.Placements(),
		Moves:      moves,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

// Snapshot locks the game and copies it.
func (g *GameState) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}
