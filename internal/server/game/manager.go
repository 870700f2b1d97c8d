package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chessington/internal/chessington"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNoPiece      = errors.New("no piece on square")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrIllegalMove  = errors.New("illegal move")
)

// Store persists games. A nil Store keeps everything in memory.
type Store interface {
	SaveGame(ctx context.Context, s Snapshot) error
	ListGames(ctx context.Context) ([]Snapshot, error)
}

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{games: make(map[string]*GameState), store: store}
}

func (m *Manager) NewGame(ctx context.Context) (*GameState, error) {
	return m.add(ctx, chessington.NewStartingBoard())
}

func (m *Manager) NewGameFromFEN(ctx context.Context, fen string) (*GameState, error) {
	b, err := chessington.DecodeFEN(fen)
	if err != nil {
		return nil, err
	}
	return m.add(ctx, b)
}

func (m *Manager) add(ctx context.Context, b *chessington.Board) (*GameState, error) {
	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		Board:     b,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.persist(ctx, g.snapshot()); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()
	return g, nil
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrGameNotFound)
	}
	return g, nil
}

// List returns the ids of all games, sorted.
func (m *Manager) List() []string {
	m.mu.RLock()
	ids := maps.Keys(m.games)
	m.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// AvailableMoves returns what the piece on from may do. It does not check
// whose turn it is.
func (m *Manager) AvailableMoves(id string, from chessington.Square) ([]chessington.Square, error) {
	g, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.Board.PieceAt(from)
	if p == nil {
		return nil, fmt.Errorf("%v: %w", from, ErrNoPiece)
	}
	return p.AvailableMoves(g.Board)
}

// Play generates the mover's available squares and applies the move under
// one lock, so no other request can change the board in between.
func (m *Manager) Play(ctx context.Context, id string, from, to chessington.Square) (MoveRecord, Snapshot, error) {
	g, err := m.Get(id)
	if err != nil {
		return MoveRecord{}, Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	b := g.Board
	p := b.PieceAt(from)
	if p == nil {
		return MoveRecord{}, Snapshot{}, fmt.Errorf("%v: %w", from, ErrNoPiece)
	}
	if p.Player != b.CurrentPlayer {
		return MoveRecord{}, Snapshot{}, fmt.Errorf("%v to move, got %v: %w", b.CurrentPlayer, p, ErrNotYourTurn)
	}
	avail, err := p.AvailableMoves(b)
	if err != nil {
		return MoveRecord{}, Snapshot{}, err
	}
	if !slices.Contains(avail, to) {
		return MoveRecord{}, Snapshot{}, fmt.Errorf("%v %v->%v: %w", p, from, to, ErrIllegalMove)
	}
	if err := p.MoveTo(b, to); err != nil {
		return MoveRecord{}, Snapshot{}, err
	}

	rec := MoveRecord{
		Ply:    len(g.Moves) + 1,
		From:   from,
		To:     to,
		Kind:   p.Kind,
		Player: p.Player,
	}
	g.Moves = append(g.Moves, rec)
	g.UpdatedAt = time.Now()

	snap := g.snapshot()
	if err := m.persist(ctx, snap); err != nil {
		// 内存中的对局已经更新，持久化失败只记录
		log.Printf("game %s: persist ply %d: %v", g.ID, rec.Ply, err)
	}
	return rec, snap, nil
}

// Restore loads every stored game into memory. Games already present are
// left alone.
func (m *Manager) Restore(ctx context.Context) (int, error) {
	if m.store == nil {
		return 0, nil
	}
	snaps, err := m.store.ListGames(ctx)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range snaps {
		if _, ok := m.games[s.ID]; ok {
			continue
		}
		b, err := chessington.BoardFromPlacements(s.Placements, s.ToMove)
		if err != nil {
			log.Printf("restore game %s: %v", s.ID, err)
			continue
		}
		m.games[s.ID] = &GameState{
			ID:        s.ID,
			Board:     b,
			Moves:     s.Moves,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		}
		n++
	}
	return n, nil
}

func (m *Manager) persist(ctx context.Context, s Snapshot) error {
	if m.store == nil {
		return nil
	}
	return m.store.SaveGame(ctx, s)
}
