package chessington

import "fmt"

const Size = 8

type Board struct {
	squares       [Size][Size]*Piece
	CurrentPlayer Player
}

func NewEmptyBoard() *Board {
	return &Board{CurrentPlayer: White}
}

var backRank = [Size]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStartingBoard sets up the standard initial position, white to move.
func NewStartingBoard() *Board {
	b := NewEmptyBoard()
	for col := 0; col < Size; col++ {
		b.squares[0][col] = NewPiece(backRank[col], White)
		b.squares[1][col] = NewPiece(Pawn, White)
		b.squares[6][col] = NewPiece(Pawn, Black)
		b.squares[7][col] = NewPiece(backRank[col], Black)
	}
	return b
}

// PieceAt returns nil for empty and off-board squares.
func (b *Board) PieceAt(sq Square) *Piece {
	if !sq.OnBoard() {
		return nil
	}
	return b.squares[sq.Row][sq.Col]
}

func (b *Board) IsEmpty(sq Square) bool {
	return b.PieceAt(sq) == nil
}

// SetPiece places p on sq, replacing any occupant. A nil p clears the square.
func (b *Board) SetPiece(sq Square, p *Piece) error {
	if !sq.OnBoard() {
		return fmt.Errorf("set piece at %v: %w", sq, ErrOffBoard)
	}
	if p != nil {
		if cur, err := b.FindPiece(p); err == nil && cur != sq {
			return fmt.Errorf("set %v at %v (already at %v): %w", p, sq, cur, ErrPieceOnBoard)
		}
	}
	b.squares[sq.Row][sq.Col] = p
	return nil
}

func (b *Board) RemovePiece(sq Square) *Piece {
	p := b.PieceAt(sq)
	if p != nil {
		b.squares[sq.Row][sq.Col] = nil
	}
	return p
}

// FindPiece is the reverse lookup: where does this piece instance stand.
func (b *Board) FindPiece(p *Piece) (Square, error) {
	if p != nil {
		for row := 0; row < Size; row++ {
			for col := 0; col < Size; col++ {
				if b.squares[row][col] == p {
					return Square{Row: row, Col: col}, nil
				}
			}
		}
	}
	return Square{}, fmt.Errorf("find %v: %w", p, ErrPieceNotFound)
}

// MovePiece relocates whatever stands on from to to, overwriting the
// destination, and passes the turn to the mover's opponent.
// It does not check that the move is available.
func (b *Board) MovePiece(from, to Square) error {
	if !from.OnBoard() || !to.OnBoard() {
		return fmt.Errorf("move %v->%v: %w", from, to, ErrOffBoard)
	}
	p := b.squares[from.Row][from.Col]
	if p == nil {
		return fmt.Errorf("move %v->%v: %w", from, to, ErrEmptySquare)
	}
	b.squares[to.Row][to.Col] = p
	if from != to {
		b.squares[from.Row][from.Col] = nil
	}
	b.CurrentPlayer = p.Player.Opponent()
	return nil
}

// Placement is one occupied square.
type Placement struct {
	Square    Square `json:"square"`
	Kind      Kind   `json:"kind"`
	Player    Player `json:"player"`
	FirstMove bool   `json:"first_move"`
}

// Placements lists occupied squares in row-major order.
func (b *Board) Placements() []Placement {
	var out []Placement
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.squares[row][col]
			if p == nil {
				continue
			}
			out = append(out, Placement{
				Square:    Square{Row: row, Col: col},
				Kind:      p.Kind,
				Player:    p.Player,
				FirstMove: p.FirstMove,
			})
		}
	}
	return out
}

// BoardFromPlacements rebuilds a board with fresh piece instances.
func BoardFromPlacements(ps []Placement, toMove Player) (*Board, error) {
	b := NewEmptyBoard()
	b.CurrentPlayer = toMove
	for _, pl := range ps {
		if !pl.Square.OnBoard() {
			return nil, fmt.Errorf("placement %v: %w", pl.Square, ErrOffBoard)
		}
		if _, ok := kindLetters[pl.Kind]; !ok {
			return nil, fmt.Errorf("placement %v: %w", pl.Square, ErrUnknownKind)
		}
		p := NewPiece(pl.Kind, pl.Player)
		p.FirstMove = pl.FirstMove
		b.squares[pl.Square.Row][pl.Square.Col] = p
	}
	return b, nil
}
