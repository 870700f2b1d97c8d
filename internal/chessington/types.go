package chessington

import "fmt"

type Player int8

const (
	White Player = iota
	Black
)

func (p Player) Opponent() Player {
	if p == White {
		return Black
	}
	return White
}

func (p Player) String() string {
	switch p {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return fmt.Sprintf("Player(%d)", int8(p))
	}
}

// 兵的前进方向：白向行号增大，黑向行号减小
func pawnDir(p Player) int {
	if p == Black {
		return -1
	}
	return +1
}

type Kind int8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindLetters = map[Kind]byte{
	Pawn:   'p',
	Knight: 'n',
	Bishop: 'b',
	Rook:   'r',
	Queen:  'q',
	King:   'k',
}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Square is a (row, col) pair. Row 0 is white's back rank.
// The type itself is unbounded; use OnBoard before indexing.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func At(row, col int) Square { return Square{Row: row, Col: col} }

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

func (s Square) Offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

func (s Square) String() string {
	if !s.OnBoard() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return string([]byte{byte('a' + s.Col), byte('1' + s.Row)})
}

// ParseSquare accepts algebraic notation ("e2").
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("parse square %q: %w", s, ErrOffBoard)
	}
	sq := Square{Row: int(s[1]) - '1', Col: int(s[0]) - 'a'}
	if !sq.OnBoard() {
		return Square{}, fmt.Errorf("parse square %q: %w", s, ErrOffBoard)
	}
	return sq, nil
}

// Move is a from/to pair produced by side-wide generation.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string { return m.From.String() + m.To.String() }
