package chessington

import "fmt"

// Piece holds per-piece state. Its location lives on the Board and is
// found through Board.FindPiece, so the same *Piece is the identity.
type Piece struct {
	Kind      Kind
	Player    Player
	FirstMove bool
}

func NewPiece(kind Kind, player Player) *Piece {
	return &Piece{Kind: kind, Player: player, FirstMove: true}
}

func (p *Piece) String() string {
	if p == nil {
		return "<nil piece>"
	}
	return p.Player.String() + " " + p.Kind.String()
}

// Letter returns the FEN-style letter: uppercase for white.
func (p *Piece) Letter() byte {
	ch, ok := kindLetters[p.Kind]
	if !ok {
		return '?'
	}
	if p.Player == White {
		return ch - ('a' - 'A')
	}
	return ch
}

// AvailableMoves returns the squares the piece's movement rules allow from
// its current square. King safety is not considered. A piece that is not on
// b yields ErrPieceNotFound.
func (p *Piece) AvailableMoves(b *Board) ([]Square, error) {
	from, err := b.FindPiece(p)
	if err != nil {
		return nil, err
	}
	return generate(b, p, from)
}

// MoveTo relocates the piece to sq and clears FirstMove. The destination is
// not checked against AvailableMoves; callers decide what is allowed.
func (p *Piece) MoveTo(b *Board, sq Square) error {
	from, err := b.FindPiece(p)
	if err != nil {
		return err
	}
	if err := b.MovePiece(from, sq); err != nil {
		return fmt.Errorf("%v: %w", p, err)
	}
	p.FirstMove = false
	return nil
}
