package chessington

import "fmt"

func generate(b *Board, p *Piece, from Square) ([]Square, error) {
	moves := make([]Square, 0, 8)
	switch p.Kind {
	case Pawn:
		genPawnMoves(b, p, from, &moves)
	case Knight:
		genKnightMoves(b, p, from, &moves)
	case Bishop:
		genBishopMoves(b, p, from, &moves)
	case Rook:
		genRookMoves(b, p, from, &moves)
	case Queen:
		genQueenMoves(b, p, from, &moves)
	case King:
		genKingMoves(b, p, from, &moves)
	default:
		return nil, fmt.Errorf("generate for %v at %v: %w", p, from, ErrUnknownKind)
	}
	return moves, nil
}

// AvailableMovesForSide scans the board row by row and collects the
// available moves of every piece owned by side. A piece of unknown kind
// aborts the scan with ErrUnknownKind.
func (b *Board) AvailableMovesForSide(side Player) ([]Move, error) {
	var out []Move
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b.squares[row][col]
			if p == nil || p.Player != side {
				continue
			}
			from := Square{Row: row, Col: col}
			tos, err := generate(b, p, from)
			if err != nil {
				return nil, err
			}
			for _, to := range tos {
				out = append(out, Move{From: from, To: to})
			}
		}
	}
	return out, nil
}
