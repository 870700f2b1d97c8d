package chessington

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// dragontoothmg 的格子编号：a1=0, h1=7, a8=56，与 (row, col) 一一对应
func squareIndex(sq Square) uint { return uint(sq.Row*Size + sq.Col) }

func sideBitboards(b *Board, side Player) dragontoothmg.Bitboards {
	var bb dragontoothmg.Bitboards
	for _, pl := range b.Placements() {
		if pl.Player != side {
			continue
		}
		bit := uint64(1) << squareIndex(pl.Square)
		switch pl.Kind {
		case Pawn:
			bb.Pawns |= bit
		case Knight:
			bb.Knights |= bit
		case Bishop:
			bb.Bishops |= bit
		case Rook:
			bb.Rooks |= bit
		case Queen:
			bb.Queens |= bit
		case King:
			bb.Kings |= bit
		}
		bb.All |= bit
	}
	return bb
}

// EncodeFEN writes piece placement and side to move. Castling and en
// passant are not modelled and always come out as "-".
func (b *Board) EncodeFEN() string {
	db := dragontoothmg.Board{
		Wtomove:    b.CurrentPlayer == White,
		Fullmoveno: 1,
		White:      sideBitboards(b, White),
		Black:      sideBitboards(b, Black),
	}
	return db.ToFen()
}

// DecodeFEN builds a board from FEN. Pawns standing on their home row are
// treated as unmoved; every other pawn has already moved.
func DecodeFEN(fen string) (b *Board, err error) {
	fen, pieces, err := normalizeFEN(fen)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("%w: %v", ErrInvalidFEN, r)
		}
	}()
	db := dragontoothmg.ParseFen(fen)
	// ParseFen 出错时返回空棋盘而不报错
	if n := bits.OnesCount64(db.White.All | db.Black.All); n != pieces {
		return nil, fmt.Errorf("%w: parsed %d pieces, placement has %d", ErrInvalidFEN, n, pieces)
	}

	b = NewEmptyBoard()
	if !db.Wtomove {
		b.CurrentPlayer = Black
	}
	fill(b, &db.White, White)
	fill(b, &db.Black, Black)
	return b, nil
}

func fill(b *Board, bb *dragontoothmg.Bitboards, side Player) {
	sets := []struct {
		bits uint64
		kind Kind
	}{
		{bb.Pawns, Pawn},
		{bb.Knights, Knight},
		{bb.Bishops, Bishop},
		{bb.Rooks, Rook},
		{bb.Queens, Queen},
		{bb.Kings, King},
	}
	for _, s := range sets {
		for idx := 0; idx < Size*Size; idx++ {
			if s.bits&(uint64(1)<<uint(idx)) == 0 {
				continue
			}
			sq := Square{Row: idx / Size, Col: idx % Size}
			p := NewPiece(s.kind, side)
			if s.kind == Pawn {
				p.FirstMove = sq.Row == pawnHomeRow(side)
			}
			b.squares[sq.Row][sq.Col] = p
		}
	}
}

func pawnHomeRow(side Player) int {
	if side == Black {
		return Size - 2
	}
	return 1
}

// normalizeFEN checks every field and pads the optional trailing ones so
// the parser never indexes past the input. It also returns the number of
// pieces in the placement field.
func normalizeFEN(fen string) (string, int, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 || len(fields) > 6 {
		return "", 0, fmt.Errorf("%w: want 2 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != Size {
		return "", 0, fmt.Errorf("%w: want %d ranks, got %d", ErrInvalidFEN, Size, len(ranks))
	}
	pieces := 0
	for i, rank := range ranks {
		n := 0
		for _, ch := range rank {
			switch {
			case ch >= '1' && ch <= '8':
				n += int(ch - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", ch):
				n++
				pieces++
			default:
				return "", 0, fmt.Errorf("%w: bad character %q in rank %d", ErrInvalidFEN, ch, Size-i)
			}
		}
		if n != Size {
			return "", 0, fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, Size-i, n)
		}
	}
	if fields[1] != "w" && fields[1] != "b" {
		return "", 0, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}
	defaults := []string{"-", "-", "0", "1"}
	for len(fields) < 6 {
		fields = append(fields, defaults[len(fields)-2])
	}
	if err := checkCastling(fields[2]); err != nil {
		return "", 0, err
	}
	if err := checkEnPassant(fields[3]); err != nil {
		return "", 0, err
	}
	if n, err := strconv.Atoi(fields[4]); err != nil || n < 0 {
		return "", 0, fmt.Errorf("%w: halfmove clock %q", ErrInvalidFEN, fields[4])
	}
	if n, err := strconv.Atoi(fields[5]); err != nil || n < 1 {
		return "", 0, fmt.Errorf("%w: fullmove number %q", ErrInvalidFEN, fields[5])
	}
	return strings.Join(fields, " "), pieces, nil
}

func checkCastling(field string) error {
	if field == "-" {
		return nil
	}
	seen := ""
	for _, ch := range field {
		if !strings.ContainsRune("KQkq", ch) || strings.ContainsRune(seen, ch) {
			return fmt.Errorf("%w: castling field %q", ErrInvalidFEN, field)
		}
		seen += string(ch)
	}
	return nil
}

// 吃过路兵目标格只能在第 3 或第 6 横线
func checkEnPassant(field string) error {
	if field == "-" {
		return nil
	}
	sq, err := ParseSquare(field)
	if err != nil || (sq.Row != 2 && sq.Row != 5) {
		return fmt.Errorf("%w: en passant square %q", ErrInvalidFEN, field)
	}
	return nil
}
