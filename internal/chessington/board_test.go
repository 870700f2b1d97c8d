package chessington

import (
	"errors"
	"strings"
	"testing"
)

func TestStartingBoardLayout(t *testing.T) {
	b := NewStartingBoard()
	if b.CurrentPlayer != White {
		t.Fatalf("starting player = %v, want white", b.CurrentPlayer)
	}
	if n := len(b.Placements()); n != 32 {
		t.Fatalf("got %d pieces, want 32", n)
	}
	checks := []struct {
		sq     Square
		kind   Kind
		player Player
	}{
		{At(0, 0), Rook, White},
		{At(0, 4), King, White},
		{At(0, 3), Queen, White},
		{At(1, 5), Pawn, White},
		{At(6, 2), Pawn, Black},
		{At(7, 4), King, Black},
		{At(7, 6), Knight, Black},
	}
	for _, c := range checks {
		p := b.PieceAt(c.sq)
		if p == nil || p.Kind != c.kind || p.Player != c.player || !p.FirstMove {
			t.Fatalf("%v: got %v, want unmoved %v %v", c.sq, p, c.player, c.kind)
		}
	}
	want := "8 rnbqkbnr\n7 pppppppp\n6 ........\n5 ........\n4 ........\n3 ........\n2 PPPPPPPP\n1 RNBQKBNR\n  abcdefgh\n"
	if got := b.String(); got != want {
		t.Fatalf("render mismatch:\n%s", got)
	}
}

func TestFindPieceUsesIdentity(t *testing.T) {
	b := NewEmptyBoard()
	a := NewPiece(Pawn, White)
	twin := NewPiece(Pawn, White)
	if err := b.SetPiece(At(1, 1), a); err != nil {
		t.Fatal(err)
	}
	if err := b.SetPiece(At(1, 2), twin); err != nil {
		t.Fatal(err)
	}
	got, err := b.FindPiece(twin)
	if err != nil || got != At(1, 2) {
		t.Fatalf("find twin: got %v err=%v", got, err)
	}
	if _, err := b.FindPiece(NewPiece(Pawn, White)); !errors.Is(err, ErrPieceNotFound) {
		t.Fatalf("stranger: got err=%v", err)
	}
	if _, err := b.FindPiece(nil); !errors.Is(err, ErrPieceNotFound) {
		t.Fatalf("nil: got err=%v", err)
	}
}

func TestSetPieceKeepsOneLocation(t *testing.T) {
	b := NewEmptyBoard()
	p := NewPiece(King, Black)
	if err := b.SetPiece(At(7, 4), p); err != nil {
		t.Fatal(err)
	}
	if err := b.SetPiece(At(7, 4), p); err != nil {
		t.Fatalf("re-placing on same square: %v", err)
	}
	if err := b.SetPiece(At(6, 4), p); !errors.Is(err, ErrPieceOnBoard) {
		t.Fatalf("second square: got err=%v, want ErrPieceOnBoard", err)
	}
	if err := b.SetPiece(At(-1, 4), NewPiece(Pawn, White)); !errors.Is(err, ErrOffBoard) {
		t.Fatalf("off board: got err=%v", err)
	}
	if got := b.RemovePiece(At(7, 4)); got != p {
		t.Fatalf("remove returned %v", got)
	}
	if b.PieceAt(At(7, 4)) != nil {
		t.Fatalf("square not cleared")
	}
	if b.PieceAt(At(9, 9)) != nil {
		t.Fatalf("off-board lookup returned a piece")
	}
}

func TestMovePiece(t *testing.T) {
	b := NewEmptyBoard()
	black := NewPiece(Pawn, Black)
	victim := NewPiece(Rook, White)
	_ = b.SetPiece(At(6, 0), black)
	_ = b.SetPiece(At(5, 0), victim)

	if err := b.MovePiece(At(6, 0), At(5, 0)); err != nil {
		t.Fatalf("move: %v", err)
	}
	if b.PieceAt(At(5, 0)) != black || !b.IsEmpty(At(6, 0)) {
		t.Fatalf("move did not overwrite:\n%s", b)
	}
	if _, err := b.FindPiece(victim); !errors.Is(err, ErrPieceNotFound) {
		t.Fatalf("overwritten piece still found")
	}
	if b.CurrentPlayer != White {
		t.Fatalf("turn after black move = %v, want white", b.CurrentPlayer)
	}
	if !black.FirstMove {
		t.Fatalf("board move must not touch FirstMove")
	}
	if err := b.MovePiece(At(3, 3), At(4, 3)); !errors.Is(err, ErrEmptySquare) {
		t.Fatalf("empty origin: got err=%v", err)
	}
	if err := b.MovePiece(At(5, 0), At(5, 8)); !errors.Is(err, ErrOffBoard) {
		t.Fatalf("off board: got err=%v", err)
	}
}

func TestPlacementsRoundTrip(t *testing.T) {
	b := NewStartingBoard()
	pawn := b.PieceAt(At(1, 4))
	if err := pawn.MoveTo(b, At(3, 4)); err != nil {
		t.Fatal(err)
	}
	rebuilt, err := BoardFromPlacements(b.Placements(), b.CurrentPlayer)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if rebuilt.Hash() != b.Hash() {
		t.Fatalf("hash mismatch after rebuild:\n%s\n%s", b, rebuilt)
	}
	if p := rebuilt.PieceAt(At(3, 4)); p == nil || p.FirstMove {
		t.Fatalf("moved pawn lost its state: %+v", p)
	}
	if _, err := BoardFromPlacements([]Placement{{Square: At(8, 0), Kind: Pawn}}, White); !errors.Is(err, ErrOffBoard) {
		t.Fatalf("off-board placement: got err=%v", err)
	}
}

func TestSquareNotation(t *testing.T) {
	if s := At(1, 4).String(); s != "e2" {
		t.Fatalf("got %q, want e2", s)
	}
	if s := At(-1, 4).String(); !strings.Contains(s, "-1") {
		t.Fatalf("off-board square rendered as %q", s)
	}
	sq, err := ParseSquare("h8")
	if err != nil || sq != At(7, 7) {
		t.Fatalf("parse h8: got %v err=%v", sq, err)
	}
	for _, bad := range []string{"", "i1", "a9", "e22"} {
		if _, err := ParseSquare(bad); !errors.Is(err, ErrOffBoard) {
			t.Fatalf("parse %q: got err=%v", bad, err)
		}
	}
}
