package chessington

const zobristKinds = int(King) + 1 // Kind 范围 [1..6]，0 保留不用

const zobristSeed = 0x63686573736e6774 // "chessngt"

// keyStream is a xorshift64* generator. The state must never be zero.
type keyStream struct{ state uint64 }

func (s *keyStream) next() uint64 {
	s.state ^= s.state >> 12
	s.state ^= s.state << 25
	s.state ^= s.state >> 27
	return s.state * 0x2545F4914F6CDD1D
}

// zobristKeys holds one key per (player, kind, square), one per square for
// an unmoved piece, and one for black to move.
type zobristKeys struct {
	pieces    [2][zobristKinds][Size * Size]uint64
	firstMove [Size * Size]uint64
	side      uint64
}

func newZobristKeys(seed uint64) *zobristKeys {
	s := keyStream{state: seed}
	z := new(zobristKeys)
	for side := range z.pieces {
		for k := 1; k < zobristKinds; k++ {
			for sq := range z.pieces[side][k] {
				z.pieces[side][k][sq] = s.next()
			}
		}
	}
	for sq := range z.firstMove {
		z.firstMove[sq] = s.next()
	}
	z.side = s.next()
	return z
}

var zobrist = newZobristKeys(zobristSeed)

// Hash is a Zobrist key over placement, unmoved pieces and side to move.
func (b *Board) Hash() uint64 {
	var h uint64
	for _, pl := range b.Placements() {
		k := int(pl.Kind)
		if k <= 0 || k >= zobristKinds {
			continue
		}
		idx := squareIndex(pl.Square)
		h ^= zobrist.pieces[pl.Player][k][idx]
		if pl.FirstMove {
			h ^= zobrist.firstMove[idx]
		}
	}
	if b.CurrentPlayer == Black {
		h ^= zobrist.side
	}
	return h
}
