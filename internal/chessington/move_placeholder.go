package chessington

// The generators below have no movement rules yet and produce no moves.
// Each kind keeps its own function so rules can land without touching
// dispatch.

func genKnightMoves(b *Board, p *Piece, from Square, moves *[]Square) {}

func genBishopMoves(b *Board, p *Piece, from Square, moves *[]Square) {}

func genRookMoves(b *Board, p *Piece, from Square, moves *[]Square) {}

func genQueenMoves(b *Board, p *Piece, from Square, moves *[]Square) {}
