package chessington

// 兵：向前一格，未动过时可走两格；遇子即停（暂不支持斜吃）
func genPawnMoves(b *Board, p *Piece, from Square, moves *[]Square) {
	dir := pawnDir(p.Player)
	maxSteps := 1
	if p.FirstMove {
		maxSteps = 2
	}
	for step := 1; step <= maxSteps; step++ {
		to := from.Offset(step*dir, 0)
		if !to.OnBoard() || !b.IsEmpty(to) {
			return
		}
		*moves = append(*moves, to)
	}
}
