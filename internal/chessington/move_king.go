package chessington

// 王：周围八格，只能走空格（暂不支持吃子）
func genKingMoves(b *Board, p *Piece, from Square, moves *[]Square) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			to := from.Offset(dr, dc)
			if !to.OnBoard() {
				continue
			}
			if b.IsEmpty(to) {
				*moves = append(*moves, to)
			}
		}
	}
}
