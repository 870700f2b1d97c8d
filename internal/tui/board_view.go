package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chessington/internal/chessington"
)

var (
	styleCursor   = lipgloss.NewStyle().Reverse(true)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	styleTarget   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleLog      = lipgloss.NewStyle().Faint(true)
	styleTitle    = lipgloss.NewStyle().Bold(true)
)

// RenderBoard draws rank 8 on top. Targets are marked with '*' on empty
// squares.
func RenderBoard(b *chessington.Board, cursor chessington.Square, selected *chessington.Square, targets []chessington.Square) string {
	isTarget := make(map[chessington.Square]bool, len(targets))
	for _, t := range targets {
		isTarget[t] = true
	}

	var sb strings.Builder
	sb.WriteString("    a  b  c  d  e  f  g  h\n")
	sb.WriteString("  +------------------------+\n")
	for row := chessington.Size - 1; row >= 0; row-- {
		sb.WriteByte(byte('1' + row))
		sb.WriteString(" |")
		for col := 0; col < chessington.Size; col++ {
			sq := chessington.At(row, col)
			sb.WriteString(cell(b.PieceAt(sq), sq == cursor, selected != nil && *selected == sq, isTarget[sq]))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("  +------------------------+\n")
	return sb.String()
}

func cell(p *chessington.Piece, isCursor, isSelected, isTarget bool) string {
	ch := "."
	if p != nil {
		ch = string(p.Letter())
	} else if isTarget {
		ch = "*"
	}
	s := " " + ch + " "

	switch {
	case isCursor:
		return styleCursor.Render(s)
	case isSelected:
		return styleSelected.Render(s)
	case isTarget:
		return styleTarget.Render(s)
	}
	return s
}
