package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"chessington/internal/chessington"
	"chessington/internal/server/game"
)

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestSelectAndPlay(t *testing.T) {
	mgr := game.NewManager(nil)
	m, err := NewModel(mgr, "")
	if err != nil {
		t.Fatal(err)
	}
	if m.cursor != chessington.At(1, 4) {
		t.Fatalf("cursor starts at %v", m.cursor)
	}

	m = press(t, m, enter)
	if m.selected == nil || len(m.targets) != 2 {
		t.Fatalf("select e2: selected=%v targets=%v", m.selected, m.targets)
	}

	m = press(t, m, runes("k"), runes("k"), enter)
	if m.selected != nil {
		t.Fatalf("selection kept after playing")
	}
	g, err := mgr.Get(m.gameID)
	if err != nil {
		t.Fatal(err)
	}
	if p := g.Board.PieceAt(chessington.At(3, 4)); p == nil || p.Kind != chessington.Pawn {
		t.Fatalf("pawn not on e4:\n%s", g.Board)
	}
	if !strings.Contains(m.View(), "black to move") {
		t.Fatalf("view does not show side to move:\n%s", m.View())
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	m, err := NewModel(game.NewManager(nil), "")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		m = press(t, m, runes("h"), runes("j"))
	}
	if m.cursor != chessington.At(0, 0) {
		t.Fatalf("cursor at %v, want a1", m.cursor)
	}
}

func TestEmptySquareAndCommands(t *testing.T) {
	mgr := game.NewManager(nil)
	m, err := NewModel(mgr, "")
	if err != nil {
		t.Fatal(err)
	}
	m = press(t, m, runes("k"), runes("k"), enter)
	if m.selected != nil {
		t.Fatalf("empty square selected")
	}

	first := m.gameID
	m = press(t, m, runes(":"))
	if m.m != modeInput {
		t.Fatalf("':' did not open input")
	}
	m = press(t, m, runes("fen 8/8/8/8/8/8/8/K7 w"), enter)
	if m.m != modeNormal || m.gameID == first {
		t.Fatalf("fen command did not start a new game")
	}
	g, _ := mgr.Get(m.gameID)
	if p := g.Board.PieceAt(chessington.At(0, 0)); p == nil || p.Kind != chessington.King {
		t.Fatalf("fen not loaded:\n%s", g.Board)
	}

	before := m.gameID
	m = press(t, m, runes(":"), runes("fen nonsense"), enter)
	if m.gameID != before {
		t.Fatalf("bad fen replaced the game")
	}
	if last := m.logLines[len(m.logLines)-1]; !strings.HasPrefix(last, "fen:") {
		t.Fatalf("log: %q", last)
	}
}
