package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"chessington/internal/chessington"
	"chessington/internal/server/game"
)

type mode int

const (
	modeNormal mode = iota
	modeInput
)

const maxLogLines = 8

type Model struct {
	games  *game.Manager
	gameID string

	cursor   chessington.Square
	selected *chessington.Square
	targets  []chessington.Square

	m        mode
	input    textinput.Model
	logLines []string

	width  int
	height int
}

// NewModel starts a game from fen, or the standard position when fen is
// empty.
func NewModel(m *game.Manager, fen string) (Model, error) {
	ti := textinput.New()
	ti.Placeholder = "fen <FEN> | reset"
	ti.Prompt = ": "
	ti.CharLimit = 120
	ti.Width = 60

	model := Model{
		games:  m,
		cursor: chessington.At(1, 4),
		m:      modeNormal,
		input:  ti,
	}
	if err := model.startGame(fen); err != nil {
		return Model{}, err
	}
	model.appendLog("ready (enter selects, : for commands, q quits)")
	return model, nil
}

func (m *Model) startGame(fen string) error {
	ctx := context.Background()
	var (
		g   *game.GameState
		err error
	)
	if fen == "" {
		g, err = m.games.NewGame(ctx)
	} else {
		g, err = m.games.NewGameFromFEN(ctx, fen)
	}
	if err != nil {
		return err
	}
	m.gameID = g.ID
	m.clearSelection()
	return nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = min(80, max(30, m.width-4))
		return m, nil

	case tea.KeyMsg:
		if m.m == modeInput {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(1, 0)
		case "down", "j":
			m.moveCursor(-1, 0)
		case "left", "h":
			m.moveCursor(0, -1)
		case "right", "l":
			m.moveCursor(0, 1)
		case "enter", " ":
			m.activate()
		case "esc":
			m.clearSelection()
		case ":", "i":
			m.m = modeInput
			m.input.SetValue("")
			m.input.Focus()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.m = modeNormal
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		line := strings.TrimSpace(m.input.Value())
		m.m = modeNormal
		m.input.Blur()
		m.runCommand(line)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) runCommand(line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case "":
	case "reset":
		if err := m.startGame(""); err != nil {
			m.appendLog("reset: " + err.Error())
			return
		}
		m.appendLog("new game")
	case "fen":
		if err := m.startGame(strings.TrimSpace(arg)); err != nil {
			m.appendLog("fen: " + err.Error())
			return
		}
		m.appendLog("loaded position")
	default:
		m.appendLog(fmt.Sprintf("unknown command %q", cmd))
	}
}

func (m *Model) moveCursor(dr, dc int) {
	next := m.cursor.Offset(dr, dc)
	if next.OnBoard() {
		m.cursor = next
	}
}

// activate plays to the cursor when it is one of the selected piece's
// targets, otherwise selects the piece under the cursor.
func (m *Model) activate() {
	if m.selected != nil && m.isTarget(m.cursor) {
		from := *m.selected
		rec, _, err := m.games.Play(context.Background(), m.gameID, from, m.cursor)
		m.clearSelection()
		if err != nil {
			m.appendLog(err.Error())
			return
		}
		m.appendLog(fmt.Sprintf("%d. %v %v %v-%v", rec.Ply, rec.Player, rec.Kind, rec.From, rec.To))
		return
	}

	moves, err := m.games.AvailableMoves(m.gameID, m.cursor)
	if err != nil {
		m.clearSelection()
		m.appendLog(err.Error())
		return
	}
	sq := m.cursor
	m.selected = &sq
	m.targets = moves
	if len(moves) == 0 {
		m.appendLog(fmt.Sprintf("%v: no available moves", sq))
	}
}

func (m *Model) isTarget(sq chessington.Square) bool {
	for _, t := range m.targets {
		if t == sq {
			return true
		}
	}
	return false
}

func (m *Model) clearSelection() {
	m.selected = nil
	m.targets = nil
}

func (m *Model) appendLog(s string) {
	m.logLines = append(m.logLines, s)
	if len(m.logLines) > maxLogLines {
		m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
	}
}

func (m Model) View() string {
	g, err := m.games.Get(m.gameID)
	if err != nil {
		return err.Error() + "\n"
	}
	snap := g.Snapshot()

	var sb strings.Builder
	sb.WriteString(styleTitle.Render(fmt.Sprintf("chessington  %v to move  ply %d", snap.ToMove, len(snap.Moves))))
	sb.WriteString("\n\n")
	sb.WriteString(RenderBoard(g.Board, m.cursor, m.selected, m.targets))
	sb.WriteString("\n")
	if m.m == modeInput {
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
	}
	sb.WriteString(styleLog.Render(strings.Join(m.logLines, "\n")))
	sb.WriteString("\n")
	return sb.String()
}
