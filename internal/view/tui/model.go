package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// Messages sent from the game loop into the program.
type (
	gridMsg   struct{ grid [][]entity.Mark }
	turnMsg   struct{ player *entity.Player }
	errorMsg  struct{ err error }
	awaitMsg  struct{}
	winnerMsg struct{ player *entity.Player }
	drawMsg   struct{}
)

type model struct {
	keys keyMap
	help help.Model

	grid   [][]entity.Mark
	cursor entity.Cell

	turn   string
	errMsg string
	banner string

	// awaiting is true between awaitMsg and the next pick; picks outside that window are ignored.
	awaiting bool
	picks    chan<- entity.Cell
}

func newModel(picks chan<- entity.Cell) model {
	return model{
		keys:  defaultKeyMap(),
		help:  help.New(),
		picks: picks,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case gridMsg:
		m.grid = msg.grid
		m.clampCursor()
	case turnMsg:
		m.turn = fmt.Sprintf("%s's turn (%s)", msg.player.Name(), renderMark(msg.player.Mark()))
	case errorMsg:
		m.errMsg = describeError(msg.err)
	case awaitMsg:
		m.awaiting = true
	case winnerMsg:
		m.turn = ""
		m.banner = successStyle.Render(fmt.Sprintf("✔ %s (%s) wins!", msg.player.Name(), msg.player.Mark()))
	case drawMsg:
		m.turn = ""
		m.banner = titleStyle.Render("It's a draw.")
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor.Row--
	case key.Matches(msg, m.keys.Down):
		m.cursor.Row++
	case key.Matches(msg, m.keys.Left):
		m.cursor.Column--
	case key.Matches(msg, m.keys.Right):
		m.cursor.Column++
	case key.Matches(msg, m.keys.Select):
		if !m.awaiting {
			return m, nil
		}

		m.awaiting = false
		m.errMsg = ""

		return m, m.pick(m.cursor)
	}

	m.clampCursor()

	return m, nil
}

// pick - hands the cell to GetUserInput; the channel has room for one pick, so this never blocks the program.
func (m model) pick(cell entity.Cell) tea.Cmd {
	picks := m.picks

	return func() tea.Msg {
		picks <- cell
		return nil
	}
}

func (m *model) clampCursor() {
	rows := len(m.grid)
	if rows == 0 {
		return
	}

	columns := len(m.grid[0])
	m.cursor.Row = clamp(m.cursor.Row, 0, rows-1)
	m.cursor.Column = clamp(m.cursor.Column, 0, columns-1)
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tic-Tac-Toe"))
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")

	if m.turn != "" {
		b.WriteString(m.turn)
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("✖ " + m.errMsg))
		b.WriteString("\n")
	}

	if m.banner != "" {
		b.WriteString(m.banner)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return panelStyle.Render(b.String())
}

func (m model) renderGrid() string {
	rows := make([]string, 0, len(m.grid))
	for x, row := range m.grid {
		cells := make([]string, 0, len(row))
		for y, mark := range row {
			style := cellStyle
			if m.cursor.Row == x && m.cursor.Column == y {
				style = selectedStyle
			}

			cells = append(cells, style.Render(renderMark(mark)))
		}

		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderMark(mark entity.Mark) string {
	switch mark {
	case entity.MarkX:
		return xStyle.Render(string(mark))
	case entity.MarkO:
		return oStyle.Render(string(mark))
	default:
		return mutedStyle.Render("·")
	}
}

func describeError(err error) string {
	switch {
	case errors.Is(err, apperror.ErrCellUnavailable):
		return "That cell is not available, pick another one."
	case errors.Is(err, apperror.ErrMalformedInput):
		return "Could not read that move."
	default:
		return err.Error()
	}
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}

	if v > high {
		return high
	}

	return v
}
