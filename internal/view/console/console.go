// Package console is the line-oriented text view: it prints the grid and reads "row column" lines.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	symCheck = "✔"
	symCross = "✖"

	// longest piece of a bad line echoed back
	maxEcho = 32
)

type Options struct {
	NoColor bool
}

type View struct {
	out io.Writer
	in  io.Reader

	styles styles

	once      sync.Once
	lines     chan readResult
	done      chan struct{}
	closeOnce sync.Once
}

// readResult - one line of input, or the error that ended reading.
type readResult struct {
	line string
	err  error
}

type styles struct {
	x, o, muted, ok, fail, title lipgloss.Style
}

func New(in io.Reader, out io.Writer, opt Options) *View {
	renderer := lipgloss.NewRenderer(out)
	if opt.NoColor {
		renderer = lipgloss.NewRenderer(out, termenv.WithProfile(termenv.Ascii))
	}

	return &View{
		out:   out,
		in:    in,
		lines: make(chan readResult),
		done:  make(chan struct{}),
		styles: styles{
			x:     renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			o:     renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
			muted: renderer.NewStyle().Foreground(lipgloss.Color("8")),
			ok:    renderer.NewStyle().Foreground(lipgloss.Color("10")),
			fail:  renderer.NewStyle().Foreground(lipgloss.Color("9")),
			title: renderer.NewStyle().Bold(true),
		},
	}
}

func (that *View) DisplayGrid(grid [][]entity.Mark) {
	if len(grid) == 0 {
		return
	}

	columns := len(grid[0])

	var b strings.Builder
	b.WriteString("\n   ")
	for y := 0; y < columns; y++ {
		b.WriteString(that.styles.muted.Render(fmt.Sprintf(" %d  ", y)))
	}
	b.WriteString("\n")

	separator := "   " + strings.TrimSuffix(strings.Repeat("---+", columns), "+")
	for x, row := range grid {
		b.WriteString(that.styles.muted.Render(fmt.Sprintf("%d  ", x)))

		cells := make([]string, 0, len(row))
		for _, mark := range row {
			cells = append(cells, " "+that.renderMark(mark)+" ")
		}
		b.WriteString(strings.Join(cells, "|"))
		b.WriteString("\n")

		if x < len(grid)-1 {
			b.WriteString(that.styles.muted.Render(separator))
			b.WriteString("\n")
		}
	}

	fmt.Fprintln(that.out, b.String())
}

func (that *View) renderMark(mark entity.Mark) string {
	switch mark {
	case entity.MarkX:
		return that.styles.x.Render(string(mark))
	case entity.MarkO:
		return that.styles.o.Render(string(mark))
	default:
		return " "
	}
}

func (that *View) DisplayMessage(active *entity.Player) {
	fmt.Fprintf(that.out, "%s's turn (%s). Enter row and column: ", that.styles.title.Render(active.Name()), that.renderMark(active.Mark()))
}

func (that *View) DisplayErrorMessage(err error) {
	var msg string

	switch {
	case errors.Is(err, apperror.ErrCellUnavailable):
		msg = "That cell is not available, try again."
	case errors.Is(err, apperror.ErrMalformedInput):
		msg = "Could not read that move (" + err.Error() + "), type two numbers like: 1 2"
	default:
		msg = err.Error()
	}

	fmt.Fprintln(that.out, that.styles.fail.Render(symCross+" "+msg))
}

// GetUserInput - blocks until a line is read. "q" or "quit", end of input and Close all close the game.
// A failed read is returned as it is.
func (that *View) GetUserInput(ctx context.Context) (string, string, error) {
	that.once.Do(that.startReading)

	select {
	case <-ctx.Done():
		return "", "", ctx.Err()
	case <-that.done:
		return "", "", apperror.ErrInputClosed
	case next, ok := <-that.lines:
		if !ok {
			return "", "", apperror.ErrInputClosed
		}

		if next.err != nil {
			return "", "", next.err
		}

		return parseLine(next.line)
	}
}

// Close - stops the reader goroutine once it is done with the line it is blocked on.
func (that *View) Close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

func (that *View) DisplayWinner(winner *entity.Player) {
	fmt.Fprintln(that.out, that.styles.ok.Render(symCheck+" "+winner.Name()+" ("+string(winner.Mark())+") wins!"))
}

func (that *View) DisplayDraw() {
	fmt.Fprintln(that.out, that.styles.title.Render("It's a draw."))
}

// startReading - reads lines on its own goroutine so GetUserInput can give up on ctx.
// Lines have no length limit, an overlong line is just a malformed move.
func (that *View) startReading() {
	go func() {
		defer close(that.lines)

		reader := bufio.NewReader(that.in)
		for {
			line, err := reader.ReadString('\n')
			if line != "" && !that.send(readResult{line: line}) {
				return
			}

			if err != nil {
				if !errors.Is(err, io.EOF) {
					that.send(readResult{err: fmt.Errorf("failed to read input: %w", err)})
				}

				return
			}
		}
	}()
}

func (that *View) send(next readResult) bool {
	select {
	case that.lines <- next:
		return true
	case <-that.done:
		return false
	}
}

func parseLine(line string) (string, string, error) {
	line = strings.TrimSpace(line)

	switch strings.ToLower(line) {
	case "q", "quit", "exit":
		return "", "", apperror.ErrInputClosed
	}

	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	if len(fields) != 2 {
		if len(line) > maxEcho {
			line = line[:maxEcho] + "..."
		}

		return "", "", fmt.Errorf("%w: expected row and column, got %q", apperror.ErrMalformedInput, line)
	}

	return fields[0], fields[1], nil
}
