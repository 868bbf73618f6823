// Package tui is the interactive terminal view: a bubbletea program with a movable cursor over the grid.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// View - forwards game loop calls into a running bubbletea program and waits for cell picks from it.
type View struct {
	program *tea.Program
	picks   chan entity.Cell

	done chan struct{}
	once sync.Once
	err  error
}

func New(opts ...tea.ProgramOption) *View {
	picks := make(chan entity.Cell, 1)

	return &View{
		program: tea.NewProgram(newModel(picks), opts...),
		picks:   picks,
		done:    make(chan struct{}),
	}
}

// Start - runs the program in the background. The view stops taking moves once the program exits.
func (that *View) Start() {
	that.once.Do(func() {
		go func() {
			defer close(that.done)

			if _, err := that.program.Run(); err != nil {
				that.err = fmt.Errorf("terminal ui failed: %w", err)
			}
		}()
	})
}

// Wait - blocks until the user quits the program or ctx ends.
func (that *View) Wait(ctx context.Context) error {
	select {
	case <-that.done:
		return that.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close - stops the program and waits for it to restore the terminal.
func (that *View) Close() error {
	that.program.Quit()
	<-that.done

	return that.err
}

func (that *View) DisplayGrid(grid [][]entity.Mark) {
	that.program.Send(gridMsg{grid: grid})
}

func (that *View) DisplayMessage(active *entity.Player) {
	that.program.Send(turnMsg{player: active})
}

func (that *View) DisplayErrorMessage(err error) {
	that.program.Send(errorMsg{err: err})
}

func (that *View) GetUserInput(ctx context.Context) (string, string, error) {
	that.program.Send(awaitMsg{})

	select {
	case <-ctx.Done():
		return "", "", ctx.Err()
	case <-that.done:
		return "", "", apperror.ErrInputClosed
	case cell := <-that.picks:
		return strconv.Itoa(cell.Row), strconv.Itoa(cell.Column), nil
	}
}

func (that *View) DisplayWinner(winner *entity.Player) {
	that.program.Send(winnerMsg{player: winner})
}

func (that *View) DisplayDraw() {
	that.program.Send(drawMsg{})
}
