package suite

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// Input - one scripted answer to GetUserInput.
type Input struct {
	Row    string
	Column string
	Err    error
}

// Move - shorthand for an Input without an error.
func Move(row, column string) Input {
	return Input{Row: row, Column: column}
}

// ScriptedView - replays Inputs in order and records every call made by the game loop.
// Once the script runs out GetUserInput returns apperror.ErrInputClosed.
type ScriptedView struct {
	mu sync.Mutex

	inputs []Input

	Calls    []string
	Grids    [][][]entity.Mark
	Messages []*entity.Player
	Errors   []error
	Winner   *entity.Player
	Draws    int
}

func NewScriptedView(inputs ...Input) *ScriptedView {
	return &ScriptedView{inputs: inputs}
}

func (that *ScriptedView) DisplayGrid(grid [][]entity.Mark) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.Calls = append(that.Calls, "grid")
	that.Grids = append(that.Grids, grid)
}

func (that *ScriptedView) DisplayMessage(active *entity.Player) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.Calls = append(that.Calls, "message")
	that.Messages = append(that.Messages, active)
}

func (that *ScriptedView) DisplayErrorMessage(err error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.Calls = append(that.Calls, "error")
	that.Errors = append(that.Errors, err)
}

func (that *ScriptedView) GetUserInput(ctx context.Context) (string, string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.Calls = append(that.Calls, "input")

	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	if len(that.inputs) == 0 {
		return "", "", apperror.ErrInputClosed
	}

	next := that.inputs[0]
	that.inputs = that.inputs[1:]

	return next.Row, next.Column, next.Err
}

func (that *ScriptedView) DisplayWinner(winner *entity.Player) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.Calls = append(that.Calls, "winner")
	that.Winner = winner
}

func (that *ScriptedView) DisplayDraw() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.Calls = append(that.Calls, "draw")
	that.Draws++
}

// LastGrid - the most recent grid passed to DisplayGrid, nil if none.
func (that *ScriptedView) LastGrid() [][]entity.Mark {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.Grids) == 0 {
		return nil
	}

	return that.Grids[len(that.Grids)-1]
}

// Remaining - number of scripted inputs not consumed yet.
func (that *ScriptedView) Remaining() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.inputs)
}
