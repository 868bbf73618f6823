package tictactoe

import (
	"context"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

// View - everything the game loop needs from a presentation layer.
//
// GetUserInput may block (console read) or wait for an interface event (terminal UI, browser);
// the loop treats both the same way. Coordinates come back as text and are parsed by the loop.
type View interface {
	DisplayGrid(grid [][]entity.Mark)
	DisplayMessage(active *entity.Player)
	DisplayErrorMessage(err error)
	GetUserInput(ctx context.Context) (row, column string, err error)
	DisplayWinner(winner *entity.Player)
	DisplayDraw()
}
