// Package web is the browser view: an HTML page with one button per cell, moves arrive as form posts.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const defaultMoveTimeout = 10 * time.Second

var ErrNoGameWaiting = errors.New("no game is waiting for a move")

// Snapshot - what the page shows; also served as JSON on /state.
// Result is the outcome of the latest finished round. It stays set while the next round is played,
// Over tells whether it belongs to the board on screen.
type Snapshot struct {
	Grid    [][]entity.Mark `json:"grid"`
	Player  string          `json:"player,omitempty"`
	Mark    entity.Mark     `json:"mark,omitempty"`
	Error   string          `json:"error,omitempty"`
	Result  string          `json:"result,omitempty"`
	Over    bool            `json:"over"`
	Waiting bool            `json:"waiting"`
}

type move struct {
	row    string
	column string
	ack    chan struct{}
}

// View - the game loop side of the page. Handlers push moves, GetUserInput pulls them.
//
// A posted move is acknowledged once the loop asks for the next move or announces the result,
// so the redirect after a post always shows the updated board.
type View struct {
	logger *slog.Logger

	moves       chan move
	moveTimeout time.Duration

	mu      sync.Mutex
	state   Snapshot
	pending chan struct{}
	changed chan struct{}
}

func New(logger *slog.Logger) *View {
	return &View{
		logger:      logger.With("component", "web"),
		moves:       make(chan move),
		moveTimeout: defaultMoveTimeout,
		changed:     make(chan struct{}),
	}
}

// Snapshot - a copy of the current page state.
func (that *View) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

// subscribe - the current state and a channel that is closed on the next change.
func (that *View) subscribe() (Snapshot, <-chan struct{}) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked(), that.changed
}

func (that *View) snapshotLocked() Snapshot {
	snapshot := that.state
	snapshot.Grid = make([][]entity.Mark, len(that.state.Grid))
	for i, row := range that.state.Grid {
		snapshot.Grid[i] = append([]entity.Mark(nil), row...)
	}

	return snapshot
}

func (that *View) notifyLocked() {
	close(that.changed)
	that.changed = make(chan struct{})
}

func (that *View) DisplayGrid(grid [][]entity.Mark) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.state.Grid = grid
	that.notifyLocked()
}

func (that *View) DisplayMessage(active *entity.Player) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.state.Player = active.Name()
	that.state.Mark = active.Mark()
	that.state.Over = false
	that.notifyLocked()
}

func (that *View) DisplayErrorMessage(err error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch {
	case errors.Is(err, apperror.ErrCellUnavailable):
		that.state.Error = "That cell is not available, pick another one."
	case errors.Is(err, apperror.ErrMalformedInput):
		that.state.Error = "Could not read that move."
	default:
		that.state.Error = err.Error()
	}
	that.notifyLocked()
}

// GetUserInput - waits for the next posted move.
func (that *View) GetUserInput(ctx context.Context) (string, string, error) {
	that.mu.Lock()
	that.releaseLocked()
	that.state.Waiting = true
	that.notifyLocked()
	that.mu.Unlock()

	defer func() {
		that.mu.Lock()
		that.state.Waiting = false
		that.notifyLocked()
		that.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
		return "", "", ctx.Err()
	case next := <-that.moves:
		that.mu.Lock()
		that.pending = next.ack
		that.state.Error = ""
		that.mu.Unlock()

		return next.row, next.column, nil
	}
}

func (that *View) DisplayWinner(winner *entity.Player) {
	that.finish(fmt.Sprintf("%s (%s) wins!", winner.Name(), winner.Mark()))
}

func (that *View) DisplayDraw() {
	that.finish("It's a draw.")
}

func (that *View) finish(result string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.state.Result = result
	that.state.Over = true
	that.releaseLocked()
	that.notifyLocked()
}

func (that *View) releaseLocked() {
	if that.pending != nil {
		close(that.pending)
		that.pending = nil
	}
}

// submit - hands a move to the game loop and waits until the loop has shown its outcome.
func (that *View) submit(ctx context.Context, row, column string) error {
	ctx, cancel := context.WithTimeout(ctx, that.moveTimeout)
	defer cancel()

	next := move{row: row, column: column, ack: make(chan struct{})}

	select {
	case that.moves <- next:
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrNoGameWaiting, ctx.Err())
	}

	select {
	case <-next.ack:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("move was not processed: %w", ctx.Err())
	}
}
