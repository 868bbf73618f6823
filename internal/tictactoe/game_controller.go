package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDrawn      Status = "drawn"
	StatusAborted    Status = "aborted"
)

type GameConfig struct {
	ID      string
	Rows    int
	Columns int
	Players [2]*entity.Player
}

type Result struct {
	GameID string
	Status Status
	Winner *entity.Player
	Moves  int
}

type GameController struct {
	logger *slog.Logger
	view   View

	id      string
	board   *entity.Board
	players [2]*entity.Player
	active  int
	status  Status
	winner  *entity.Player
	moves   int
}

// NewGameController - validates the setup and returns a game with the first player to move.
func NewGameController(logger *slog.Logger, conf GameConfig, view View) (*GameController, error) {
	if view == nil {
		return nil, apperror.ErrNoView
	}

	if err := validatePlayers(conf.Players); err != nil {
		return nil, err
	}

	board, err := entity.NewBoard(conf.Rows, conf.Columns)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &GameController{
		logger:  logger.With("component", "game", "game_id", conf.ID),
		view:    view,
		id:      conf.ID,
		board:   board,
		players: conf.Players,
		status:  StatusInProgress,
	}, nil
}

func validatePlayers(players [2]*entity.Player) error {
	first, second := players[0], players[1]
	if first == nil || second == nil {
		return fmt.Errorf("%w: two players are required", apperror.ErrInvalidPlayers)
	}

	if !first.Mark().IsValid() || !second.Mark().IsValid() {
		return fmt.Errorf("%w: marks must be %s or %s", apperror.ErrInvalidPlayers, entity.MarkX, entity.MarkO)
	}

	if first.Mark() == second.Mark() {
		return fmt.Errorf("%w: both players use %s", apperror.ErrInvalidPlayers, first.Mark())
	}

	return nil
}

func (that *GameController) ID() string {
	return that.id
}

func (that *GameController) Status() Status {
	return that.status
}

func (that *GameController) ActivePlayer() *entity.Player {
	return that.players[that.active]
}

// Winner - nil unless the game was won.
func (that *GameController) Winner() *entity.Player {
	return that.winner
}

func (that *GameController) Grid() [][]entity.Mark {
	return that.board.Grid()
}

func (that *GameController) IsFinished() bool {
	return that.status != StatusInProgress
}

// Run - plays turns until the game is won, drawn or the input goes away.
func (that *GameController) Run(ctx context.Context) (*Result, error) {
	if that.IsFinished() {
		return that.result(), apperror.ErrGameFinished
	}

	that.logger.Info("game started", "first", that.ActivePlayer().Name())

	for !that.IsFinished() {
		if err := that.playTurn(ctx); err != nil {
			that.status = StatusAborted
			that.logger.Info("game aborted", "error", err)

			return that.result(), fmt.Errorf("game %s aborted: %w", that.id, err)
		}
	}

	that.view.DisplayGrid(that.board.Grid())

	switch that.status {
	case StatusWon:
		that.view.DisplayWinner(that.winner)
		that.logger.Info("game won", "winner", that.winner.Name(), "moves", that.moves)
	case StatusDrawn:
		that.view.DisplayDraw()
		that.logger.Info("game drawn", "moves", that.moves)
	}

	return that.result(), nil
}

// playTurn - one pass of the loop. Rejected input leaves the board and the active player as they were.
// An error is returned only when no further input can be read.
func (that *GameController) playTurn(ctx context.Context) error {
	log := that.logger.With("method", "playTurn")

	active := that.ActivePlayer()

	that.view.DisplayGrid(that.board.Grid())
	that.view.DisplayMessage(active)

	rawRow, rawColumn, err := that.view.GetUserInput(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrMalformedInput) && ctx.Err() == nil {
			log.Warn("malformed input", "error", err)
			that.view.DisplayErrorMessage(err)
			return nil
		}

		return fmt.Errorf("failed to read move: %w", err)
	}

	row, column, err := parseMove(rawRow, rawColumn)
	if err != nil {
		log.Warn("malformed input", "row", rawRow, "column", rawColumn, "error", err)
		that.view.DisplayErrorMessage(err)
		return nil
	}

	if !that.board.PlaceMark(row, column, active.Mark()) {
		log.Warn("cell unavailable", "row", row, "column", column)
		that.view.DisplayErrorMessage(fmt.Errorf("%w: row %d, column %d", apperror.ErrCellUnavailable, row, column))
		return nil
	}

	that.moves++
	log.Debug("mark placed", "player", active.Name(), "mark", active.Mark(), "row", row, "column", column,
		"free", len(that.board.AvailableCells()))

	that.updateGameStatus(active)

	return nil
}

// updateGameStatus - win is checked before draw, so a last move that completes a line is a win.
func (that *GameController) updateGameStatus(active *entity.Player) {
	switch {
	case that.board.CheckWin(active.Mark()):
		that.status = StatusWon
		that.winner = active
	case that.board.CheckDraw():
		that.status = StatusDrawn
	default:
		that.active = 1 - that.active
	}
}

func (that *GameController) result() *Result {
	return &Result{
		GameID: that.id,
		Status: that.status,
		Winner: that.winner,
		Moves:  that.moves,
	}
}

func parseMove(rawRow, rawColumn string) (int, int, error) {
	row, err := strconv.Atoi(strings.TrimSpace(rawRow))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: row %q is not a number", apperror.ErrMalformedInput, rawRow)
	}

	column, err := strconv.Atoi(strings.TrimSpace(rawColumn))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: column %q is not a number", apperror.ErrMalformedInput, rawColumn)
	}

	return row, column, nil
}
