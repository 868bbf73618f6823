package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

// Settings - what every round of a session is played with.
type Settings struct {
	Rows         int
	Columns      int
	FirstPlayer  string
	SecondPlayer string
}

// Scoreboard - tally of the rounds played so far. Lives only as long as the session.
type Scoreboard struct {
	Wins   map[string]int
	Draws  int
	Played int
}

type GameManager struct {
	logger   *slog.Logger
	view     tictactoe.View
	settings Settings

	newGameID func() string
}

func NewGameManager(logger *slog.Logger, view tictactoe.View, settings Settings) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		view:      view,
		settings:  settings,
		newGameID: uuid.NewString,
	}
}

// Play - plays rounds one after another on the same view. The first player is X in every round,
// but who moves first alternates. Stops at the first round that does not finish.
func (that *GameManager) Play(ctx context.Context, rounds int) (*Scoreboard, error) {
	log := that.logger.With("method", "Play")

	score := &Scoreboard{Wins: map[string]int{}}
	if rounds < 1 {
		return score, fmt.Errorf("%w: got %d", config.ErrInvalidRounds, rounds)
	}

	first := entity.NewPlayer(that.settings.FirstPlayer, entity.MarkX)
	second := entity.NewPlayer(that.settings.SecondPlayer, entity.MarkO)

	for round := 1; round <= rounds; round++ {
		players := [2]*entity.Player{first, second}
		if round%2 == 0 {
			players = [2]*entity.Player{second, first}
		}

		result, err := that.playRound(ctx, players)
		if err != nil {
			return score, fmt.Errorf("round %d: %w", round, err)
		}

		score.Played++
		switch result.Status {
		case tictactoe.StatusWon:
			score.Wins[result.Winner.Name()]++
		case tictactoe.StatusDrawn:
			score.Draws++
		}

		log.Info("round finished",
			"round", round,
			"game_id", result.GameID,
			"status", result.Status,
			"moves", result.Moves,
			"draws", score.Draws,
			"wins", score.Wins,
		)
	}

	return score, nil
}

func (that *GameManager) playRound(ctx context.Context, players [2]*entity.Player) (*tictactoe.Result, error) {
	game, err := tictactoe.NewGameController(that.logger, tictactoe.GameConfig{
		ID:      that.newGameID(),
		Rows:    that.settings.Rows,
		Columns: that.settings.Columns,
		Players: players,
	}, that.view)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game.Run(ctx)
}
