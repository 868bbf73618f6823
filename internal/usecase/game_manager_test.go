package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/testing/suite"
)

var settings = Settings{
	Rows:         3,
	Columns:      3,
	FirstPlayer:  "Alice",
	SecondPlayer: "Bob",
}

// topRow - moves that let whoever starts complete the top row.
var topRow = []suite.Input{
	suite.Move("0", "0"), suite.Move("1", "0"),
	suite.Move("0", "1"), suite.Move("1", "1"),
	suite.Move("0", "2"),
}

var drawn = []suite.Input{
	suite.Move("0", "0"), suite.Move("0", "1"), suite.Move("0", "2"),
	suite.Move("1", "1"), suite.Move("1", "0"), suite.Move("1", "2"),
	suite.Move("2", "1"), suite.Move("2", "0"), suite.Move("2", "2"),
}

func script(rounds ...[]suite.Input) []suite.Input {
	var inputs []suite.Input
	for _, round := range rounds {
		inputs = append(inputs, round...)
	}

	return inputs
}

func TestGameManager_Play(t *testing.T) {
	t.Run("Starting player alternates", func(t *testing.T) {
		// Given: two rounds where the starting player takes the top row
		ctx, st := suite.New(t)
		view := suite.NewScriptedView(script(topRow, topRow)...)
		manager := NewGameManager(st.Logger, view, settings)

		// When: the session is played
		score, err := manager.Play(ctx, 2)

		// Then: each player won the round they started, keeping their mark
		require.NoError(t, err)
		assert.Equal(t, 2, score.Played)
		assert.Equal(t, map[string]int{"Alice": 1, "Bob": 1}, score.Wins)
		assert.Zero(t, score.Draws)

		require.NotEmpty(t, view.Messages)
		assert.Equal(t, "Alice", view.Messages[0].Name())
		assert.Equal(t, entity.MarkX, view.Messages[0].Mark())
		assert.Equal(t, "Bob", view.Messages[5].Name())
		assert.Equal(t, entity.MarkO, view.Messages[5].Mark())
		assert.Equal(t, "Bob", view.Winner.Name())
	})

	t.Run("Draws are counted", func(t *testing.T) {
		ctx, st := suite.New(t)
		view := suite.NewScriptedView(script(drawn, topRow)...)
		manager := NewGameManager(st.Logger, view, settings)

		score, err := manager.Play(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, 2, score.Played)
		assert.Equal(t, 1, score.Draws)
		assert.Equal(t, map[string]int{"Bob": 1}, score.Wins)
	})

	t.Run("Every round gets its own game ID", func(t *testing.T) {
		ctx, st := suite.New(t)
		manager := NewGameManager(st.Logger, suite.NewScriptedView(script(topRow, topRow, topRow)...), settings)

		var ids []string
		newGameID := manager.newGameID
		manager.newGameID = func() string {
			id := newGameID()
			ids = append(ids, id)
			return id
		}

		_, err := manager.Play(ctx, 3)

		require.NoError(t, err)
		require.Len(t, ids, 3)
		assert.NotEqual(t, ids[0], ids[1])
		assert.NotEqual(t, ids[1], ids[2])
	})

	t.Run("Stops when a round is aborted", func(t *testing.T) {
		// Given: input that closes in the middle of the second round
		ctx, st := suite.New(t)
		view := suite.NewScriptedView(script(topRow, topRow[:2])...)
		manager := NewGameManager(st.Logger, view, settings)

		// When: three rounds are requested
		score, err := manager.Play(ctx, 3)

		// Then: the first round is on the scoreboard and the error names the second
		require.ErrorIs(t, err, apperror.ErrInputClosed)
		assert.Contains(t, err.Error(), "round 2")
		assert.Equal(t, 1, score.Played)
		assert.Equal(t, map[string]int{"Alice": 1}, score.Wins)
	})

	t.Run("Stops on cancel", func(t *testing.T) {
		ctx, st := suite.New(t)
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		score, err := NewGameManager(st.Logger, suite.NewScriptedView(topRow...), settings).Play(ctx, 1)

		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, score.Played)
	})

	t.Run("Error on zero rounds", func(t *testing.T) {
		ctx, st := suite.New(t)

		_, err := NewGameManager(st.Logger, suite.NewScriptedView(), settings).Play(ctx, 0)

		require.ErrorIs(t, err, config.ErrInvalidRounds)
	})

	t.Run("Error on invalid board", func(t *testing.T) {
		ctx, st := suite.New(t)
		broken := settings
		broken.Rows = 0

		_, err := NewGameManager(st.Logger, suite.NewScriptedView(), broken).Play(ctx, 1)

		require.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
	})
}
