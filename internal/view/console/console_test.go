package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(input string) (*View, *bytes.Buffer) {
	out := &bytes.Buffer{}

	return New(strings.NewReader(input), out, Options{NoColor: true}), out
}

func TestView_GetUserInput(t *testing.T) {
	ctx := context.Background()

	t.Run("Reads space and comma separated moves", func(t *testing.T) {
		// Given: two lines of input
		view, _ := newTestView("1 2\n0,1\n")

		// When: two moves are read
		row, column, err := view.GetUserInput(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1", row)
		assert.Equal(t, "2", column)

		row, column, err = view.GetUserInput(ctx)
		require.NoError(t, err)

		// Then: both formats are split into row and column
		assert.Equal(t, "0", row)
		assert.Equal(t, "1", column)
	})

	t.Run("Wrong number of fields is malformed", func(t *testing.T) {
		view, _ := newTestView("1\n1 2 3\n\n")

		for range 3 {
			_, _, err := view.GetUserInput(ctx)
			assert.ErrorIs(t, err, apperror.ErrMalformedInput)
		}
	})

	t.Run("Values are not parsed here", func(t *testing.T) {
		view, _ := newTestView("a b\n")

		row, column, err := view.GetUserInput(ctx)

		require.NoError(t, err)
		assert.Equal(t, "a", row)
		assert.Equal(t, "b", column)
	})

	t.Run("End of input closes the game", func(t *testing.T) {
		view, _ := newTestView("")

		_, _, err := view.GetUserInput(ctx)

		assert.ErrorIs(t, err, apperror.ErrInputClosed)
	})

	t.Run("Quit closes the game", func(t *testing.T) {
		view, _ := newTestView("quit\n")

		_, _, err := view.GetUserInput(ctx)

		assert.ErrorIs(t, err, apperror.ErrInputClosed)
	})

	t.Run("Overlong line is malformed and reading goes on", func(t *testing.T) {
		// Given: a line far longer than a bufio.Scanner token, then a real move
		view, _ := newTestView(strings.Repeat("9", 70*1024) + "\n1 1\n")

		// When: two moves are read
		_, _, err := view.GetUserInput(ctx)

		// Then: the long line is reported as malformed with a short echo
		require.ErrorIs(t, err, apperror.ErrMalformedInput)
		assert.Less(t, len(err.Error()), 200)

		// And: the next line still comes through
		row, column, err := view.GetUserInput(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1", row)
		assert.Equal(t, "1", column)
	})

	t.Run("Last line without newline is read", func(t *testing.T) {
		view, _ := newTestView("2 0")

		row, column, err := view.GetUserInput(ctx)

		require.NoError(t, err)
		assert.Equal(t, "2", row)
		assert.Equal(t, "0", column)
	})

	t.Run("Read error is returned as it is", func(t *testing.T) {
		// Given: input that breaks after one move
		errBroken := errors.New("broken pipe")
		in := io.MultiReader(strings.NewReader("0 0\n"), iotest.ErrReader(errBroken))
		view := New(in, &bytes.Buffer{}, Options{NoColor: true})

		_, _, err := view.GetUserInput(ctx)
		require.NoError(t, err)

		// When: the next move is requested
		_, _, err = view.GetUserInput(ctx)

		// Then: the read error comes back, not a quit
		require.ErrorIs(t, err, errBroken)
		assert.NotErrorIs(t, err, apperror.ErrInputClosed)
	})

	t.Run("Close releases the reader", func(t *testing.T) {
		// Given: a reader goroutine holding a line nobody asked for
		view, _ := newTestView("0 0\n1 1\n")
		_, _, err := view.GetUserInput(ctx)
		require.NoError(t, err)

		// When: the view is closed
		view.Close()

		// Then: the goroutine gives up the pending line and exits
		require.Eventually(t, func() bool {
			select {
			case _, ok := <-view.lines:
				return !ok
			default:
				return false
			}
		}, time.Second, 10*time.Millisecond)

		_, _, err = view.GetUserInput(ctx)
		assert.ErrorIs(t, err, apperror.ErrInputClosed)
	})

	t.Run("Canceled context stops waiting", func(t *testing.T) {
		// Given: an input that never produces a line
		reader, _ := newBlockingReader()
		view := New(reader, &bytes.Buffer{}, Options{NoColor: true})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// When: a move is requested
		_, _, err := view.GetUserInput(ctx)

		// Then: the context error is returned
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestView_Display(t *testing.T) {
	alice := entity.NewPlayer("Alice", entity.MarkX)

	t.Run("Grid", func(t *testing.T) {
		view, out := newTestView("")

		view.DisplayGrid([][]entity.Mark{
			{entity.MarkX, entity.EmptyCell, entity.MarkO},
			{entity.EmptyCell, entity.MarkX, entity.EmptyCell},
			{entity.MarkO, entity.EmptyCell, entity.EmptyCell},
		})

		text := out.String()
		assert.Contains(t, text, "0   X |   | O ")
		assert.Contains(t, text, "1     | X |   ")
		assert.Contains(t, text, "---+---+---")
		assert.Equal(t, 2, strings.Count(text, "---+---+---"))
	})

	t.Run("Empty grid prints nothing", func(t *testing.T) {
		view, out := newTestView("")

		view.DisplayGrid(nil)

		assert.Empty(t, out.String())
	})

	t.Run("Turn message", func(t *testing.T) {
		view, out := newTestView("")

		view.DisplayMessage(alice)

		assert.Contains(t, out.String(), "Alice's turn (X)")
	})

	t.Run("Errors", func(t *testing.T) {
		view, out := newTestView("")

		view.DisplayErrorMessage(fmt.Errorf("%w: row 0, column 0", apperror.ErrCellUnavailable))
		view.DisplayErrorMessage(fmt.Errorf("%w: row %q is not a number", apperror.ErrMalformedInput, "a"))

		text := out.String()
		assert.Contains(t, text, "That cell is not available")
		assert.Contains(t, text, "Could not read that move")
	})

	t.Run("Winner and draw", func(t *testing.T) {
		view, out := newTestView("")

		view.DisplayWinner(alice)
		view.DisplayDraw()

		text := out.String()
		assert.Contains(t, text, "Alice (X) wins!")
		assert.Contains(t, text, "It's a draw.")
	})
}
