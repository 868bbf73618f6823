package tui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type input struct {
	row, column string
	err         error
}

func newHeadlessView(t *testing.T) *View {
	t.Helper()

	view := New(tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutRenderer(), tea.WithoutSignalHandler())
	view.Start()

	return view
}

func TestView_GetUserInput(t *testing.T) {
	t.Run("Returns the picked cell as text", func(t *testing.T) {
		// Given: a running program showing an empty grid
		view := newHeadlessView(t)
		t.Cleanup(func() { _ = view.Close() })
		view.DisplayGrid(emptyGrid())

		results := make(chan input, 1)
		go func() {
			row, column, err := view.GetUserInput(context.Background())
			results <- input{row: row, column: column, err: err}
		}()

		// When: the user moves down and presses enter
		view.program.Send(tea.KeyMsg{Type: tea.KeyDown})

		var got input
		require.Eventually(t, func() bool {
			view.program.Send(tea.KeyMsg{Type: tea.KeyEnter})
			select {
			case got = <-results:
				return true
			default:
				return false
			}
		}, 5*time.Second, 20*time.Millisecond)

		// Then: the cell comes back as row and column strings
		require.NoError(t, got.err)
		assert.Equal(t, "1", got.row)
		assert.Equal(t, "0", got.column)
	})

	t.Run("Quitting closes the input", func(t *testing.T) {
		// Given: a running program
		view := newHeadlessView(t)

		// When: the program is closed
		require.NoError(t, view.Close())

		// Then: no more moves can be read
		_, _, err := view.GetUserInput(context.Background())
		assert.ErrorIs(t, err, apperror.ErrInputClosed)
		assert.NoError(t, view.Wait(context.Background()))
	})

	t.Run("Canceled context", func(t *testing.T) {
		view := newHeadlessView(t)
		t.Cleanup(func() { _ = view.Close() })

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := view.GetUserInput(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Display calls reach the model", func(t *testing.T) {
		view := newHeadlessView(t)
		t.Cleanup(func() { _ = view.Close() })

		assert.NotPanics(t, func() {
			view.DisplayGrid(emptyGrid())
			view.DisplayMessage(entity.NewPlayer("Alice", entity.MarkX))
			view.DisplayErrorMessage(apperror.ErrCellUnavailable)
			view.DisplayWinner(entity.NewPlayer("Alice", entity.MarkX))
			view.DisplayDraw()
		})
	})
}
