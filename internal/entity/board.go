package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
)

const MaxBoardSide = 9

// Cell - zero-based coordinates of one board position.
type Cell struct {
	Row    int
	Column int
}

type Board struct {
	cells   [][]Mark
	rows    int
	columns int
}

// NewBoard - creates a board with every cell empty.
func NewBoard(rows, columns int) (*Board, error) {
	if rows < 1 || columns < 1 || rows > MaxBoardSide || columns > MaxBoardSide {
		return nil, fmt.Errorf("%w: %dx%d", apperror.ErrInvalidBoardSize, rows, columns)
	}

	cells := make([][]Mark, rows)
	for i := range cells {
		cells[i] = make([]Mark, columns)
	}

	return &Board{
		cells:   cells,
		rows:    rows,
		columns: columns,
	}, nil
}

func (that *Board) Rows() int {
	return that.rows
}

func (that *Board) Columns() int {
	return that.columns
}

// Grid - returns a copy of the cells, safe to hand out to views.
func (that *Board) Grid() [][]Mark {
	grid := make([][]Mark, that.rows)
	for i, row := range that.cells {
		grid[i] = append([]Mark(nil), row...)
	}

	return grid
}

// IsCellAvailable - reports whether (x, y) is on the board and empty.
func (that *Board) IsCellAvailable(x, y int) bool {
	if x < 0 || x >= that.rows || y < 0 || y >= that.columns {
		return false
	}

	return that.cells[x][y] == EmptyCell
}

// PlaceMark - writes mark into (x, y) if the cell is available. It is the only way the board changes.
func (that *Board) PlaceMark(x, y int, mark Mark) bool {
	if mark == EmptyCell || !that.IsCellAvailable(x, y) {
		return false
	}

	that.cells[x][y] = mark

	return true
}

// CheckWin - true if a full row, a full column or, on square boards, a full diagonal holds only mark.
func (that *Board) CheckWin(mark Mark) bool {
	if mark == EmptyCell {
		return false
	}

	return that.checkRows(mark) || that.checkColumns(mark) || that.checkDiagonals(mark)
}

// CheckDraw - true if no cell is empty. A winning line is not taken into account.
func (that *Board) CheckDraw() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// AvailableCells - empty cells in row-major order.
func (that *Board) AvailableCells() []Cell {
	cells := make([]Cell, 0, that.rows*that.columns)
	for x, row := range that.cells {
		for y, cell := range row {
			if cell == EmptyCell {
				cells = append(cells, Cell{Row: x, Column: y})
			}
		}
	}

	return cells
}

func (that *Board) checkRows(mark Mark) bool {
	for _, row := range that.cells {
		if lineOf(row, mark) {
			return true
		}
	}

	return false
}

func (that *Board) checkColumns(mark Mark) bool {
	for y := 0; y < that.columns; y++ {
		full := true
		for x := 0; x < that.rows; x++ {
			if that.cells[x][y] != mark {
				full = false
				break
			}
		}

		if full {
			return true
		}
	}

	return false
}

func (that *Board) checkDiagonals(mark Mark) bool {
	if that.rows != that.columns {
		return false
	}

	size := that.rows
	main, anti := true, true
	for i := 0; i < size; i++ {
		if that.cells[i][i] != mark {
			main = false
		}

		if that.cells[i][size-1-i] != mark {
			anti = false
		}
	}

	return main || anti
}

func lineOf(line []Mark, mark Mark) bool {
	for _, cell := range line {
		if cell != mark {
			return false
		}
	}

	return true
}
