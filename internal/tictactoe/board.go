package tictactoe

import "github.com/rocketscienceinc/fading-tictactoe/internal/entity"

type board [][]entity.Cell

func newBoard(size int) board {
	cells := make(board, size)
	for row := range cells {
		cells[row] = make([]entity.Cell, size)
	}

	return cells
}

func (that board) size() int {
	return len(that)
}

func (that board) inBounds(row, col int) bool {
	return row >= 0 && row < len(that) && col >= 0 && col < len(that)
}

func (that board) at(c entity.Coord) entity.Cell {
	return that[c.Row][c.Col]
}

func (that board) set(c entity.Coord, cell entity.Cell) {
	that[c.Row][c.Col] = cell
}

func (that board) clone() [][]entity.Cell {
	out := make([][]entity.Cell, len(that))
	for row := range that {
		out[row] = make([]entity.Cell, len(that[row]))
		copy(out[row], that[row])
	}

	return out
}

// lines returns every row, every column and the two full-length diagonals.
func lines(size int) [][]entity.Coord {
	all := make([][]entity.Coord, 0, 2*size+2)

	for row := 0; row < size; row++ {
		line := make([]entity.Coord, size)
		for col := 0; col < size; col++ {
			line[col] = entity.Coord{Row: row, Col: col}
		}
		all = append(all, line)
	}

	for col := 0; col < size; col++ {
		line := make([]entity.Coord, size)
		for row := 0; row < size; row++ {
			line[row] = entity.Coord{Row: row, Col: col}
		}
		all = append(all, line)
	}

	diagonal := make([]entity.Coord, size)
	antiDiagonal := make([]entity.Coord, size)
	for i := 0; i < size; i++ {
		diagonal[i] = entity.Coord{Row: i, Col: i}
		antiDiagonal[i] = entity.Coord{Row: i, Col: size - i - 1}
	}

	return append(all, diagonal, antiDiagonal)
}

// winningLine returns the first line made only of player's active marks.
// Faded marks are still owned by the player but never complete a line.
func (that board) winningLine(combos [][]entity.Coord, player entity.Player) ([]entity.Coord, bool) {
	for _, line := range combos {
		complete := true
		for _, c := range line {
			if !that.at(c).IsActiveFor(player) {
				complete = false
				break
			}
		}

		if complete {
			return line, true
		}
	}

	return nil, false
}
