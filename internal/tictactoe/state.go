package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

// CellState returns the cell at (row, col) for rendering.
func (that *Engine) CellState(row, col int) (entity.Cell, error) {
	if !that.board.inBounds(row, col) {
		return entity.Cell{}, fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCoordinate, row, col)
	}

	return that.board[row][col], nil
}

func (that *Engine) CurrentPlayer() entity.Player {
	return that.current
}

func (that *Engine) IsTerminal() bool {
	return that.terminal
}

// Winner is NoPlayer until the game is terminal.
func (that *Engine) Winner() entity.Player {
	return that.winner
}

func (that *Engine) BoardSize() int {
	return that.board.size()
}

func (that *Engine) ActiveMarkLimit() int {
	return that.limit
}

func (that *Engine) MoveCount(player entity.Player) int {
	state, ok := that.players[player]
	if !ok {
		return 0
	}

	return state.moves
}

// ActiveMarks returns a copy of player's active marks, oldest first.
func (that *Engine) ActiveMarks(player entity.Player) []entity.Coord {
	state, ok := that.players[player]
	if !ok {
		return nil
	}

	return append([]entity.Coord(nil), state.queue...)
}

func (that *Engine) FadeSlot(player entity.Player) (entity.Coord, bool) {
	state, ok := that.players[player]
	if !ok || state.fadeSlot == nil {
		return entity.Coord{}, false
	}

	return *state.fadeSlot, true
}

// Board returns a deep copy of the cells.
func (that *Engine) Board() [][]entity.Cell {
	return that.board.clone()
}

func (that *Engine) Settings() entity.Settings {
	return entity.Settings{
		BoardSize:       that.board.size(),
		ActiveMarkLimit: that.limit,
	}
}
