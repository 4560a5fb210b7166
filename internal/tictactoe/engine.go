// Package tictactoe implements the fading tic-tac-toe rules: placement, aging, fading,
// eviction and win detection on an N×N board.
//
// An Engine is not safe for concurrent use; callers serialize access.
package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

type playerState struct {
	// queue holds active marks, oldest first.
	queue []entity.Coord
	// fadeSlot is the faded mark waiting to be evicted on the player's next placement.
	fadeSlot *entity.Coord
	moves    int
}

type Option func(*Engine)

// WithStarter replaces the random choice of the starting player.
func WithStarter(starter func() entity.Player) Option {
	return func(that *Engine) {
		that.starter = starter
	}
}

type Engine struct {
	starter func() entity.Player

	board    board
	combos   [][]entity.Coord
	limit    int
	current  entity.Player
	players  map[entity.Player]*playerState
	terminal bool
	winner   entity.Player
}

func New(boardSize, activeMarkLimit int, opts ...Option) (*Engine, error) {
	engine := &Engine{
		starter: entity.RandomPlayer,
	}

	for _, opt := range opts {
		opt(engine)
	}

	if err := engine.Reset(boardSize, activeMarkLimit); err != nil {
		return nil, err
	}

	return engine, nil
}

// Reset starts a fresh game. Invalid sizes leave the current game untouched.
func (that *Engine) Reset(boardSize, activeMarkLimit int) error {
	if boardSize < entity.MinBoardSize {
		return fmt.Errorf("%w: board size %d is below %d", apperror.ErrInvalidSettings, boardSize, entity.MinBoardSize)
	}

	if activeMarkLimit < entity.MinActiveMarkLimit {
		return fmt.Errorf("%w: active mark limit %d is below %d", apperror.ErrInvalidSettings, activeMarkLimit, entity.MinActiveMarkLimit)
	}

	that.board = newBoard(boardSize)
	that.combos = lines(boardSize)
	that.limit = activeMarkLimit
	that.players = map[entity.Player]*playerState{
		entity.PlayerX: {},
		entity.PlayerO: {},
	}
	that.terminal = false
	that.winner = entity.NoPlayer

	that.current = that.starter()
	if !that.current.IsValid() {
		that.current = entity.PlayerX
	}

	return nil
}

// PlaceMark places the current player's mark at (row, col) and reports what happened.
func (that *Engine) PlaceMark(row, col int) entity.MoveResult {
	target := entity.Coord{Row: row, Col: col}
	player := that.current

	if that.terminal {
		return rejected(player, target, apperror.ErrGameFinished)
	}

	if !that.board.inBounds(row, col) {
		return entity.MoveResult{
			Outcome: entity.OutcomeInvalidCoordinate,
			Player:  player,
			Coord:   target,
			Reason:  fmt.Errorf("%w: %s on a %dx%d board", apperror.ErrInvalidCoordinate, target, that.board.size(), that.board.size()),
		}
	}

	if err := that.validatePlacement(player, target); err != nil {
		return rejected(player, target, err)
	}

	state := that.players[player]

	evicted := that.evict(state)

	that.board.set(target, entity.Cell{Owner: player})
	state.queue = append(state.queue, target)
	state.moves++

	if len(state.queue) == that.limit {
		if line, ok := that.board.winningLine(that.combos, player); ok {
			that.terminal = true
			that.winner = player

			return entity.MoveResult{
				Outcome:    entity.OutcomeWin,
				Player:     player,
				Coord:      target,
				Evicted:    evicted,
				MovesTaken: that.movesTaken(),
				Line:       append([]entity.Coord(nil), line...),
			}
		}
	}

	that.current = player.Opponent()

	var faded *entity.Coord
	if len(state.queue) == that.limit {
		faded = that.fadeOldest(player, state)
	}

	return entity.MoveResult{
		Outcome: entity.OutcomePlaced,
		Player:  player,
		Coord:   target,
		Evicted: evicted,
		Faded:   faded,
	}
}

// CheckWin reports whether player holds a full row, column or diagonal of active marks.
func (that *Engine) CheckWin(player entity.Player) bool {
	_, ok := that.board.winningLine(that.combos, player)
	return ok
}

// validatePlacement - checks the cell against the fade lock and occupancy.
func (that *Engine) validatePlacement(player entity.Player, target entity.Coord) error {
	if slot := that.players[player].fadeSlot; slot != nil && *slot == target {
		return fmt.Errorf("%w: %s", apperror.ErrCellLocked, target)
	}

	if !that.board.at(target).IsEmpty() {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, target)
	}

	return nil
}

func (that *Engine) evict(state *playerState) *entity.Coord {
	if state.fadeSlot == nil {
		return nil
	}

	evicted := *state.fadeSlot
	that.board.set(evicted, entity.Cell{})
	state.fadeSlot = nil

	return &evicted
}

func (that *Engine) fadeOldest(player entity.Player, state *playerState) *entity.Coord {
	oldest := state.queue[0]
	state.queue = state.queue[1:]

	that.board.set(oldest, entity.Cell{Owner: player, Faded: true})
	state.fadeSlot = &oldest

	faded := oldest
	return &faded
}

func (that *Engine) movesTaken() int {
	return max(that.players[entity.PlayerX].moves, that.players[entity.PlayerO].moves)
}

func rejected(player entity.Player, target entity.Coord, reason error) entity.MoveResult {
	return entity.MoveResult{
		Outcome: entity.OutcomeRejected,
		Player:  player,
		Coord:   target,
		Reason:  reason,
	}
}
