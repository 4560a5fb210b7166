package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayer_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
	assert.Equal(t, NoPlayer, NoPlayer.Opponent())

	assert.True(t, PlayerX.IsValid())
	assert.False(t, Player("Z").IsValid())
}

func TestCell_State(t *testing.T) {
	t.Run("Empty cell", func(t *testing.T) {
		cell := Cell{}

		assert.True(t, cell.IsEmpty())
		assert.Equal(t, CellEmpty, cell.State())
		assert.False(t, cell.IsActiveFor(PlayerX))
	})

	t.Run("Active cell", func(t *testing.T) {
		cell := Cell{Owner: PlayerX}

		assert.Equal(t, CellActive, cell.State())
		assert.True(t, cell.IsActiveFor(PlayerX))
		assert.False(t, cell.IsActiveFor(PlayerO))
	})

	t.Run("Faded cell keeps its owner but is not active", func(t *testing.T) {
		cell := Cell{Owner: PlayerO, Faded: true}

		assert.False(t, cell.IsEmpty())
		assert.Equal(t, CellFaded, cell.State())
		assert.False(t, cell.IsActiveFor(PlayerO))
	})
}

func TestMoveResult(t *testing.T) {
	assert.True(t, MoveResult{Outcome: OutcomePlaced}.Accepted())
	assert.True(t, MoveResult{Outcome: OutcomeWin}.Accepted())
	assert.True(t, MoveResult{Outcome: OutcomeWin}.IsWin())
	assert.False(t, MoveResult{Outcome: OutcomeRejected}.Accepted())
	assert.False(t, MoveResult{Outcome: OutcomeInvalidCoordinate}.Accepted())

	assert.Equal(t, "invalid_coordinate", OutcomeInvalidCoordinate.String())
	assert.Equal(t, "faded", CellFaded.String())
}

func TestNewStandings(t *testing.T) {
	standings := NewStandings()

	assert.Equal(t, map[Player]int{PlayerX: 0, PlayerO: 0}, standings.Wins)
	assert.Zero(t, standings.Games)
}
