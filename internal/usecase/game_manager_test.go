package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fading-tictactoe/internal/repository"
	"github.com/rocketscienceinc/fading-tictactoe/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

type mockResultRepo struct {
	mock.Mock
}

func (that *mockResultRepo) Save(ctx context.Context, record *entity.GameRecord) error {
	args := that.Called(ctx, record)
	return args.Error(0)
}

func (that *mockResultRepo) List(ctx context.Context, limit int) ([]*entity.GameRecord, error) {
	args := that.Called(ctx, limit)

	records, _ := args.Get(0).([]*entity.GameRecord)
	return records, args.Error(1)
}

func (that *mockResultRepo) Standings(ctx context.Context) (*entity.Standings, error) {
	args := that.Called(ctx)

	standings, _ := args.Get(0).(*entity.Standings)
	return standings, args.Error(1)
}

func newTestManager(t *testing.T, results resultRepo, size, limit int) *GameManager {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	starter := tictactoe.WithStarter(func() entity.Player { return entity.PlayerX })

	manager, err := NewGameManager(logger, results, entity.Settings{BoardSize: size, ActiveMarkLimit: limit}, starter)
	require.NoError(t, err)

	return manager
}

// playTopRowWin lets X take row 0 of a 3x3 board while O plays row 1.
func playTopRowWin(ctx context.Context, t *testing.T, manager *GameManager) entity.MoveResult {
	t.Helper()

	moves := []entity.Coord{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}}
	for _, move := range moves {
		_, err := manager.MakeTurn(ctx, move.Row, move.Col)
		require.NoError(t, err)
	}

	result, err := manager.MakeTurn(ctx, 0, 2)
	require.NoError(t, err)

	return result
}

func TestNewGameManager(t *testing.T) {
	t.Run("Rejects invalid settings", func(t *testing.T) {
		// Given: a board smaller than the minimum
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

		// When: the manager is created
		manager, err := NewGameManager(logger, new(mockResultRepo), entity.Settings{BoardSize: 2, ActiveMarkLimit: 3})

		// Then: the settings error comes back
		require.ErrorIs(t, err, apperror.ErrInvalidSettings)
		assert.Nil(t, manager)
	})

	t.Run("Starts with a session", func(t *testing.T) {
		// When: a manager is created
		manager := newTestManager(t, new(mockResultRepo), 7, 7)

		// Then: the session is issued and the board is empty
		session := manager.Session(context.Background())
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, entity.DefaultSettings(), session.Settings)

		view := manager.Board(context.Background())
		assert.Equal(t, session.ID, view.SessionID)
		assert.Equal(t, 7, view.Size())
		assert.Equal(t, entity.PlayerX, view.CurrentPlayer)
		assert.False(t, view.Terminal)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepted move switches the turn", func(t *testing.T) {
		// Given: a fresh game
		manager := newTestManager(t, new(mockResultRepo), 3, 3)

		// When: X plays the centre
		result, err := manager.MakeTurn(ctx, 1, 1)

		// Then: the mark is on the board and O is next
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomePlaced, result.Outcome)

		view := manager.Board(ctx)
		assert.Equal(t, entity.Cell{Owner: entity.PlayerX}, view.Cells[1][1])
		assert.Equal(t, entity.PlayerO, view.CurrentPlayer)
		assert.Equal(t, 1, view.MoveCounts[entity.PlayerX])
		assert.Equal(t, 0, view.MoveCounts[entity.PlayerO])
	})

	t.Run("Rejections wrap the reason", func(t *testing.T) {
		// Given: a game with one mark placed
		manager := newTestManager(t, new(mockResultRepo), 3, 3)
		_, err := manager.MakeTurn(ctx, 0, 0)
		require.NoError(t, err)

		// When: O plays the same cell and then off the board
		occupied, errOccupied := manager.MakeTurn(ctx, 0, 0)
		outside, errOutside := manager.MakeTurn(ctx, 3, 0)

		// Then: both are refused and O is still to move
		require.ErrorIs(t, errOccupied, apperror.ErrCellOccupied)
		assert.Equal(t, entity.OutcomeRejected, occupied.Outcome)

		require.ErrorIs(t, errOutside, apperror.ErrInvalidCoordinate)
		assert.Equal(t, entity.OutcomeInvalidCoordinate, outside.Outcome)

		assert.Equal(t, entity.PlayerO, manager.Board(ctx).CurrentPlayer)
	})

	t.Run("Win is recorded", func(t *testing.T) {
		// Given: a repository expecting one record
		results := new(mockResultRepo)
		manager := newTestManager(t, results, 3, 3)
		sessionID := manager.Session(ctx).ID

		results.On("Save", mock.Anything, mock.MatchedBy(func(record *entity.GameRecord) bool {
			return record.ID == sessionID &&
				record.Winner == entity.PlayerX &&
				record.MovesTaken == 3 &&
				record.BoardSize == 3 &&
				record.ActiveMarkLimit == 3 &&
				!record.FinishedAt.IsZero()
		})).Return(nil).Once()

		// When: X completes the top row
		result := playTopRowWin(ctx, t, manager)

		// Then: the win is reported and saved
		assert.Equal(t, entity.OutcomeWin, result.Outcome)
		assert.Equal(t, 3, result.MovesTaken)
		assert.Equal(t, []entity.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, result.Line)

		view := manager.Board(ctx)
		assert.True(t, view.Terminal)
		assert.Equal(t, entity.PlayerX, view.Winner)

		results.AssertExpectations(t)
	})

	t.Run("Failed save keeps the win", func(t *testing.T) {
		// Given: a repository that can't save
		results := new(mockResultRepo)
		manager := newTestManager(t, results, 3, 3)

		results.On("Save", mock.Anything, mock.Anything).Return(errRedisDown).Once()

		// When: X wins
		result := playTopRowWin(ctx, t, manager)

		// Then: the game is still over with X as the winner
		assert.True(t, result.IsWin())
		assert.Equal(t, entity.PlayerX, manager.Board(ctx).Winner)

		results.AssertExpectations(t)
	})

	t.Run("Moves after the win are refused", func(t *testing.T) {
		// Given: a finished game
		results := new(mockResultRepo)
		results.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
		manager := newTestManager(t, results, 3, 3)
		playTopRowWin(ctx, t, manager)

		// When: another move is attempted
		result, err := manager.MakeTurn(ctx, 2, 2)

		// Then: it is rejected as finished
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, entity.OutcomeRejected, result.Outcome)
	})
}

func TestGameManager_NewGame(t *testing.T) {
	ctx := context.Background()

	// Given: a finished game
	results := new(mockResultRepo)
	results.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	manager := newTestManager(t, results, 3, 3)
	first := manager.Session(ctx)
	playTopRowWin(ctx, t, manager)

	// When: a new game is started
	session, err := manager.NewGame(ctx)

	// Then: the board is cleared under a new session
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, session.ID)
	assert.Equal(t, *session, manager.Session(ctx))

	view := manager.Board(ctx)
	assert.False(t, view.Terminal)
	assert.Equal(t, entity.NoPlayer, view.Winner)
	for _, row := range view.Cells {
		for _, cell := range row {
			assert.True(t, cell.IsEmpty())
		}
	}

	_, err = manager.MakeTurn(ctx, 0, 0)
	require.NoError(t, err)
}

func TestGameManager_Results(t *testing.T) {
	ctx := context.Background()

	t.Run("Errors are wrapped", func(t *testing.T) {
		// Given: a repository that is down
		results := new(mockResultRepo)
		results.On("Standings", mock.Anything).Return(nil, errRedisDown).Once()
		results.On("List", mock.Anything, 5).Return(nil, errRedisDown).Once()
		manager := newTestManager(t, results, 3, 3)

		// When: results are read
		standings, errStandings := manager.Standings(ctx)
		records, errList := manager.RecentResults(ctx, 5)

		// Then: the repository error comes through
		require.ErrorIs(t, errStandings, errRedisDown)
		assert.Nil(t, standings)
		require.ErrorIs(t, errList, errRedisDown)
		assert.Nil(t, records)

		results.AssertExpectations(t)
	})

	t.Run("Redis backed scoreboard", func(t *testing.T) {
		// Given: a manager writing to redis
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })

		manager := newTestManager(t, repository.NewResultRepository(client), 3, 3)

		// When: X wins twice
		playTopRowWin(ctx, t, manager)
		_, err := manager.NewGame(ctx)
		require.NoError(t, err)
		playTopRowWin(ctx, t, manager)

		// Then: the standings and history reflect both games
		standings, err := manager.Standings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, standings.Wins[entity.PlayerX])
		assert.Equal(t, 0, standings.Wins[entity.PlayerO])
		assert.Equal(t, 2, standings.Games)

		records, err := manager.RecentResults(ctx, 10)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, manager.Session(ctx).ID, records[0].ID)
		assert.Equal(t, 3, records[0].MovesTaken)
	})
}
