package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
	"github.com/rocketscienceinc/fading-tictactoe/internal/tictactoe"
)

// GameManager owns the engine of the current local session and records finished games.
type GameManager struct {
	logger  *slog.Logger
	results resultRepo

	mu       sync.Mutex
	settings entity.Settings
	engine   *tictactoe.Engine
	session  entity.Session
}

func NewGameManager(logger *slog.Logger, results resultRepo, settings entity.Settings, opts ...tictactoe.Option) (*GameManager, error) {
	engine, err := tictactoe.New(settings.BoardSize, settings.ActiveMarkLimit, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	manager := &GameManager{
		logger:  logger,
		results: results,

		settings: settings,
		engine:   engine,
		session:  newSession(settings),
	}

	logger.Info("game started",
		"session_id", manager.session.ID,
		"starting_player", engine.CurrentPlayer(),
		"board_size", settings.BoardSize,
		"active_mark_limit", settings.ActiveMarkLimit,
	)

	return manager, nil
}

// NewGame abandons the current game and starts a fresh one with the same settings.
func (that *GameManager) NewGame(_ context.Context) (*entity.Session, error) {
	log := that.logger.With("method", "NewGame")

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.engine.Reset(that.settings.BoardSize, that.settings.ActiveMarkLimit); err != nil {
		return nil, fmt.Errorf("failed to reset engine: %w", err)
	}

	that.session = newSession(that.settings)
	log.Info("game started", "session_id", that.session.ID, "starting_player", that.engine.CurrentPlayer())

	session := that.session
	return &session, nil
}

// MakeTurn places the current player's mark. A rejected move returns the result
// together with an error wrapping the rejection reason.
func (that *GameManager) MakeTurn(ctx context.Context, row, col int) (entity.MoveResult, error) {
	log := that.logger.With("method", "MakeTurn", "session_id", that.sessionID())

	that.mu.Lock()
	defer that.mu.Unlock()

	result := that.engine.PlaceMark(row, col)

	switch result.Outcome {
	case entity.OutcomeRejected, entity.OutcomeInvalidCoordinate:
		log.Info("move rejected", "player", result.Player, "coord", result.Coord.String(), "reason", result.Reason)

		return result, fmt.Errorf("can't place mark at %s: %w", result.Coord, result.Reason)
	case entity.OutcomeWin:
		log.Info("game won", "winner", result.Player, "moves_taken", result.MovesTaken)

		that.saveResult(ctx, log, result)
	case entity.OutcomePlaced:
		log.Debug("mark placed",
			"player", result.Player,
			"coord", result.Coord.String(),
			"evicted", result.Evicted,
			"faded", result.Faded,
		)
	}

	return result, nil
}

func (that *GameManager) Board(_ context.Context) entity.BoardView {
	that.mu.Lock()
	defer that.mu.Unlock()

	return entity.BoardView{
		SessionID:     that.session.ID,
		Cells:         that.engine.Board(),
		CurrentPlayer: that.engine.CurrentPlayer(),
		Terminal:      that.engine.IsTerminal(),
		Winner:        that.engine.Winner(),
		MoveCounts: map[entity.Player]int{
			entity.PlayerX: that.engine.MoveCount(entity.PlayerX),
			entity.PlayerO: that.engine.MoveCount(entity.PlayerO),
		},
	}
}

func (that *GameManager) Session(_ context.Context) entity.Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session
}

func (that *GameManager) Standings(ctx context.Context) (*entity.Standings, error) {
	standings, err := that.results.Standings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}

	return standings, nil
}

func (that *GameManager) RecentResults(ctx context.Context, limit int) ([]*entity.GameRecord, error) {
	records, err := that.results.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return records, nil
}

// saveResult - a failing save is logged only, the win already happened.
func (that *GameManager) saveResult(ctx context.Context, log *slog.Logger, result entity.MoveResult) {
	record := &entity.GameRecord{
		ID:              that.session.ID,
		Winner:          result.Player,
		MovesTaken:      result.MovesTaken,
		BoardSize:       that.settings.BoardSize,
		ActiveMarkLimit: that.settings.ActiveMarkLimit,
		FinishedAt:      time.Now().UTC(),
	}

	if err := that.results.Save(ctx, record); err != nil {
		log.Error("failed to save result", "error", err)
	}
}

func (that *GameManager) sessionID() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session.ID
}

func newSession(settings entity.Settings) entity.Session {
	return entity.Session{
		ID:        uuid.NewString(),
		Settings:  settings,
		StartedAt: time.Now().UTC(),
	}
}
