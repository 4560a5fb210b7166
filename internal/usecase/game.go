package usecase

import (
	"context"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

// GameUseCase is what a presentation layer needs to drive one local game.
type GameUseCase interface {
	NewGame(ctx context.Context) (*entity.Session, error)
	MakeTurn(ctx context.Context, row, col int) (entity.MoveResult, error)

	Board(ctx context.Context) entity.BoardView
	Session(ctx context.Context) entity.Session

	Standings(ctx context.Context) (*entity.Standings, error)
	RecentResults(ctx context.Context, limit int) ([]*entity.GameRecord, error)
}

type resultRepo interface {
	Save(ctx context.Context, record *entity.GameRecord) error
	List(ctx context.Context, limit int) ([]*entity.GameRecord, error)
	Standings(ctx context.Context) (*entity.Standings, error)
}

var _ GameUseCase = (*GameManager)(nil)
