package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

const (
	resultKeyPrefix = "result:"
	resultsListKey  = "results"
	standingsKey    = "standings"
)

var ErrResultNotFound = fmt.Errorf("result %w", apperror.ErrNotFound)

type ResultRepository interface {
	Save(ctx context.Context, record *entity.GameRecord) error
	GetByID(ctx context.Context, id string) (*entity.GameRecord, error)
	List(ctx context.Context, limit int) ([]*entity.GameRecord, error)
	Standings(ctx context.Context) (*entity.Standings, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

func (that *dbResult) Save(ctx context.Context, record *entity.GameRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, resultKeyPrefix+record.ID, recordJSON, 0)
		pipe.LPush(ctx, resultsListKey, record.ID)
		pipe.HIncrBy(ctx, standingsKey, record.Winner.String(), 1)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, id string) (*entity.GameRecord, error) {
	response, err := that.client.Get(ctx, resultKeyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}

	var record entity.GameRecord
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &record, nil
}

// List returns up to limit records, newest first.
func (that *dbResult) List(ctx context.Context, limit int) ([]*entity.GameRecord, error) {
	if limit <= 0 {
		return []*entity.GameRecord{}, nil
	}

	ids, err := that.client.LRange(ctx, resultsListKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	records := make([]*entity.GameRecord, 0, len(ids))
	for _, id := range ids {
		record, err := that.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load result %s: %w", id, err)
		}

		records = append(records, record)
	}

	return records, nil
}

func (that *dbResult) Standings(ctx context.Context) (*entity.Standings, error) {
	wins, err := that.client.HGetAll(ctx, standingsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get standings: %w", err)
	}

	games, err := that.client.LLen(ctx, resultsListKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}

	standings := entity.NewStandings()
	standings.Games = int(games)

	for player, count := range wins {
		n, err := strconv.Atoi(count)
		if err != nil {
			return nil, fmt.Errorf("malformed win count for %s: %w", player, err)
		}

		standings.Wins[entity.Player(player)] = n
	}

	return standings, nil
}
