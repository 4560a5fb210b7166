package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

// memoryResult keeps results for the lifetime of the process.
type memoryResult struct {
	mu      sync.RWMutex
	records map[string]entity.GameRecord
	order   []string
}

func NewMemoryResultRepository() ResultRepository {
	return &memoryResult{
		records: make(map[string]entity.GameRecord),
	}
}

func (that *memoryResult) Save(_ context.Context, record *entity.GameRecord) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.records[record.ID]; !ok {
		that.order = append(that.order, record.ID)
	}
	that.records[record.ID] = *record

	return nil
}

func (that *memoryResult) GetByID(_ context.Context, id string) (*entity.GameRecord, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	record, ok := that.records[id]
	if !ok {
		return nil, ErrResultNotFound
	}

	return &record, nil
}

func (that *memoryResult) List(_ context.Context, limit int) ([]*entity.GameRecord, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	records := make([]*entity.GameRecord, 0, min(max(limit, 0), len(that.order)))
	for i := len(that.order) - 1; i >= 0 && len(records) < limit; i-- {
		record := that.records[that.order[i]]
		records = append(records, &record)
	}

	return records, nil
}

func (that *memoryResult) Standings(_ context.Context) (*entity.Standings, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	standings := entity.NewStandings()
	for _, record := range that.records {
		standings.Wins[record.Winner]++
		standings.Games++
	}

	return standings, nil
}
