package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

type sqliteResult struct {
	conn *sql.DB
}

func NewSQLiteResultRepository(conn *sql.DB) ResultRepository {
	return &sqliteResult{
		conn: conn,
	}
}

func (that *sqliteResult) Save(ctx context.Context, record *entity.GameRecord) error {
	query := `INSERT INTO results (id, winner, moves_taken, board_size, active_mark_limit, finished_at) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		record.ID,
		record.Winner.String(),
		record.MovesTaken,
		record.BoardSize,
		record.ActiveMarkLimit,
		record.FinishedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *sqliteResult) GetByID(ctx context.Context, id string) (*entity.GameRecord, error) {
	query := `SELECT id, winner, moves_taken, board_size, active_mark_limit, finished_at FROM results WHERE id = ?`

	record, err := scanRecord(that.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find result: %w", err)
	}

	return record, nil
}

func (that *sqliteResult) List(ctx context.Context, limit int) ([]*entity.GameRecord, error) {
	if limit <= 0 {
		return []*entity.GameRecord{}, nil
	}

	query := `SELECT id, winner, moves_taken, board_size, active_mark_limit, finished_at FROM results ORDER BY finished_at DESC, rowid DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list results: %w", err)
	}
	defer rows.Close()

	records := make([]*entity.GameRecord, 0, limit)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("can't read result: %w", err)
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate results: %w", err)
	}

	return records, nil
}

func (that *sqliteResult) Standings(ctx context.Context) (*entity.Standings, error) {
	query := `SELECT winner, COUNT(*) FROM results GROUP BY winner`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't get standings: %w", err)
	}
	defer rows.Close()

	standings := entity.NewStandings()
	for rows.Next() {
		var (
			winner string
			wins   int
		)

		if err = rows.Scan(&winner, &wins); err != nil {
			return nil, fmt.Errorf("can't read standings: %w", err)
		}

		standings.Wins[entity.Player(winner)] = wins
		standings.Games += wins
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate standings: %w", err)
	}

	return standings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*entity.GameRecord, error) {
	var (
		record     entity.GameRecord
		winner     string
		finishedAt int64
	)

	err := row.Scan(&record.ID, &winner, &record.MovesTaken, &record.BoardSize, &record.ActiveMarkLimit, &finishedAt)
	if err != nil {
		return nil, err
	}

	record.Winner = entity.Player(winner)
	record.FinishedAt = time.Unix(0, finishedAt).UTC()

	return &record, nil
}
