package entity

import (
	"fmt"
	"time"
)

const (
	DefaultBoardSize       = 7
	DefaultActiveMarkLimit = 7

	MinBoardSize       = 3
	MinActiveMarkLimit = 1
)

type Outcome int

const (
	OutcomeRejected Outcome = iota
	OutcomeInvalidCoordinate
	OutcomePlaced
	OutcomeWin
)

func (that Outcome) String() string {
	switch that {
	case OutcomeRejected:
		return "rejected"
	case OutcomeInvalidCoordinate:
		return "invalid_coordinate"
	case OutcomePlaced:
		return "placed"
	case OutcomeWin:
		return "win"
	default:
		return fmt.Sprintf("Outcome(%d)", int(that))
	}
}

// MoveResult describes what a single placement did, so a renderer can apply it
// without re-reading the whole board.
type MoveResult struct {
	Outcome Outcome `json:"outcome"`
	Player  Player  `json:"player,omitempty"`
	Coord   Coord   `json:"coord"`

	// Evicted is the acting player's faded cell that was cleared before the mark was written.
	Evicted *Coord `json:"evicted,omitempty"`
	// Faded is the acting player's oldest mark that faded after the placement.
	Faded *Coord `json:"faded,omitempty"`

	MovesTaken int     `json:"moves_taken,omitempty"`
	Line       []Coord `json:"line,omitempty"`

	Reason error `json:"-"`
}

func (that MoveResult) Accepted() bool {
	return that.Outcome == OutcomePlaced || that.Outcome == OutcomeWin
}

func (that MoveResult) IsWin() bool {
	return that.Outcome == OutcomeWin
}

type Settings struct {
	BoardSize       int `json:"board_size"`
	ActiveMarkLimit int `json:"active_mark_limit"`
}

func DefaultSettings() Settings {
	return Settings{
		BoardSize:       DefaultBoardSize,
		ActiveMarkLimit: DefaultActiveMarkLimit,
	}
}

type Session struct {
	ID        string    `json:"id"`
	Settings  Settings  `json:"settings"`
	StartedAt time.Time `json:"started_at"`
}

// GameRecord is the result of a finished game as kept by the scoreboard.
type GameRecord struct {
	ID              string    `json:"id"`
	Winner          Player    `json:"winner"`
	MovesTaken      int       `json:"moves_taken"`
	BoardSize       int       `json:"board_size"`
	ActiveMarkLimit int       `json:"active_mark_limit"`
	FinishedAt      time.Time `json:"finished_at"`
}

type Standings struct {
	Wins  map[Player]int `json:"wins"`
	Games int            `json:"games"`
}

func NewStandings() *Standings {
	return &Standings{
		Wins: map[Player]int{PlayerX: 0, PlayerO: 0},
	}
}

// BoardView is a read-only copy of the game state handed to renderers.
type BoardView struct {
	SessionID     string         `json:"session_id"`
	Cells         [][]Cell       `json:"cells"`
	CurrentPlayer Player         `json:"current_player"`
	Terminal      bool           `json:"terminal"`
	Winner        Player         `json:"winner,omitempty"`
	MoveCounts    map[Player]int `json:"move_counts"`
}

func (that BoardView) Size() int {
	return len(that.Cells)
}
