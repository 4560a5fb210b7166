package entity

import "fmt"

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coord) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// Cell is a single board square. An empty cell has no owner; a faded cell keeps its owner.
type Cell struct {
	Owner Player `json:"owner,omitempty"`
	Faded bool   `json:"faded,omitempty"`
}

func (that Cell) IsEmpty() bool {
	return that.Owner == NoPlayer
}

// IsActiveFor reports whether the cell holds an active (not faded) mark of player.
func (that Cell) IsActiveFor(player Player) bool {
	return that.Owner == player && !that.Faded
}

func (that Cell) State() CellState {
	switch {
	case that.IsEmpty():
		return CellEmpty
	case that.Faded:
		return CellFaded
	default:
		return CellActive
	}
}

type CellState int

const (
	CellEmpty CellState = iota
	CellActive
	CellFaded
)

func (that CellState) String() string {
	switch that {
	case CellEmpty:
		return "empty"
	case CellActive:
		return "active"
	case CellFaded:
		return "faded"
	default:
		return fmt.Sprintf("CellState(%d)", int(that))
	}
}
