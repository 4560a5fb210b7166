package entity

import "math/rand"

type Player string

const (
	NoPlayer Player = ""
	PlayerX  Player = "X"
	PlayerO  Player = "O"
)

// Players lists both identifiers in a stable order.
var Players = [2]Player{PlayerX, PlayerO}

func (that Player) Opponent() Player {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return NoPlayer
	}
}

func (that Player) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

func (that Player) String() string {
	return string(that)
}

// RandomPlayer picks the starting player uniformly at random.
func RandomPlayer() Player {
	return Players[rand.Intn(len(Players))] //nolint: gosec // it's ok
}
