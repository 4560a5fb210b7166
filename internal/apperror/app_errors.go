package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrCellLocked        = errors.New("cell was just faded and cannot be reclaimed yet")
	ErrInvalidCoordinate = errors.New("invalid cell coordinate")
	ErrInvalidSettings   = errors.New("invalid game settings")
	ErrNotFound          = errors.New("not found")
	ErrUnknownStorage    = errors.New("unknown storage driver")
)
