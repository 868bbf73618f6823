package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrCellUnavailable  = errors.New("cell is unavailable")
	ErrMalformedInput   = errors.New("malformed input")
	ErrInputClosed      = errors.New("input closed")
	ErrNoView           = errors.New("no view configured")
	ErrInvalidPlayers   = errors.New("invalid players")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrUnknownView      = errors.New("unknown view")
)
