package apperror

import "errors"

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrNoLegalMove  = errors.New("no legal move")
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrNotBotTurn   = errors.New("it's not the computer's turn")
	ErrGameNotFound = errors.New("game not found")
)
