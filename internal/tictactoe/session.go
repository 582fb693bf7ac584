package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// DefaultComputerMark is the side the computer plays unless configured otherwise.
const DefaultComputerMark = entity.MarkO

func NewGame(id string, mode entity.Mode) *entity.Game {
	return &entity.Game{
		ID:           id,
		Board:        entity.Board{},
		Turn:         entity.MarkX,
		Running:      true,
		Mode:         mode,
		ComputerMark: DefaultComputerMark,
	}
}

// Restart resets the board unconditionally. ID, mode and computer mark survive.
func Restart(game *entity.Game) *entity.Game {
	game.Board = entity.Board{}
	game.Turn = entity.MarkX
	game.Running = true

	return game
}

// ToggleMode swaps multiplayer and computer mode and starts over.
func ToggleMode(game *entity.Game) *entity.Game {
	if game.IsWithComputer() {
		game.Mode = entity.ModeMultiplayer
	} else {
		game.Mode = entity.ModeComputer
	}

	if !game.ComputerMark.IsPlayer() {
		game.ComputerMark = DefaultComputerMark
	}

	return Restart(game)
}

// Play places the current player's mark on cell and advances the session.
// The game is left untouched on error.
func Play(game *entity.Game, cell int) error {
	if !game.Running {
		return apperror.ErrGameFinished
	}

	board, err := ApplyMove(game.Board, cell, game.Turn)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	game.Board = board
	updateGameStatus(game)

	return nil
}

// Outcome is always recomputed from the board.
func Outcome(game *entity.Game) entity.Outcome {
	return Evaluate(game.Board)
}

// StatusText renders the outcome the way the board UI shows it.
func StatusText(game *entity.Game) string {
	outcome := Outcome(game)

	switch outcome.Status {
	case entity.StatusWin:
		return fmt.Sprintf("%s wins!", outcome.Winner)
	case entity.StatusDraw:
		return "Draw!"
	default:
		return fmt.Sprintf("%s's turn", game.Turn)
	}
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(game *entity.Game) {
	if Evaluate(game.Board).IsTerminal() {
		game.Running = false
		return
	}

	game.Turn = game.Turn.Opponent()
}
