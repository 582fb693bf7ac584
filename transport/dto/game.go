// Package dto holds the payloads shared by the REST and websocket transports.
package dto

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// Game is a session as clients see it: the stored state plus the derived
// outcome and status line.
type Game struct {
	ID           string         `json:"id"`
	Board        []string       `json:"board"`
	Turn         entity.Mark    `json:"turn"`
	Running      bool           `json:"running"`
	Mode         entity.Mode    `json:"mode"`
	ComputerMark entity.Mark    `json:"computer_mark,omitempty"`
	Outcome      entity.Outcome `json:"outcome"`
	StatusText   string         `json:"status_text"`
}

func NewGame(game *entity.Game) *Game {
	if game == nil {
		return nil
	}

	board := make([]string, entity.BoardSize)
	for i, cell := range game.Board {
		board[i] = string(cell)
	}

	view := &Game{
		ID:         game.ID,
		Board:      board,
		Turn:       game.Turn,
		Running:    game.Running,
		Mode:       game.Mode,
		Outcome:    tictactoe.Outcome(game),
		StatusText: tictactoe.StatusText(game),
	}

	if game.IsWithComputer() {
		view.ComputerMark = game.ComputerMark
	}

	return view
}
