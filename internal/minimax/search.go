// Package minimax picks the game-theoretically optimal move by searching the
// whole remaining game tree.
//
// The searching player is the maximiser: a finished line is worth +1 when it
// is that player's win, -1 when it is the opponent's and 0 on a draw. There is
// no pruning, no memoisation and no depth limit; from an empty board the tree
// holds roughly half a million nodes, which is cheap at this size.
package minimax

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	WinValue  = 1
	DrawValue = 0
	LossValue = -1
)

// Candidate is one legal move and the value it guarantees.
type Candidate struct {
	Cell  int `json:"cell"`
	Value int `json:"value"`
}

type Analysis struct {
	Player     entity.Mark `json:"player"`
	Best       int         `json:"best"`
	Value      int         `json:"value"`
	Candidates []Candidate `json:"candidates"`
	Visited    uint64      `json:"visited"`
}

// Search returns the cell player should take on board.
func Search(board entity.Board, player entity.Mark) (int, error) {
	analysis, err := Analyze(board, player)
	if err != nil {
		return 0, err
	}

	return analysis.Best, nil
}

// Analyze scores every legal move for player. Moves are scanned in ascending
// order and the first move with the highest value is chosen.
func Analyze(board entity.Board, player entity.Mark) (Analysis, error) {
	if !player.IsPlayer() {
		return Analysis{}, fmt.Errorf("%w: %q is not a player mark", apperror.ErrIllegalMove, player)
	}

	moves := tictactoe.LegalMoves(board)
	if len(moves) == 0 {
		return Analysis{}, fmt.Errorf("%w: board %s is full", apperror.ErrNoLegalMove, board)
	}

	s := &searcher{maximizer: player}
	analysis := Analysis{
		Player:     player,
		Best:       -1,
		Candidates: make([]Candidate, 0, len(moves)),
	}

	for _, cell := range moves {
		next, err := tictactoe.ApplyMove(board, cell, player)
		if err != nil {
			return Analysis{}, fmt.Errorf("failed to apply candidate %d: %w", cell, err)
		}

		value := s.value(next, player.Opponent())
		analysis.Candidates = append(analysis.Candidates, Candidate{Cell: cell, Value: value})

		if analysis.Best < 0 || value > analysis.Value {
			analysis.Best = cell
			analysis.Value = value
		}
	}

	analysis.Visited = s.visited

	return analysis, nil
}

type searcher struct {
	maximizer entity.Mark
	visited   uint64
}

// value is the minimax value of board with toMove about to play.
func (that *searcher) value(board entity.Board, toMove entity.Mark) int {
	that.visited++

	switch outcome := tictactoe.Evaluate(board); outcome.Status {
	case entity.StatusWin:
		if outcome.Winner == that.maximizer {
			return WinValue
		}
		return LossValue
	case entity.StatusDraw:
		return DrawValue
	}

	maximizing := toMove == that.maximizer
	best := LossValue - 1
	if !maximizing {
		best = WinValue + 1
	}

	for _, cell := range tictactoe.LegalMoves(board) {
		next := board
		next[cell] = toMove

		value := that.value(next, toMove.Opponent())
		if maximizing && value > best || !maximizing && value < best {
			best = value
		}
	}

	return best
}
