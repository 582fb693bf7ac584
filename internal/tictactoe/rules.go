package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// ApplyMove returns a copy of board with mark placed on cell index.
func ApplyMove(board entity.Board, index int, mark entity.Mark) (entity.Board, error) {
	if err := validateMove(board, index, mark); err != nil {
		return board, err
	}

	board[index] = mark

	return board, nil
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, index int, mark entity.Mark) error {
	if index < 0 || index >= len(board) {
		return fmt.Errorf("%w: cell %d is out of range", apperror.ErrIllegalMove, index)
	}

	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %q is not a player mark", apperror.ErrIllegalMove, mark)
	}

	if board[index] != entity.Empty {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrIllegalMove, index)
	}

	return nil
}

func Evaluate(board entity.Board) entity.Outcome {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.Empty && a == b && b == c {
			return entity.Win(a)
		}
	}

	if board.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}

// LegalMoves returns the empty cells in ascending order.
func LegalMoves(board entity.Board) []int {
	moves := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == entity.Empty {
			moves = append(moves, i)
		}
	}

	return moves
}
