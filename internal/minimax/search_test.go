package minimax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	x = entity.MarkX
	o = entity.MarkO
	e = entity.Empty
)

func TestSearch_BlocksImmediateThreat(t *testing.T) {
	// Given: X threatens cell 2, O threatens cell 5, O to move
	board := entity.Board{x, x, e, o, o, e, e, e, e}

	// When: searching for O
	analysis, err := Analyze(board, o)
	require.NoError(t, err)

	// Then: blocking at 2 and winning at 5 are both forced wins, and the
	// ascending scan keeps the first of them
	assert.Equal(t, []Candidate{
		{Cell: 2, Value: WinValue},
		{Cell: 5, Value: WinValue},
		{Cell: 6, Value: LossValue},
		{Cell: 7, Value: LossValue},
		{Cell: 8, Value: LossValue},
	}, analysis.Candidates)
	assert.Equal(t, 2, analysis.Best)
	assert.Equal(t, WinValue, analysis.Value)

	// And: X has no immediate win after the chosen move
	next, err := tictactoe.ApplyMove(board, analysis.Best, o)
	require.NoError(t, err)
	for _, cell := range tictactoe.LegalMoves(next) {
		reply, err := tictactoe.ApplyMove(next, cell, x)
		require.NoError(t, err)
		assert.NotEqual(t, entity.Win(x), tictactoe.Evaluate(reply), "X wins with %d", cell)
	}
}

func TestSearch_NoLegalMove(t *testing.T) {
	// Given: a full board
	board := entity.Board{x, o, x, o, x, o, o, x, o}

	// When: searching
	_, err := Search(board, o)

	// Then: ErrNoLegalMove is returned
	assert.ErrorIs(t, err, apperror.ErrNoLegalMove)
}

func TestSearch_RejectsEmptyPlayer(t *testing.T) {
	_, err := Search(entity.Board{}, e)
	assert.ErrorIs(t, err, apperror.ErrIllegalMove)
}

func TestSearch_SelfPlayDraws(t *testing.T) {
	// Given: an empty board and both sides played by the search
	board := entity.Board{}
	turn := x

	// When: every move is chosen by Search
	for !tictactoe.Evaluate(board).IsTerminal() {
		cell, err := Search(board, turn)
		require.NoError(t, err)
		require.Equal(t, e, board[cell])

		board, err = tictactoe.ApplyMove(board, cell, turn)
		require.NoError(t, err)
		turn = turn.Opponent()
	}

	// Then: optimal play ends in a draw
	assert.Equal(t, entity.Draw(), tictactoe.Evaluate(board))
	assert.True(t, board.IsFull())
}

func TestSearch_OpeningValues(t *testing.T) {
	// Every opening move is a draw under perfect play.
	analysis, err := Analyze(entity.Board{}, x)
	require.NoError(t, err)

	require.Len(t, analysis.Candidates, entity.BoardSize)
	for _, candidate := range analysis.Candidates {
		assert.Equal(t, DrawValue, candidate.Value, "cell %d", candidate.Cell)
	}
	assert.Equal(t, 0, analysis.Best)
	assert.Equal(t, uint64(549945), analysis.Visited)
}

// neverLoses plays every possible line for the side that is not searching and
// checks the searching side is never beaten.
func neverLoses(t *testing.T, board entity.Board, turn, searching entity.Mark) {
	t.Helper()

	outcome := tictactoe.Evaluate(board)
	if outcome.IsTerminal() {
		require.NotEqual(t, entity.Win(searching.Opponent()), outcome, "lost on %s", board)
		return
	}

	if turn == searching {
		cell, err := Search(board, turn)
		require.NoError(t, err)
		require.Equal(t, e, board[cell], "picked occupied cell on %s", board)

		next, err := tictactoe.ApplyMove(board, cell, turn)
		require.NoError(t, err)
		neverLoses(t, next, turn.Opponent(), searching)
		return
	}

	for _, cell := range tictactoe.LegalMoves(board) {
		next, err := tictactoe.ApplyMove(board, cell, turn)
		require.NoError(t, err)
		neverLoses(t, next, turn.Opponent(), searching)
	}
}

func TestSearch_NeverLoses(t *testing.T) {
	t.Run("As O responding to every X line", func(t *testing.T) {
		neverLoses(t, entity.Board{}, x, o)
	})

	t.Run("As X against every O reply", func(t *testing.T) {
		neverLoses(t, entity.Board{}, x, x)
	})
}

// fixedMaximizerValue scores boards with O always maximising and X always
// minimising, mutating and restoring the board in place.
func fixedMaximizerValue(board *entity.Board, maximizing bool) int {
	switch outcome := tictactoe.Evaluate(*board); outcome.Status {
	case entity.StatusWin:
		if outcome.Winner == o {
			return 1
		}
		return -1
	case entity.StatusDraw:
		return 0
	}

	best := 2
	mark := x
	if maximizing {
		best = -2
		mark = o
	}

	for i := range board {
		if board[i] != e {
			continue
		}
		board[i] = mark
		value := fixedMaximizerValue(board, !maximizing)
		board[i] = e

		if maximizing && value > best || !maximizing && value < best {
			best = value
		}
	}

	return best
}

func fixedMaximizerMove(board entity.Board) int {
	best, move := -2, -1
	for i := range board {
		if board[i] != e {
			continue
		}
		board[i] = o
		value := fixedMaximizerValue(&board, false)
		board[i] = e

		if value > best {
			best, move = value, i
		}
	}

	return move
}

func TestSearch_MatchesFixedMaximizerForO(t *testing.T) {
	// Every reply O can face after X's opening and its second move.
	checked := 0
	for first := 0; first < entity.BoardSize; first++ {
		board, err := tictactoe.ApplyMove(entity.Board{}, first, x)
		require.NoError(t, err)

		cell, err := Search(board, o)
		require.NoError(t, err)
		require.Equal(t, fixedMaximizerMove(board), cell, "board %s", board)
		checked++

		board, err = tictactoe.ApplyMove(board, cell, o)
		require.NoError(t, err)

		for _, second := range tictactoe.LegalMoves(board) {
			next, err := tictactoe.ApplyMove(board, second, x)
			require.NoError(t, err)
			if tictactoe.Evaluate(next).IsTerminal() {
				continue
			}

			cell, err := Search(next, o)
			require.NoError(t, err)
			require.Equal(t, fixedMaximizerMove(next), cell, "board %s", next)
			checked++
		}
	}

	assert.Equal(t, 9+9*7, checked)
}
