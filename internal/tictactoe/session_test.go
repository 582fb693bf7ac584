package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func TestNewGame(t *testing.T) {
	// When: a new game is created
	game := NewGame("123", entity.ModeMultiplayer)

	// Then: the game state should correspond to the expected initial state
	expectedGame := &entity.Game{
		ID:           "123",
		Board:        entity.Board{},
		Turn:         x,
		Running:      true,
		Mode:         entity.ModeMultiplayer,
		ComputerMark: o,
	}

	require.Equal(t, expectedGame, game)
	assert.Equal(t, entity.InProgress(), Outcome(game))
	assert.Equal(t, "X's turn", StatusText(game))
}

func TestPlay(t *testing.T) {
	t.Run("Play", func(t *testing.T) {
		// Given: a new game
		game := NewGame("123", entity.ModeMultiplayer)

		// When: X plays cell 0
		err := Play(game, 0)
		require.NoError(t, err)

		// Then: the mark is placed and the turn passes to O
		assert.Equal(t, entity.Board{x, e, e, e, e, e, e, e, e}, game.Board)
		assert.Equal(t, o, game.Turn)
		assert.True(t, game.Running)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X already holds cell 0
		game := NewGame("123", entity.ModeMultiplayer)
		require.NoError(t, Play(game, 0))
		before := *game

		// When: O tries to play the same cell
		err := Play(game, 0)

		// Then: an illegal move error is returned and the game state remains unchanged
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, before, *game)
	})

	t.Run("Winning move stops the game", func(t *testing.T) {
		// Given: X is one move from the top row
		game := NewGame("123", entity.ModeMultiplayer)
		for _, cell := range []int{0, 3, 1, 4} {
			require.NoError(t, Play(game, cell))
		}

		// When: X completes the row
		require.NoError(t, Play(game, 2))

		// Then: X has won, the game is no longer running and the turn stays on X
		assert.False(t, game.Running)
		assert.Equal(t, x, game.Turn)
		assert.Equal(t, entity.Win(x), Outcome(game))
		assert.Equal(t, "X wins!", StatusText(game))
	})

	t.Run("Filling the board ends in a draw", func(t *testing.T) {
		game := NewGame("123", entity.ModeMultiplayer)
		for _, cell := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
			require.NoError(t, Play(game, cell))
		}

		assert.False(t, game.Running)
		assert.Equal(t, entity.Draw(), Outcome(game))
		assert.Equal(t, "Draw!", StatusText(game))
	})

	t.Run("Move after game finished", func(t *testing.T) {
		// Given: a game X has already won
		game := NewGame("123", entity.ModeMultiplayer)
		game.Board = entity.Board{x, x, x, e, o, e, e, o, e}
		game.Running = false

		// When: another move is attempted
		err := Play(game, 3)

		// Then: ErrGameFinished should be returned
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestRestart(t *testing.T) {
	// Given: a finished computer game
	game := NewGame("123", entity.ModeComputer)
	for _, cell := range []int{0, 3, 1, 4, 2} {
		require.NoError(t, Play(game, cell))
	}
	require.False(t, game.Running)

	// When: the game is restarted
	Restart(game)

	// Then: the board is empty, X moves first and the game runs again
	assert.Equal(t, entity.Board{}, game.Board)
	assert.Equal(t, x, game.Turn)
	assert.True(t, game.Running)
	assert.Equal(t, "123", game.ID)
	assert.Equal(t, entity.ModeComputer, game.Mode)
}

func TestToggleMode(t *testing.T) {
	// Given: a multiplayer game in progress
	game := NewGame("123", entity.ModeMultiplayer)
	require.NoError(t, Play(game, 4))

	// When: the mode is toggled
	ToggleMode(game)

	// Then: the game is against the computer and starts over
	assert.Equal(t, entity.ModeComputer, game.Mode)
	assert.Equal(t, entity.Board{}, game.Board)
	assert.Equal(t, x, game.Turn)

	// When: toggled again
	ToggleMode(game)

	// Then: back to multiplayer
	assert.Equal(t, entity.ModeMultiplayer, game.Mode)
}
