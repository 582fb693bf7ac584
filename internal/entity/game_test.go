package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark_Opponent(t *testing.T) {
	t.Run("X and O are opponents", func(t *testing.T) {
		assert.Equal(t, MarkO, MarkX.Opponent())
		assert.Equal(t, MarkX, MarkO.Opponent())
	})

	t.Run("Empty has no opponent", func(t *testing.T) {
		assert.Equal(t, Empty, Empty.Opponent())
	})
}

func TestParseMark(t *testing.T) {
	t.Run("Accepts lower and upper case", func(t *testing.T) {
		mark, err := ParseMark("o")
		require.NoError(t, err)
		assert.Equal(t, MarkO, mark)

		mark, err = ParseMark(" X ")
		require.NoError(t, err)
		assert.Equal(t, MarkX, mark)
	})

	t.Run("Rejects anything else", func(t *testing.T) {
		_, err := ParseMark("Z")
		assert.ErrorIs(t, err, ErrInvalidMark)
	})
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("Computer")
	require.NoError(t, err)
	assert.Equal(t, ModeComputer, mode)

	_, err = ParseMode("online")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Empty board is not full", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// Then: it is not full and holds no moves
		assert.False(t, board.IsFull())
		assert.Equal(t, 0, board.MoveCount())
	})

	t.Run("Every cell marked", func(t *testing.T) {
		// Given: a board with every cell marked
		board := Board{
			MarkX, MarkO, MarkX,
			MarkO, MarkX, MarkO,
			MarkO, MarkX, MarkO,
		}

		// Then: it is full
		assert.True(t, board.IsFull())
		assert.Equal(t, BoardSize, board.MoveCount())
	})
}

func TestParseBoard(t *testing.T) {
	t.Run("Round trips through String", func(t *testing.T) {
		// Given: a board string
		raw := "XX.OO...."

		// When: parsing and rendering it again
		board, err := ParseBoard(raw)
		require.NoError(t, err)

		// Then: the cells are placed row-major and the rendering matches
		assert.Equal(t, Board{MarkX, MarkX, Empty, MarkO, MarkO, Empty, Empty, Empty, Empty}, board)
		assert.Equal(t, raw, board.String())
	})

	t.Run("Accepts alternative empty glyphs", func(t *testing.T) {
		board, err := ParseBoard("x-_o.....")
		require.NoError(t, err)
		assert.Equal(t, "X..O.....", board.String())
	})

	t.Run("Rejects wrong length", func(t *testing.T) {
		_, err := ParseBoard("XXO")
		assert.ErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("Rejects unknown glyph", func(t *testing.T) {
		_, err := ParseBoard("XX?OO....")
		assert.ErrorIs(t, err, ErrInvalidBoard)
	})
}

func TestGame_IsComputerTurn(t *testing.T) {
	t.Run("Computer mode on the computer's mark", func(t *testing.T) {
		game := &Game{Turn: MarkO, Running: true, Mode: ModeComputer, ComputerMark: MarkO}
		assert.True(t, game.IsComputerTurn())
	})

	t.Run("Multiplayer never has a computer turn", func(t *testing.T) {
		game := &Game{Turn: MarkO, Running: true, Mode: ModeMultiplayer, ComputerMark: MarkO}
		assert.False(t, game.IsComputerTurn())
	})

	t.Run("Finished game has no turn", func(t *testing.T) {
		game := &Game{Turn: MarkO, Running: false, Mode: ModeComputer, ComputerMark: MarkO}
		assert.False(t, game.IsComputerTurn())
	})
}

func TestOutcome_IsTerminal(t *testing.T) {
	assert.False(t, InProgress().IsTerminal())
	assert.True(t, Win(MarkX).IsTerminal())
	assert.True(t, Draw().IsTerminal())
}
