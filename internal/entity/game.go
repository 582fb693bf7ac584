package entity

import (
	"errors"
	"fmt"
	"strings"
)

type Mark string

const (
	Empty Mark = ""
	MarkX Mark = "X"
	MarkO Mark = "O"
)

type Mode string

const (
	ModeMultiplayer Mode = "multiplayer"
	ModeComputer    Mode = "computer"
)

const BoardSize = 9

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidMark  = errors.New("invalid mark")
	ErrInvalidMode  = errors.New("invalid mode")

	// WinCombos lists rows, then columns, then diagonals. Evaluation reports
	// the first satisfied combo in this order.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Opponent returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return Empty
	}
}

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return MarkX, nil
	case "O":
		return MarkO, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidMark, s)
	}
}

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeMultiplayer:
		return ModeMultiplayer, nil
	case ModeComputer:
		return ModeComputer, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Board is stored row-major, cells 0..8.
type Board [BoardSize]Mark

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

func (that Board) MoveCount() int {
	count := 0
	for _, cell := range that {
		if cell != Empty {
			count++
		}
	}

	return count
}

// String renders the board as nine characters, '.' for an empty cell.
func (that Board) String() string {
	var sb strings.Builder
	for _, cell := range that {
		if cell == Empty {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(string(cell))
	}

	return sb.String()
}

// ParseBoard is the inverse of Board.String. '.', '-' and '_' denote empty cells.
func ParseBoard(s string) (Board, error) {
	var board Board

	s = strings.TrimSpace(s)
	if len(s) != BoardSize {
		return board, fmt.Errorf("%w: want %d cells, got %d", ErrInvalidBoard, BoardSize, len(s))
	}

	for i, r := range strings.ToUpper(s) {
		switch r {
		case 'X':
			board[i] = MarkX
		case 'O':
			board[i] = MarkO
		case '.', '-', '_':
			board[i] = Empty
		default:
			return board, fmt.Errorf("%w: unexpected %q at cell %d", ErrInvalidBoard, r, i)
		}
	}

	return board, nil
}

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWin        Status = "win"
	StatusDraw       Status = "draw"
)

// Outcome is derived from a Board and never stored alongside it.
type Outcome struct {
	Status Status `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

func InProgress() Outcome {
	return Outcome{Status: StatusInProgress}
}

func Win(winner Mark) Outcome {
	return Outcome{Status: StatusWin, Winner: winner}
}

func Draw() Outcome {
	return Outcome{Status: StatusDraw}
}

func (that Outcome) IsTerminal() bool {
	return that.Status != StatusInProgress
}

// Game is a single played session: the board, whose turn it is and whether
// further moves are accepted.
type Game struct {
	ID           string `json:"id"`
	Board        Board  `json:"board"`
	Turn         Mark   `json:"turn"`
	Running      bool   `json:"running"`
	Mode         Mode   `json:"mode"`
	ComputerMark Mark   `json:"computer_mark,omitempty"`
}

func (that *Game) IsWithComputer() bool {
	return that.Mode == ModeComputer
}

func (that *Game) IsComputerTurn() bool {
	return that.Running && that.IsWithComputer() && that.Turn == that.ComputerMark
}
