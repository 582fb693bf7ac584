package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

var ErrNoInput = errors.New("input closed")

func NewCLIPlayer(out io.Writer, in *bufio.Reader) Player {
	return &cliPlayer{out, in}
}

type cliPlayer struct {
	out io.Writer
	in  *bufio.Reader
}

// GetMove reads a cell number 1-9 and returns its 0-based index.
func (c *cliPlayer) GetMove(_ context.Context, game *entity.Game) (int, error) {
	for {
		fmt.Fprintf(c.out, "%s> ", game.Turn)

		line, err := c.in.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			if errors.Is(err, io.EOF) {
				return 0, ErrNoInput
			}
			return 0, fmt.Errorf("failed to read move: %w", err)
		}

		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 1 || n > entity.BoardSize {
			fmt.Fprintln(c.out, "enter a cell from 1 to 9")
			continue
		}

		return n - 1, nil
	}
}

// NewComputerPlayer plays the minimax move after waiting delay.
func NewComputerPlayer(delay time.Duration) Player {
	return &computerPlayer{delay: delay}
}

type computerPlayer struct {
	delay time.Duration
}

func (c *computerPlayer) GetMove(ctx context.Context, game *entity.Game) (int, error) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}
	}

	return minimax.Search(game.Board, game.Turn)
}
