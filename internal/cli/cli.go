// Package cli plays sessions in a terminal.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type Player interface {
	GetMove(ctx context.Context, game *entity.Game) (int, error)
}

type CLI struct {
	Out io.Writer
	X   Player
	O   Player

	// Quiet suppresses board rendering between moves.
	Quiet bool

	moves []int
}

// Play runs game to completion and returns it. An illegal move is reported
// and the same player is asked again.
func (c *CLI) Play(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	c.moves = nil

	for game.Running {
		if !c.Quiet {
			RenderBoard(c.Out, game)
		}

		player := c.X
		if game.Turn == entity.MarkO {
			player = c.O
		}

		cell, err := player.GetMove(ctx, game)
		if err != nil {
			return game, fmt.Errorf("%s failed to move: %w", game.Turn, err)
		}

		mark := game.Turn
		if err = tictactoe.Play(game, cell); err != nil {
			if errors.Is(err, apperror.ErrIllegalMove) {
				fmt.Fprintln(c.Out, "illegal move:", err)
				continue
			}

			return game, err
		}

		c.moves = append(c.moves, cell)
		if !c.Quiet {
			fmt.Fprintf(c.Out, "%d. %s takes %d\n", len(c.moves), mark, cell+1)
		}
	}

	RenderBoard(c.Out, game)
	fmt.Fprintln(c.Out, tictactoe.StatusText(game))

	return game, nil
}

// Moves returns the cells played in the last game, in order.
func (c *CLI) Moves() []int {
	return c.moves
}

// RenderBoard draws the grid. Empty cells show their 1-based number.
func RenderBoard(out io.Writer, game *entity.Game) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "[%s]\n", tictactoe.StatusText(game))

	w := tabwriter.NewWriter(out, 2, 4, 1, ' ', 0)
	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			i := row*3 + col
			if game.Board[i] == entity.Empty {
				cells[col] = strconv.Itoa(i + 1)
			} else {
				cells[col] = string(game.Board[i])
			}
		}
		fmt.Fprintf(w, " %s\t\n", strings.Join(cells, "\t|\t"))
	}
	w.Flush()
}
