package main

import (
	"bytes"
	"context"
	"flag"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

func TestSideToMove(t *testing.T) {
	for _, tc := range []struct {
		board string
		want  entity.Mark
	}{
		{".........", entity.MarkX},
		{"X........", entity.MarkO},
		{"XX.OO....", entity.MarkX},
		{"XX.OO...X", entity.MarkO},
	} {
		board, err := entity.ParseBoard(tc.board)
		require.NoError(t, err)
		assert.Equal(t, tc.want, sideToMove(board), tc.board)
	}
}

func TestPrintAnalysis(t *testing.T) {
	board, err := entity.ParseBoard("XX.OO....")
	require.NoError(t, err)

	analysis, err := minimax.Analyze(board, entity.MarkO)
	require.NoError(t, err)

	var out bytes.Buffer
	printAnalysis(&out, analysis)

	assert.Contains(t, out.String(), "O to move: play 2 (value +1")
	assert.Contains(t, out.String(), "-1")
}

func TestAnalyzeCommand_Usage(t *testing.T) {
	cmd := &analyzeCommand{}
	flags := flag.NewFlagSet("analyze", flag.ContinueOnError)
	cmd.SetFlags(flags)
	require.NoError(t, flags.Parse([]string{"XX"}))

	status := cmd.Execute(context.Background(), flags)

	assert.Equal(t, subcommands.ExitUsageError, status)
}
