package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/google/subcommands"

	app "github.com/rocketscienceinc/tictactoe-minimax/internal"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/cli"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type serveCommand struct{}

func (*serveCommand) Name() string     { return "serve" }
func (*serveCommand) Synopsis() string { return "Run the HTTP and WebSocket servers" }
func (*serveCommand) Usage() string {
	return `serve

Serve games over REST and WebSocket using config.yml or the environment.
`
}

func (*serveCommand) SetFlags(*flag.FlagSet) {}

func (*serveCommand) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	conf := initConfig()
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		logger.Error("app run failed", "error", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

type playCommand struct {
	mode string
}

func (*playCommand) Name() string     { return "play" }
func (*playCommand) Synopsis() string { return "Play tic-tac-toe in the terminal" }
func (*playCommand) Usage() string {
	return `play [-mode computer|multiplayer]

Play against the computer or pass the keyboard between two players.
Cells are numbered 1-9, row by row.
`
}

func (c *playCommand) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.mode, "mode", string(entity.ModeComputer), "computer or multiplayer")
}

func (c *playCommand) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	mode, err := entity.ParseMode(c.mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	conf := initConfig()
	computerMark, err := conf.Bot.ComputerMark()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	in := bufio.NewReader(os.Stdin)
	human := cli.NewCLIPlayer(os.Stdout, in)
	st := &cli.CLI{Out: os.Stdout, X: human, O: human}

	game := tictactoe.NewGame(pkg.GenerateGameID(), mode)
	game.ComputerMark = computerMark

	if game.IsWithComputer() {
		computer := cli.NewComputerPlayer(conf.Bot.Delay)
		if computerMark == entity.MarkX {
			st.X = computer
		} else {
			st.O = computer
		}
	}

	if _, err = st.Play(ctx, game); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

type selfplayCommand struct {
	quiet bool
}

func (*selfplayCommand) Name() string     { return "selfplay" }
func (*selfplayCommand) Synopsis() string { return "Play the search against itself" }
func (*selfplayCommand) Usage() string {
	return `selfplay [-q]
`
}

func (c *selfplayCommand) SetFlags(flags *flag.FlagSet) {
	flags.BoolVar(&c.quiet, "q", false, "print only the final position")
}

func (c *selfplayCommand) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st := &cli.CLI{
		Out:   os.Stdout,
		X:     cli.NewComputerPlayer(0),
		O:     cli.NewComputerPlayer(0),
		Quiet: c.quiet,
	}

	game, err := st.Play(ctx, tictactoe.NewGame("selfplay", entity.ModeComputer))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stdout, "moves: %v\n", st.Moves())

	if tictactoe.Outcome(game).Status != entity.StatusDraw {
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

type analyzeCommand struct {
	player string
	asJSON bool
}

func (*analyzeCommand) Name() string     { return "analyze" }
func (*analyzeCommand) Synopsis() string { return "Print the minimax value of every legal move" }
func (*analyzeCommand) Usage() string {
	return `analyze [-player X|O] [-json] BOARD

BOARD is nine characters row by row, X, O or '.' for an empty cell,
e.g. XX.OO....
`
}

func (c *analyzeCommand) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.player, "player", "", "side to move; inferred from the board when empty")
	flags.BoolVar(&c.asJSON, "json", false, "print the analysis as JSON")
}

func (c *analyzeCommand) Execute(_ context.Context, flags *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if flags.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	board, err := entity.ParseBoard(flags.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	player := sideToMove(board)
	if c.player != "" {
		if player, err = entity.ParseMark(c.player); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	analysis, err := minimax.Analyze(board, player)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err = enc.Encode(analysis); err != nil {
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printAnalysis(os.Stdout, analysis)

	return subcommands.ExitSuccess
}

// sideToMove assumes X moved first.
func sideToMove(board entity.Board) entity.Mark {
	if board.MoveCount()%2 == 0 {
		return entity.MarkX
	}

	return entity.MarkO
}

func printAnalysis(out io.Writer, analysis minimax.Analysis) {
	w := tabwriter.NewWriter(out, 4, 8, 1, ' ', 0)
	fmt.Fprintf(w, "cell\tvalue\t\n")
	for _, candidate := range analysis.Candidates {
		marker := ""
		if candidate.Cell == analysis.Best {
			marker = "*"
		}
		fmt.Fprintf(w, "%d\t%+d\t%s\n", candidate.Cell, candidate.Value, marker)
	}
	w.Flush()

	fmt.Fprintf(out, "%s to move: play %d (value %+d, %d positions searched)\n",
		analysis.Player, analysis.Best, analysis.Value, analysis.Visited)
}
