package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(game *entity.Game) (int, error)
}

// GameManager drives sessions for the transports: it loads a game, applies
// one change through the rules engine and stores the result.
type GameManager struct {
	logger *slog.Logger

	gameRepo     gameRepo
	botService   botService
	computerMark entity.Mark
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, botService botService, computerMark entity.Mark) *GameManager {
	if !computerMark.IsPlayer() {
		computerMark = tictactoe.DefaultComputerMark
	}

	return &GameManager{
		logger:       logger,
		gameRepo:     gameRepo,
		botService:   botService,
		computerMark: computerMark,
	}
}

func (that *GameManager) CreateGame(ctx context.Context, mode entity.Mode) (*entity.Game, error) {
	if _, err := entity.ParseMode(string(mode)); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	game := tictactoe.NewGame(pkg.GenerateGameID(), mode)
	game.ComputerMark = that.computerMark

	if err := that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "mode", game.Mode)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	return that.getGameByID(ctx, id)
}

// MakeTurn applies a human move. Moves on the computer's turn are rejected.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.IsComputerTurn() {
		return game, apperror.ErrNotYourTurn
	}

	if err = tictactoe.Play(game, cell); err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logFinished(game)

	return game, nil
}

// BotTurn lets the computer play when it is due and returns the cell it took.
// ErrNotBotTurn means the session moved on, e.g. it was restarted.
func (that *GameManager) BotTurn(ctx context.Context, id string) (*entity.Game, int, error) {
	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	if !game.Running {
		return game, 0, apperror.ErrGameFinished
	}

	if !game.IsComputerTurn() {
		return game, 0, apperror.ErrNotBotTurn
	}

	cell, err := that.botService.MakeTurn(game)
	if err != nil {
		return game, 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, 0, err
	}

	that.logFinished(game)

	return game, cell, nil
}

func (that *GameManager) Restart(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tictactoe.Restart(game)

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) ToggleMode(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tictactoe.ToggleMode(game)
	game.ComputerMark = that.computerMark

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game mode toggled", "gameID", game.ID, "mode", game.Mode)

	return game, nil
}

func (that *GameManager) LegalMoves(ctx context.Context, id string) ([]int, error) {
	game, err := that.getGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !game.Running {
		return []int{}, nil
	}

	return tictactoe.LegalMoves(game.Board), nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// Analyze scores every legal move on an arbitrary board without touching any session.
func (that *GameManager) Analyze(board entity.Board, player entity.Mark) (minimax.Analysis, error) {
	analysis, err := minimax.Analyze(board, player)
	if err != nil {
		return minimax.Analysis{}, fmt.Errorf("failed to analyze board: %w", err)
	}

	return analysis, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) logFinished(game *entity.Game) {
	if game.Running {
		return
	}

	outcome := tictactoe.Outcome(game)
	that.logger.Info("game finished", "gameID", game.ID, "status", outcome.Status, "winner", outcome.Winner)
}

// IsUserError reports whether err was caused by the caller's input rather
// than by storage or the server.
func IsUserError(err error) bool {
	return errors.Is(err, apperror.ErrIllegalMove) ||
		errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrNoLegalMove) ||
		errors.Is(err, entity.ErrInvalidMode) ||
		errors.Is(err, entity.ErrInvalidMark) ||
		errors.Is(err, entity.ErrInvalidBoard)
}
