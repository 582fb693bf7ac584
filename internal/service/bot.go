package service

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var ErrNotBotTurn = apperror.ErrNotBotTurn

type BotService interface {
	MakeTurn(game *entity.Game) (int, error)
}

type botService struct {
	logger *slog.Logger
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger,
	}
}

// MakeTurn plays the optimal move for the computer and returns the cell it took.
func (that *botService) MakeTurn(game *entity.Game) (int, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	if !game.IsComputerTurn() {
		return 0, ErrNotBotTurn
	}

	analysis, err := minimax.Analyze(game.Board, game.ComputerMark)
	if err != nil {
		return 0, fmt.Errorf("bot failed to search: %w", err)
	}

	if err = tictactoe.Play(game, analysis.Best); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot moved", "cell", analysis.Best, "value", analysis.Value, "visited", analysis.Visited)

	return analysis.Best, nil
}
