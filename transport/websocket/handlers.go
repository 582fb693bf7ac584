package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/dto"
)

func (that *Server) handleNewGame(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, ok := that.decodePayload(msg)
	if !ok {
		return that.sendErrorResponse(conn, msg.Action, "invalid payload")
	}

	mode := entity.ModeComputer
	if payloadReq.Mode != "" {
		mode = entity.Mode(payloadReq.Mode)
	}

	game, err := that.gameUseCase.CreateGame(ctx, mode)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return that.sendGame(ctx, conn, msg.Action, game)
}

func (that *Server) handleGetGame(ctx context.Context, conn *connection, msg *Message) error {
	payloadReq, ok := that.decodePayload(msg)
	if !ok || payloadReq.GameID == "" {
		return that.sendErrorResponse(conn, msg.Action, "game_id is required")
	}

	game, err := that.gameUseCase.GetGame(ctx, payloadReq.GameID)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, ResponsePayload{Game: dto.NewGame(game)})
}

// handleGameTurn applies the human move. When the computer is due next its
// move follows as a separate game:bot message after botDelay.
func (that *Server) handleGameTurn(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, ok := that.decodePayload(msg)
	if !ok || payloadReq.GameID == "" || payloadReq.Cell == nil {
		return that.sendErrorResponse(conn, msg.Action, "game_id and cell are required")
	}

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.GameID, *payloadReq.Cell)
	if err != nil {
		log.Debug("turn rejected", "gameID", payloadReq.GameID, "cell", *payloadReq.Cell, "error", err)
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	if err = that.sendMessage(conn, msg.Action, ResponsePayload{Game: dto.NewGame(game), Cell: payloadReq.Cell}); err != nil {
		return err
	}

	if game.IsComputerTurn() {
		that.scheduleBotTurn(ctx, conn, game.ID)
	}

	return nil
}

// sendGame answers with the game and lets the computer open when it plays X.
func (that *Server) sendGame(ctx context.Context, conn *connection, action string, game *entity.Game) error {
	if err := that.sendMessage(conn, action, ResponsePayload{Game: dto.NewGame(game)}); err != nil {
		return err
	}

	if game.IsComputerTurn() {
		that.scheduleBotTurn(ctx, conn, game.ID)
	}

	return nil
}

// scheduleBotTurn plays the computer's move after botDelay. Only one move is
// pending per connection; the caller holds sessionMu.
func (that *Server) scheduleBotTurn(ctx context.Context, conn *connection, gameID string) {
	conn.cancelPendingBot()

	botCtx, cancel := context.WithCancel(ctx)
	conn.cancelBot = cancel

	conn.wg.Add(1)
	go that.playBotTurn(botCtx, cancel, conn, gameID)
}

func (that *Server) playBotTurn(ctx context.Context, cancel context.CancelFunc, conn *connection, gameID string) {
	defer conn.wg.Done()
	defer cancel()

	log := that.logger.With("method", "playBotTurn", "gameID", gameID)

	timer := time.NewTimer(that.botDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	conn.sessionMu.Lock()
	defer conn.sessionMu.Unlock()

	// restart or mode change won the race for the lock
	if ctx.Err() != nil {
		log.Debug("computer move cancelled")
		return
	}

	game, cell, err := that.gameUseCase.BotTurn(ctx, gameID)
	if errors.Is(err, apperror.ErrNotBotTurn) || errors.Is(err, apperror.ErrGameFinished) {
		log.Debug("computer move no longer due", "error", err)
		return
	}

	if err != nil {
		log.Error("bot failed to move", "error", err)

		if sendErr := that.sendUseCaseError(conn, actionGameBot, err); sendErr != nil {
			log.Error("failed to send bot error", "error", sendErr)
		}
		return
	}

	if err = that.sendMessage(conn, actionGameBot, ResponsePayload{Game: dto.NewGame(game), Cell: &cell}); err != nil {
		log.Error("failed to send bot move", "error", err)
	}
}

func (that *Server) handleRestart(ctx context.Context, conn *connection, msg *Message) error {
	payloadReq, ok := that.decodePayload(msg)
	if !ok || payloadReq.GameID == "" {
		return that.sendErrorResponse(conn, msg.Action, "game_id is required")
	}

	conn.cancelPendingBot()

	game, err := that.gameUseCase.Restart(ctx, payloadReq.GameID)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return that.sendGame(ctx, conn, msg.Action, game)
}

func (that *Server) handleToggleMode(ctx context.Context, conn *connection, msg *Message) error {
	payloadReq, ok := that.decodePayload(msg)
	if !ok || payloadReq.GameID == "" {
		return that.sendErrorResponse(conn, msg.Action, "game_id is required")
	}

	conn.cancelPendingBot()

	game, err := that.gameUseCase.ToggleMode(ctx, payloadReq.GameID)
	if err != nil {
		return that.sendUseCaseError(conn, msg.Action, err)
	}

	return that.sendGame(ctx, conn, msg.Action, game)
}

func (that *Server) decodePayload(msg *Message) (RequestPayload, bool) {
	var payloadReq RequestPayload
	if len(msg.Payload) == 0 {
		return payloadReq, true
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return payloadReq, false
	}

	return payloadReq, true
}

// sendUseCaseError reports caller mistakes verbatim and hides server faults.
func (that *Server) sendUseCaseError(conn *connection, action string, err error) error {
	if errors.Is(err, apperror.ErrGameNotFound) || usecase.IsUserError(err) {
		return that.sendErrorResponse(conn, action, err.Error())
	}

	return that.sendErrorResponse(conn, action, "internal server error")
}
