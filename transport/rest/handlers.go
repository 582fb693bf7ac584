package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/dto"
)

type gameUseCase interface {
	CreateGame(ctx context.Context, mode entity.Mode) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	BotTurn(ctx context.Context, id string) (*entity.Game, int, error)
	Restart(ctx context.Context, id string) (*entity.Game, error)
	ToggleMode(ctx context.Context, id string) (*entity.Game, error)
	LegalMoves(ctx context.Context, id string) ([]int, error)
	DeleteGame(ctx context.Context, id string) error
	Analyze(board entity.Board, player entity.Mark) (minimax.Analysis, error)
}

type GameHandler interface {
	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)
	LegalMoves(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	Restart(w http.ResponseWriter, r *http.Request)
	ToggleMode(w http.ResponseWriter, r *http.Request)
	Analyze(w http.ResponseWriter, r *http.Request)
}

type gameHandler struct {
	logger *slog.Logger

	gameUseCase gameUseCase
}

type createGameRequest struct {
	Mode entity.Mode `json:"mode"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type analyzeRequest struct {
	Board  string `json:"board"`
	Player string `json:"player"`
}

type gameResponse struct {
	Game *dto.Game `json:"game"`
	// BotCell is set when the computer moved in the same request.
	BotCell *int `json:"bot_cell,omitempty"`
	// BotError is set when the computer was due but failed to move. Game then
	// shows the session as the caller left it.
	BotError string `json:"bot_error,omitempty"`
}

type movesResponse struct {
	Moves []int `json:"moves"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewGameHandler(logger *slog.Logger, gameUseCase gameUseCase) GameHandler {
	return &gameHandler{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

func (that *gameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	req := createGameRequest{Mode: entity.ModeComputer}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
			return
		}
	}

	game, err := that.gameUseCase.CreateGame(r.Context(), req.Mode)
	if err != nil {
		that.writeError(w, "CreateGame", err)
		return
	}

	writeJSON(w, http.StatusCreated, that.withBotReply(r.Context(), game))
}

func (that *gameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	writeJSON(w, http.StatusOK, gameResponse{Game: dto.NewGame(game)})
}

func (that *gameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "DeleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandler) LegalMoves(w http.ResponseWriter, r *http.Request) {
	moves, err := that.gameUseCase.LegalMoves(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "LegalMoves", err)
		return
	}

	writeJSON(w, http.StatusOK, movesResponse{Moves: moves})
}

// MakeTurn applies the human move and, in computer mode, the computer's
// reply. The reply is not delayed here; pacing belongs to the client.
// The human move stays applied even when the reply fails.
func (that *gameHandler) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell is required"})
		return
	}

	game, err := that.gameUseCase.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, "MakeTurn", err)
		return
	}

	writeJSON(w, http.StatusOK, that.withBotReply(r.Context(), game))
}

func (that *gameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.Restart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "Restart", err)
		return
	}

	writeJSON(w, http.StatusOK, that.withBotReply(r.Context(), game))
}

func (that *gameHandler) ToggleMode(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.ToggleMode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "ToggleMode", err)
		return
	}

	writeJSON(w, http.StatusOK, that.withBotReply(r.Context(), game))
}

func (that *gameHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	board, err := entity.ParseBoard(req.Board)
	if err != nil {
		that.writeError(w, "Analyze", err)
		return
	}

	player, err := entity.ParseMark(req.Player)
	if err != nil {
		that.writeError(w, "Analyze", err)
		return
	}

	analysis, err := that.gameUseCase.Analyze(board, player)
	if err != nil {
		that.writeError(w, "Analyze", err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

// withBotReply lets the computer move when it is due, which happens after a
// human move, or at once when the computer plays X.
func (that *gameHandler) withBotReply(ctx context.Context, game *entity.Game) gameResponse {
	resp := gameResponse{Game: dto.NewGame(game)}
	if !game.IsComputerTurn() {
		return resp
	}

	botGame, cell, err := that.gameUseCase.BotTurn(ctx, game.ID)
	if err != nil {
		that.logger.Error("computer failed to move", "method", "withBotReply", "gameID", game.ID, "error", err)
		resp.BotError = "computer failed to move"
		return resp
	}

	resp.Game = dto.NewGame(botGame)
	resp.BotCell = &cell

	return resp
}

func (that *gameHandler) writeError(w http.ResponseWriter, method string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrNotYourTurn), errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	case usecase.IsUserError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
