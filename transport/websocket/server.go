package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	actionGameNew     = "game:new"
	actionGameGet     = "game:get"
	actionGameTurn    = "game:turn"
	actionGameBot     = "game:bot"
	actionGameRestart = "game:restart"
	actionGameMode    = "game:mode"

	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

type gameUseCase interface {
	CreateGame(ctx context.Context, mode entity.Mode) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	BotTurn(ctx context.Context, id string) (*entity.Game, int, error)
	Restart(ctx context.Context, id string) (*entity.Game, error)
	ToggleMode(ctx context.Context, id string) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, conn *connection, msg *Message) error

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase

	// botDelay is how long the computer "thinks" before its move is sent.
	botDelay time.Duration

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

// connection serialises writes; gorilla allows a single concurrent writer.
type connection struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	wg      sync.WaitGroup

	// sessionMu orders handlers and the delayed computer move, so a game is
	// never read and saved by both at once. It also guards cancelBot.
	sessionMu sync.Mutex
	cancelBot context.CancelFunc
}

// cancelPendingBot drops a computer move that has not been played yet.
// The caller holds sessionMu.
func (that *connection) cancelPendingBot() {
	if that.cancelBot != nil {
		that.cancelBot()
		that.cancelBot = nil
	}
}

func New(logger *slog.Logger, gameUseCase gameUseCase, botDelay time.Duration) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		botDelay:    botDelay,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameGet] = server.handleGetGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameRestart] = server.handleRestart
	server.handlers[actionGameMode] = server.handleToggleMode

	return server
}

// Handler exposes the websocket endpoint at /ws.
func (that *Server) Handler(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return r
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint:contextcheck // parent is already cancelled
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves messages until the client leaves.
func (that *Server) upgradeToWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	wsConn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	conn := &connection{conn: wsConn}

	defer func() {
		cancel()
		conn.wg.Wait()

		if err = wsConn.Close(); err != nil {
			log.Debug("failed to close connection", "error", err)
		}
	}()

	log.Info("client connected", "remote", r.RemoteAddr)

	for {
		_, data, readErr := wsConn.ReadMessage()
		if readErr != nil {
			if websocket.IsUnexpectedCloseError(readErr, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("failed to read message", "error", readErr)
			}

			log.Info("client disconnected", "remote", r.RemoteAddr)
			return
		}

		if err = that.handleMessage(ctx, conn, data); err != nil {
			log.Error("failed to handle message", "error", err)
			return
		}
	}
}

func (that *Server) handleMessage(ctx context.Context, conn *connection, data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return that.sendErrorResponse(conn, "", "invalid message")
	}

	handler, ok := that.handlers[msg.Action]
	if !ok {
		return that.sendErrorResponse(conn, msg.Action, "unknown action")
	}

	conn.sessionMu.Lock()
	defer conn.sessionMu.Unlock()

	return handler(ctx, conn, &msg)
}
