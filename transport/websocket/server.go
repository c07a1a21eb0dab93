package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/peerplay/gamehub-backend/internal/entity"
	"github.com/peerplay/gamehub-backend/internal/usecase"
)

type coordinator interface {
	Join(ctx context.Context, roomID, userID string, gameType entity.GameType) error
	Reset(ctx context.Context, roomID, userID string, gameType entity.GameType) error

	PlaceMark(ctx context.Context, roomID, userID string, cell int) error
	DropDisc(ctx context.Context, roomID, userID string, column int) error
	ThrowHand(ctx context.Context, roomID, userID, move string) error

	RelayChessMove(ctx context.Context, roomID, userID string, relay usecase.ChessRelay) error
	ReportChessWinner(ctx context.Context, roomID, userID, winner string) error
}

type Server struct {
	logger      *slog.Logger
	coordinator coordinator
	hub         *Hub
	upgrader    websocket.Upgrader

	handlers map[string]func(ctx context.Context, client *Client, message *Message) error
}

func NewServer(logger *slog.Logger, coordinator coordinator, hub *Hub) *Server {
	server := &Server{
		logger:      logger,
		coordinator: coordinator,
		hub:         hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		handlers: make(map[string]func(context.Context, *Client, *Message) error),
	}

	server.handlers[ActionJoin] = server.handleJoin
	server.handlers[ActionReset] = server.handleReset
	server.handlers[ActionTTTMove] = server.handleTTTMove
	server.handlers[ActionC4Move] = server.handleC4Move
	server.handlers[ActionRPSMove] = server.handleRPSMove
	server.handlers[ActionChessMove] = server.handleChessMove
	server.handlers[ActionChessOver] = server.handleChessOver

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection upgrades the connection and pumps messages until the
// client goes away.
func (that *Server) serveConnection(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newClient(conn)

	defer func() {
		that.hub.Drop(client)
		_ = conn.Close()
	}()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(ctx, client); err != nil {
		log.Debug("connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client. One inbound request
// runs to completion before the next is read on this connection.
func (that *Server) handleMessages(ctx context.Context, client *Client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, reqBody, err := client.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, client, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
