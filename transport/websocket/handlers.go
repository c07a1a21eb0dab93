package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/peerplay/gamehub-backend/internal/entity"
)

func (that *Server) handleJoin(ctx context.Context, client *Client, msg *Message) error {
	var req joinRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if req.GameType == "" {
		req.GameType = entity.TypeTicTacToe
	}

	// Identity normally comes from the auth subsystem; a bare connection
	// gets a throwaway guest id so it can still pair.
	if req.UserID == "" {
		req.UserID = uuid.NewString()
	}

	that.hub.Bind(client, req.UserID)
	that.hub.JoinRoom(client, req.RoomID)

	return that.coordinator.Join(ctx, req.RoomID, req.UserID, req.GameType)
}

func (that *Server) handleReset(ctx context.Context, client *Client, msg *Message) error {
	var req joinRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if req.GameType == "" {
		req.GameType = entity.TypeTicTacToe
	}

	if req.UserID == "" {
		req.UserID = client.UserID()
	}

	that.hub.Bind(client, req.UserID)
	that.hub.JoinRoom(client, req.RoomID)

	return that.coordinator.Reset(ctx, req.RoomID, req.UserID, req.GameType)
}

func (that *Server) handleTTTMove(ctx context.Context, client *Client, msg *Message) error {
	var req tttMoveRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.hub.Bind(client, req.UserID)

	return that.coordinator.PlaceMark(ctx, req.RoomID, req.UserID, req.CellIndex)
}

func (that *Server) handleC4Move(ctx context.Context, client *Client, msg *Message) error {
	var req c4MoveRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.hub.Bind(client, req.UserID)

	return that.coordinator.DropDisc(ctx, req.RoomID, req.UserID, req.Column)
}

func (that *Server) handleRPSMove(ctx context.Context, client *Client, msg *Message) error {
	var req rpsMoveRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	that.hub.Bind(client, req.UserID)

	return that.coordinator.ThrowHand(ctx, req.RoomID, req.UserID, req.Move)
}

// handleChessMove carries no user id on the wire; the sender is whoever the
// connection bound at join time.
func (that *Server) handleChessMove(ctx context.Context, client *Client, msg *Message) error {
	var req chessMoveRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	userID := client.UserID()
	if userID == "" {
		return fmt.Errorf("chess move from unbound connection")
	}

	return that.coordinator.RelayChessMove(ctx, req.RoomID, userID, req.ChessRelay)
}

func (that *Server) handleChessOver(ctx context.Context, client *Client, msg *Message) error {
	var req chessOverRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	userID := client.UserID()
	if userID == "" {
		return fmt.Errorf("chess result from unbound connection")
	}

	return that.coordinator.ReportChessWinner(ctx, req.RoomID, userID, req.Winner)
}
