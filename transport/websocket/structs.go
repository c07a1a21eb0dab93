package websocket

import (
	"encoding/json"

	"github.com/peerplay/gamehub-backend/internal/entity"
	"github.com/peerplay/gamehub-backend/internal/usecase"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Inbound actions.
const (
	ActionJoin      = "join"
	ActionReset     = "reset"
	ActionTTTMove   = "move.tictactoe"
	ActionC4Move    = "move.connectFour"
	ActionRPSMove   = "move.rps"
	ActionChessMove = "move.chess"
	ActionChessOver = "game.over.chess"
)

type joinRequest struct {
	RoomID   string          `json:"roomId"`
	UserID   string          `json:"userId"`
	GameType entity.GameType `json:"gameType"`
}

type tttMoveRequest struct {
	RoomID    string `json:"roomId"`
	UserID    string `json:"userId"`
	CellIndex int    `json:"cellIndex"`
}

type c4MoveRequest struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
	Column int    `json:"column"`
}

type rpsMoveRequest struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
	Move   string `json:"move"`
}

type chessMoveRequest struct {
	RoomID string `json:"roomId"`
	usecase.ChessRelay
}

type chessOverRequest struct {
	RoomID string `json:"roomId"`
	Winner string `json:"winner"`
}
