package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerplay/gamehub-backend/internal/entity"
	"github.com/peerplay/gamehub-backend/internal/usecase"
)

// recordedCall captures one coordinator invocation.
type recordedCall struct {
	Method   string
	RoomID   string
	UserID   string
	GameType entity.GameType
	Arg      any
}

type fakeCoordinator struct {
	calls []recordedCall
}

func (that *fakeCoordinator) Join(_ context.Context, roomID, userID string, gameType entity.GameType) error {
	that.calls = append(that.calls, recordedCall{Method: "Join", RoomID: roomID, UserID: userID, GameType: gameType})
	return nil
}

func (that *fakeCoordinator) Reset(_ context.Context, roomID, userID string, gameType entity.GameType) error {
	that.calls = append(that.calls, recordedCall{Method: "Reset", RoomID: roomID, UserID: userID, GameType: gameType})
	return nil
}

func (that *fakeCoordinator) PlaceMark(_ context.Context, roomID, userID string, cell int) error {
	that.calls = append(that.calls, recordedCall{Method: "PlaceMark", RoomID: roomID, UserID: userID, Arg: cell})
	return nil
}

func (that *fakeCoordinator) DropDisc(_ context.Context, roomID, userID string, column int) error {
	that.calls = append(that.calls, recordedCall{Method: "DropDisc", RoomID: roomID, UserID: userID, Arg: column})
	return nil
}

func (that *fakeCoordinator) ThrowHand(_ context.Context, roomID, userID, move string) error {
	that.calls = append(that.calls, recordedCall{Method: "ThrowHand", RoomID: roomID, UserID: userID, Arg: move})
	return nil
}

func (that *fakeCoordinator) RelayChessMove(_ context.Context, roomID, userID string, relay usecase.ChessRelay) error {
	that.calls = append(that.calls, recordedCall{Method: "RelayChessMove", RoomID: roomID, UserID: userID, Arg: relay})
	return nil
}

func (that *fakeCoordinator) ReportChessWinner(_ context.Context, roomID, userID, winner string) error {
	that.calls = append(that.calls, recordedCall{Method: "ReportChessWinner", RoomID: roomID, UserID: userID, Arg: winner})
	return nil
}

func newTestServer(t *testing.T) (*Server, *fakeCoordinator) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	coordinator := &fakeCoordinator{}

	return NewServer(logger, coordinator, NewHub(logger)), coordinator
}

func message(t *testing.T, action string, payload any) *Message {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	return &Message{Action: action, Payload: raw}
}

func TestHandleJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults the game type to tic-tac-toe", func(t *testing.T) {
		server, coordinator := newTestServer(t)
		client := newClient(nil)

		msg := message(t, ActionJoin, map[string]string{"roomId": "room1", "userId": "alice"})

		require.NoError(t, server.handleJoin(ctx, client, msg))

		require.Len(t, coordinator.calls, 1)
		assert.Equal(t, "Join", coordinator.calls[0].Method)
		assert.Equal(t, entity.TypeTicTacToe, coordinator.calls[0].GameType)
		assert.Equal(t, "alice", client.UserID())
	})

	t.Run("Assigns a guest id to an anonymous join", func(t *testing.T) {
		server, coordinator := newTestServer(t)
		client := newClient(nil)

		msg := message(t, ActionJoin, map[string]string{"roomId": "room1", "gameType": "chess"})

		require.NoError(t, server.handleJoin(ctx, client, msg))

		require.Len(t, coordinator.calls, 1)
		assert.NotEmpty(t, coordinator.calls[0].UserID)
		assert.Equal(t, coordinator.calls[0].UserID, client.UserID())
		assert.Equal(t, entity.TypeChess, coordinator.calls[0].GameType)
	})
}

func TestHandleMoves(t *testing.T) {
	ctx := context.Background()

	t.Run("Routes each move action to its coordinator operation", func(t *testing.T) {
		server, coordinator := newTestServer(t)
		client := newClient(nil)

		require.NoError(t, server.handleTTTMove(ctx, client, message(t, ActionTTTMove, map[string]any{
			"roomId": "room1", "userId": "alice", "cellIndex": 4,
		})))
		require.NoError(t, server.handleC4Move(ctx, client, message(t, ActionC4Move, map[string]any{
			"roomId": "room1", "userId": "alice", "column": 3,
		})))
		require.NoError(t, server.handleRPSMove(ctx, client, message(t, ActionRPSMove, map[string]any{
			"roomId": "room1", "userId": "alice", "move": "rock",
		})))

		require.Len(t, coordinator.calls, 3)
		assert.Equal(t, "PlaceMark", coordinator.calls[0].Method)
		assert.Equal(t, 4, coordinator.calls[0].Arg)
		assert.Equal(t, "DropDisc", coordinator.calls[1].Method)
		assert.Equal(t, 3, coordinator.calls[1].Arg)
		assert.Equal(t, "ThrowHand", coordinator.calls[2].Method)
		assert.Equal(t, "rock", coordinator.calls[2].Arg)
	})

	t.Run("Malformed payload never reaches the coordinator", func(t *testing.T) {
		server, coordinator := newTestServer(t)
		client := newClient(nil)

		msg := &Message{Action: ActionTTTMove, Payload: json.RawMessage(`{"cellIndex": "four"}`)}

		require.Error(t, server.handleTTTMove(ctx, client, msg))
		assert.Empty(t, coordinator.calls)
	})
}

func TestHandleChess(t *testing.T) {
	ctx := context.Background()

	t.Run("Relay uses the identity bound at join time", func(t *testing.T) {
		// Given: a connection that joined as bob
		server, coordinator := newTestServer(t)
		client := newClient(nil)
		require.NoError(t, server.handleJoin(ctx, client, message(t, ActionJoin, map[string]string{
			"roomId": "room1", "userId": "bob", "gameType": "chess",
		})))

		// When: a chess move arrives without a user id
		msg := message(t, ActionChessMove, map[string]any{"roomId": "room1", "turnColor": "b"})
		require.NoError(t, server.handleChessMove(ctx, client, msg))

		// Then: the relay is attributed to bob
		relay := coordinator.calls[len(coordinator.calls)-1]
		assert.Equal(t, "RelayChessMove", relay.Method)
		assert.Equal(t, "bob", relay.UserID)
	})

	t.Run("Relay from an unbound connection is refused", func(t *testing.T) {
		server, coordinator := newTestServer(t)
		client := newClient(nil)

		msg := message(t, ActionChessMove, map[string]any{"roomId": "room1"})

		require.Error(t, server.handleChessMove(ctx, client, msg))
		assert.Empty(t, coordinator.calls)
	})

	t.Run("Reported winner is forwarded with the bound identity", func(t *testing.T) {
		server, coordinator := newTestServer(t)
		client := newClient(nil)
		require.NoError(t, server.handleJoin(ctx, client, message(t, ActionJoin, map[string]string{
			"roomId": "room1", "userId": "alice", "gameType": "chess",
		})))

		msg := message(t, ActionChessOver, map[string]string{"roomId": "room1", "winner": "alice"})
		require.NoError(t, server.handleChessOver(ctx, client, msg))

		report := coordinator.calls[len(coordinator.calls)-1]
		assert.Equal(t, "ReportChessWinner", report.Method)
		assert.Equal(t, "alice", report.UserID)
		assert.Equal(t, "alice", report.Arg)
	})
}
