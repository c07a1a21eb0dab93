package usecase

import "github.com/peerplay/gamehub-backend/internal/entity"

// Outbound event names. These are the transport-agnostic message contracts;
// the WebSocket layer forwards them verbatim as the envelope action.
const (
	EventWaiting     = "waiting"
	EventStarted     = "started"
	EventBoard       = "board.updated"
	EventGameOver    = "game.over"
	EventRoundResult = "round.result"
	EventChessMove   = "move.chess"
	EventChessOver   = "game.over.chess"
	EventResetNotice = "reset.notice"
	EventError       = "error"
)

// Fanout delivers events to every connection joined to a room, to a single
// user's private channel, or to a room minus one participant. The WebSocket
// hub implements it.
type Fanout interface {
	ToRoom(roomID, event string, payload any)
	ToUser(userID, event string, payload any)
	ToRoomExcept(roomID, exceptUserID, event string, payload any)
}

type WaitingPayload struct {
	RoomID string `json:"roomId"`
}

type StartedPayload struct {
	RoomID   string          `json:"roomId"`
	GameType entity.GameType `json:"gameType"`
	Players  []string        `json:"players"`
	Board    any             `json:"board"`
	Turn     string          `json:"turn,omitempty"`
	Round    int             `json:"round"`
	Scores   map[string]int  `json:"scores"`
}

type BoardPayload struct {
	Board any    `json:"board"`
	Turn  string `json:"turn,omitempty"`
}

type GameOverPayload struct {
	Winner string `json:"winner"`
	Board  any    `json:"board,omitempty"`
}

type RoundResultPayload struct {
	Round  int               `json:"round"`
	Moves  map[string]string `json:"moves"`
	Winner string            `json:"winner"`
	Scores map[string]int    `json:"scores"`
}

// ChessRelay is the opaque position payload clients exchange: resulting
// board, side to move next, and the en-passant target square if any.
type ChessRelay struct {
	Board     entity.ChessBoard `json:"board"`
	TurnColor string            `json:"turnColor"`
	EnPassant *entity.Square    `json:"enPassantTarget,omitempty"`
}

type ChessOverPayload struct {
	Winner string `json:"winner"`
}

type ResetNoticePayload struct {
	RoomID string `json:"roomId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// boardOf picks the wire board for the session's game type; nil for games
// that carry no positional board on the server.
func boardOf(session *entity.Session) any {
	switch {
	case session.TTT != nil:
		return session.TTT
	case session.C4 != nil:
		return session.C4
	default:
		return nil
	}
}

func startedPayload(session *entity.Session) StartedPayload {
	round := session.Round
	if round == 0 {
		round = 1
	}

	scores := make(map[string]int, len(session.Players))
	if session.GameType == entity.TypeRPS {
		for seat, id := range session.Players {
			scores[id] = session.Scores[seat]
		}
	}

	return StartedPayload{
		RoomID:   session.RoomID,
		GameType: session.GameType,
		Players:  session.Players,
		Board:    boardOf(session),
		Turn:     session.Turn,
		Round:    round,
		Scores:   scores,
	}
}
