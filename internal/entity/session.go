package entity

type GameType string

const (
	TypeTicTacToe   GameType = "tictactoe"
	TypeConnectFour GameType = "connect4"
	TypeRPS         GameType = "rps"
	TypeChess       GameType = "chess"
)

const (
	MarkX     = "X"
	MarkO     = "O"
	EmptyCell = ""

	// WinnerDraw marks a drawn session; Winner otherwise holds a player id.
	WinnerDraw = "draw"

	MaxSeats = 2
)

const (
	ConnectFourRows = 6
	ConnectFourCols = 7
)

type TicTacToeBoard [9]string

// ConnectFourBoard cells hold the owning player's id, row 0 at the top.
type ConnectFourBoard [ConnectFourRows][ConnectFourCols]string

// ChessBoard cells hold two-letter piece codes ("wK", "bP", ...), empty
// string for vacant squares; row 0 is black's back rank.
type ChessBoard [8][8]string

// Square is a board coordinate serialized as [row, col].
type Square [2]int

// ChessState is the last relayed chess position. It is persisted only when
// the server runs in validating mode; in trusting-relay mode the session
// carries no positional state for chess at all.
type ChessState struct {
	Board     ChessBoard `json:"board"`
	TurnColor string     `json:"turnColor"`
	EnPassant *Square    `json:"enPassantTarget,omitempty"`
}

// Session is the canonical per-room game record. The board is a tagged
// variant: exactly one of the board pointers is set, chosen by GameType
// (none for rps, none for chess in trusting-relay mode).
type Session struct {
	RoomID   string   `json:"roomId"`
	GameType GameType `json:"gameType"`
	Players  []string `json:"players"`
	Turn     string   `json:"turn,omitempty"`
	Winner   string   `json:"winner,omitempty"`

	// Rock-paper-scissors only. Seat-indexed pairs: the seat count is
	// bounded at two, so no map is needed.
	Round      int       `json:"round,omitempty"`
	RoundMoves [2]string `json:"roundMoves"`
	Scores     [2]int    `json:"scores"`

	TTT   *TicTacToeBoard   `json:"board,omitempty"`
	C4    *ConnectFourBoard `json:"grid,omitempty"`
	Chess *ChessState       `json:"chess,omitempty"`
}

// NewSession creates a fresh session with seat 0 claimed by userID and an
// empty board shaped for the game type.
func NewSession(roomID string, gameType GameType, userID string) *Session {
	session := &Session{
		RoomID:   roomID,
		GameType: gameType,
		Players:  []string{userID},
	}

	switch gameType {
	case TypeTicTacToe:
		session.TTT = &TicTacToeBoard{}
	case TypeConnectFour:
		session.C4 = &ConnectFourBoard{}
	case TypeRPS, TypeChess:
		// no positional board on the server
	}

	return session
}

// Seat returns the player's seat index (0 or 1).
func (that *Session) Seat(userID string) (int, bool) {
	for i, id := range that.Players {
		if id == userID {
			return i, true
		}
	}

	return 0, false
}

// Opponent returns the other seat's player id, or "" if the room is not full.
func (that *Session) Opponent(userID string) string {
	for _, id := range that.Players {
		if id != userID {
			return id
		}
	}

	return ""
}

func (that *Session) IsFull() bool {
	return len(that.Players) >= MaxSeats
}

func (that *Session) HasWinner() bool {
	return that.Winner != ""
}

// MarkForSeat maps a seat to its fixed tic-tac-toe mark: seat 0 is X and
// moves first.
func MarkForSeat(seat int) string {
	if seat == 0 {
		return MarkX
	}

	return MarkO
}

// AddOpponent seats userID at seat 1 (idempotent) and arms the session for
// play: turn-based games hand the first move to seat 0, rock-paper-scissors
// opens round 1 with zeroed scores.
func (that *Session) AddOpponent(userID string) {
	if _, seated := that.Seat(userID); !seated {
		that.Players = append(that.Players, userID)
	}

	switch that.GameType {
	case TypeTicTacToe, TypeConnectFour, TypeChess:
		that.Turn = that.Players[0]
	case TypeRPS:
		that.Round = 1
		that.RoundMoves = [2]string{}
		that.Scores = [2]int{}
	}
}

func (that *TicTacToeBoard) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that *ConnectFourBoard) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}
