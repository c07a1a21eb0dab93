package chess

import "github.com/peerplay/gamehub-backend/internal/entity"

// Piece codes are two-letter strings, color then type: "wK", "bP", ...
// matching the wire format the clients relay.
const (
	White = "w"
	Black = "b"
)

var backRank = [8]string{"R", "N", "B", "Q", "K", "B", "N", "R"}

// InitialBoard returns the standard starting position, black on rows 0-1.
func InitialBoard() entity.ChessBoard {
	var board entity.ChessBoard

	for c, piece := range backRank {
		board[0][c] = Black + piece
		board[7][c] = White + piece
	}

	for c := 0; c < 8; c++ {
		board[1][c] = Black + "P"
		board[7-1][c] = White + "P"
	}

	return board
}

func Opponent(color string) string {
	if color == White {
		return Black
	}

	return White
}

func colorOf(piece string) string {
	if piece == "" {
		return ""
	}

	return piece[:1]
}

func typeOf(piece string) string {
	if piece == "" {
		return ""
	}

	return piece[1:]
}

func inBounds(r, c int) bool {
	return r >= 0 && r < 8 && c >= 0 && c < 8
}

// Apply executes a move on a copy of the board and returns the result. It
// carries the side effects move generation promises: en-passant capture
// removes the passed pawn, castling hops the rook, and a pawn reaching the
// far rank promotes to a queen unconditionally.
func Apply(board entity.ChessBoard, from, to entity.Square) entity.ChessBoard {
	piece := board[from[0]][from[1]]
	color := colorOf(piece)

	// En passant: a pawn moving diagonally onto an empty square captures
	// the pawn it passed.
	if typeOf(piece) == "P" && from[1] != to[1] && board[to[0]][to[1]] == "" {
		board[from[0]][to[1]] = ""
	}

	board[to[0]][to[1]] = piece
	board[from[0]][from[1]] = ""

	// Promotion is always to the queen; no choice is offered.
	if typeOf(piece) == "P" && (to[0] == 0 || to[0] == 7) {
		board[to[0]][to[1]] = color + "Q"
	}

	// Castling moves the rook across the king.
	if typeOf(piece) == "K" && from[1] == 4 {
		row := from[0]
		switch to[1] {
		case 6:
			board[row][5] = color + "R"
			board[row][7] = ""
		case 2:
			board[row][3] = color + "R"
			board[row][0] = ""
		}
	}

	return board
}
