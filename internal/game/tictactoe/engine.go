package tictactoe

import (
	"github.com/peerplay/gamehub-backend/internal/apperror"
	"github.com/peerplay/gamehub-backend/internal/entity"
)

// WinLines are the 8 three-in-a-row lines: 3 rows, 3 columns, 2 diagonals.
var WinLines = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Apply validates and folds one move into the session. Checks run in a fixed
// order - finished, turn ownership, cell occupancy - before any mutation.
// On success the session holds either the next turn or a write-once winner.
func Apply(session *entity.Session, userID string, cell int) error {
	if session.GameType != entity.TypeTicTacToe || session.TTT == nil {
		return apperror.ErrWrongGameType
	}

	if session.HasWinner() {
		return apperror.ErrGameFinished
	}

	if session.Turn != userID {
		return apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= len(session.TTT) {
		return apperror.ErrInvalidCell
	}

	if session.TTT[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	seat, seated := session.Seat(userID)
	if !seated {
		return apperror.ErrNotInRoom
	}

	session.TTT[cell] = entity.MarkForSeat(seat)

	switch {
	case hasWin(session.TTT):
		session.Winner = userID
		session.Turn = ""
	case session.TTT.IsFull():
		session.Winner = entity.WinnerDraw
		session.Turn = ""
	default:
		session.Turn = session.Opponent(userID)
	}

	return nil
}

func hasWin(board *entity.TicTacToeBoard) bool {
	for _, line := range WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return true
		}
	}

	return false
}
