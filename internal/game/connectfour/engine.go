package connectfour

import (
	"github.com/peerplay/gamehub-backend/internal/apperror"
	"github.com/peerplay/gamehub-backend/internal/entity"
)

// axes for the win scan: vertical, horizontal and the two diagonals.
var axes = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// Apply validates and folds one drop into the session. The disc settles on
// the lowest empty row of the chosen column; the win scan walks the four
// axes outward from that cell only, never the whole grid.
func Apply(session *entity.Session, userID string, column int) error {
	if session.GameType != entity.TypeConnectFour || session.C4 == nil {
		return apperror.ErrWrongGameType
	}

	if session.HasWinner() {
		return apperror.ErrGameFinished
	}

	if session.Turn != userID {
		return apperror.ErrNotYourTurn
	}

	if column < 0 || column >= entity.ConnectFourCols {
		return apperror.ErrInvalidColumn
	}

	row := -1
	for r := entity.ConnectFourRows - 1; r >= 0; r-- {
		if session.C4[r][column] == entity.EmptyCell {
			row = r
			break
		}
	}

	if row == -1 {
		return apperror.ErrColumnFull
	}

	session.C4[row][column] = userID

	switch {
	case winsAt(session.C4, row, column, userID):
		session.Winner = userID
		session.Turn = ""
	case session.C4.IsFull():
		session.Winner = entity.WinnerDraw
		session.Turn = ""
	default:
		session.Turn = session.Opponent(userID)
	}

	return nil
}

// winsAt counts contiguous same-owner cells extending in both directions
// along each axis from the just-placed cell; four or more wins.
func winsAt(board *entity.ConnectFourBoard, row, column int, userID string) bool {
	for _, axis := range axes {
		count := 1

		for _, sign := range [2]int{1, -1} {
			for step := 1; step < 4; step++ {
				r := row + axis[0]*step*sign
				c := column + axis[1]*step*sign

				if r < 0 || r >= entity.ConnectFourRows || c < 0 || c >= entity.ConnectFourCols {
					break
				}

				if board[r][c] != userID {
					break
				}

				count++
			}
		}

		if count >= 4 {
			return true
		}
	}

	return false
}
