package chess

import (
	"github.com/peerplay/gamehub-backend/internal/apperror"
	"github.com/peerplay/gamehub-backend/internal/entity"
)

// ColorForSeat maps a seat to its fixed color: seat 0 plays white and moves
// first.
func ColorForSeat(seat int) string {
	if seat == 0 {
		return White
	}

	return Black
}

// Validate checks a relayed position against the previously accepted one:
// the reported board must be reachable by exactly one legal move of the
// color to move, and the reported turn and en-passant target must be
// consistent with that move. Used only in validating-authority mode; the
// trusting-relay mode never calls it.
func Validate(prev, next *entity.ChessState) error {
	mover := prev.TurnColor
	if next.TurnColor != Opponent(mover) {
		return apperror.ErrIllegalBoard
	}

	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if colorOf(prev.Board[r][c]) != mover {
				continue
			}

			from := entity.Square{r, c}
			for _, to := range LegalMoves(prev.Board, r, c, prev.EnPassant) {
				if Apply(prev.Board, from, to) != next.Board {
					continue
				}

				if squareEqual(pawnDoubleTarget(prev.Board, from, to), next.EnPassant) {
					return nil
				}
			}
		}
	}

	return apperror.ErrIllegalBoard
}

// pawnDoubleTarget returns the en-passant target a move produces: the
// pawn's landing square after a two-rank advance, nil otherwise.
func pawnDoubleTarget(board entity.ChessBoard, from, to entity.Square) *entity.Square {
	if typeOf(board[from[0]][from[1]]) != "P" {
		return nil
	}

	if from[0]-to[0] != 2 && to[0]-from[0] != 2 {
		return nil
	}

	target := to

	return &target
}

func squareEqual(a, b *entity.Square) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
