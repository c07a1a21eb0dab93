package rps

import (
	"github.com/peerplay/gamehub-backend/internal/apperror"
	"github.com/peerplay/gamehub-backend/internal/entity"
)

const (
	MoveRock     = "rock"
	MovePaper    = "paper"
	MoveScissors = "scissors"
)

// WinningScore ends the match: best of five, first to three round wins.
const WinningScore = 3

// beats maps each move to the move it defeats.
var beats = map[string]string{
	MoveRock:     MoveScissors,
	MoveScissors: MovePaper,
	MovePaper:    MoveRock,
}

// RoundResult describes a resolved round. Resolved is false while the round
// still waits on the second seat's move.
type RoundResult struct {
	Round    int
	Moves    [2]string
	Winner   string // player id, or entity.WinnerDraw for a tied round
	Scores   [2]int
	Resolved bool
	GameOver bool
}

// Apply records one seat's move. The round resolves the instant both seats
// hold a move: precedence decides the round winner, a decisive round bumps
// that seat's score, and the first seat at WinningScore wins the match.
// Identical moves draw the round and leave both scores unchanged.
func Apply(session *entity.Session, userID, move string) (RoundResult, error) {
	if session.GameType != entity.TypeRPS {
		return RoundResult{}, apperror.ErrWrongGameType
	}

	if session.HasWinner() {
		return RoundResult{}, apperror.ErrGameFinished
	}

	seat, seated := session.Seat(userID)
	if !seated {
		return RoundResult{}, apperror.ErrNotInRoom
	}

	if session.RoundMoves[seat] != "" {
		return RoundResult{}, apperror.ErrAlreadyCommitted
	}

	if _, ok := beats[move]; !ok {
		return RoundResult{}, apperror.ErrInvalidMove
	}

	session.RoundMoves[seat] = move

	if session.RoundMoves[0] == "" || session.RoundMoves[1] == "" {
		return RoundResult{Resolved: false}, nil
	}

	result := RoundResult{
		Round:    session.Round,
		Moves:    session.RoundMoves,
		Winner:   entity.WinnerDraw,
		Resolved: true,
	}

	if winningSeat, decisive := resolveRound(session.RoundMoves); decisive {
		session.Scores[winningSeat]++
		result.Winner = session.Players[winningSeat]
	}

	result.Scores = session.Scores

	if session.Scores[0] >= WinningScore || session.Scores[1] >= WinningScore {
		if session.Scores[0] >= WinningScore {
			session.Winner = session.Players[0]
		} else {
			session.Winner = session.Players[1]
		}

		result.GameOver = true

		return result, nil
	}

	session.Round++
	session.RoundMoves = [2]string{}

	return result, nil
}

// resolveRound returns the winning seat for a decided round; decisive is
// false when both seats threw the same move.
func resolveRound(moves [2]string) (int, bool) {
	if moves[0] == moves[1] {
		return 0, false
	}

	if beats[moves[0]] == moves[1] {
		return 0, true
	}

	return 1, true
}
