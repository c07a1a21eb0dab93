package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerplay/gamehub-backend/internal/apperror"
	"github.com/peerplay/gamehub-backend/internal/entity"
)

func newStartedSession() *entity.Session {
	session := entity.NewSession("room1", entity.TypeTicTacToe, "alice")
	session.AddOpponent("bob")

	return session
}

func TestApply_TurnOrder(t *testing.T) {
	t.Run("Seat 0 moves first with X", func(t *testing.T) {
		// Given: a freshly started session
		session := newStartedSession()

		// When: seat 0 plays cell 4
		err := Apply(session, "alice", 4)

		// Then: the mark lands and the turn passes to seat 1
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, session.TTT[4])
		assert.Equal(t, "bob", session.Turn)
	})

	t.Run("Rejects a move out of turn", func(t *testing.T) {
		// Given: a session where it is seat 0's turn
		session := newStartedSession()

		// When: seat 1 tries to move
		err := Apply(session, "bob", 0)

		// Then: the move is rejected and the board is untouched
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.EmptyCell, session.TTT[0])
		assert.Equal(t, "alice", session.Turn)
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		// Given: cell 0 already taken by seat 0
		session := newStartedSession()
		require.NoError(t, Apply(session, "alice", 0))

		// When: seat 1 targets the same cell
		err := Apply(session, "bob", 0)

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, entity.MarkX, session.TTT[0])
	})

	t.Run("Rejects an out-of-range cell", func(t *testing.T) {
		session := newStartedSession()

		require.ErrorIs(t, Apply(session, "alice", 9), apperror.ErrInvalidCell)
		require.ErrorIs(t, Apply(session, "alice", -1), apperror.ErrInvalidCell)
	})
}

func TestApply_WinAndDraw(t *testing.T) {
	t.Run("Top row win for seat 0", func(t *testing.T) {
		// Given: alice plays 0,1,2 while bob plays non-blocking cells
		session := newStartedSession()

		require.NoError(t, Apply(session, "alice", 0))
		require.NoError(t, Apply(session, "bob", 3))
		require.NoError(t, Apply(session, "alice", 1))
		require.NoError(t, Apply(session, "bob", 4))

		// When: alice completes the line
		require.NoError(t, Apply(session, "alice", 2))

		// Then: alice wins, the turn clears, cells 0-2 hold her mark
		assert.Equal(t, "alice", session.Winner)
		assert.Empty(t, session.Turn)
		for _, cell := range []int{0, 1, 2} {
			assert.Equal(t, entity.MarkX, session.TTT[cell])
		}
	})

	t.Run("Finished game ignores further moves", func(t *testing.T) {
		// Given: a finished game
		session := newStartedSession()
		require.NoError(t, Apply(session, "alice", 0))
		require.NoError(t, Apply(session, "bob", 3))
		require.NoError(t, Apply(session, "alice", 1))
		require.NoError(t, Apply(session, "bob", 4))
		require.NoError(t, Apply(session, "alice", 2))

		boardBefore := *session.TTT

		// When: either seat tries to move again
		err := Apply(session, "bob", 5)

		// Then: winner and board are unchanged
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, "alice", session.Winner)
		assert.Equal(t, boardBefore, *session.TTT)
	})

	t.Run("Full board with no line is a draw", func(t *testing.T) {
		// Given: a sequence filling all nine cells without three in a row
		session := newStartedSession()

		moves := []struct {
			player string
			cell   int
		}{
			{"alice", 0}, {"bob", 4}, {"alice", 8}, {"bob", 1},
			{"alice", 7}, {"bob", 6}, {"alice", 2}, {"bob", 5},
			{"alice", 3},
		}

		// When: the sequence is played out
		for _, move := range moves {
			require.NoError(t, Apply(session, move.player, move.cell))
		}

		// Then: the session records a draw
		assert.Equal(t, entity.WinnerDraw, session.Winner)
		assert.Empty(t, session.Turn)
	})

	t.Run("Diagonal win", func(t *testing.T) {
		session := newStartedSession()

		require.NoError(t, Apply(session, "alice", 0))
		require.NoError(t, Apply(session, "bob", 1))
		require.NoError(t, Apply(session, "alice", 4))
		require.NoError(t, Apply(session, "bob", 2))
		require.NoError(t, Apply(session, "alice", 8))

		assert.Equal(t, "alice", session.Winner)
	})
}

func TestApply_WrongGameType(t *testing.T) {
	// Given: a connect-four session
	session := entity.NewSession("room1", entity.TypeConnectFour, "alice")
	session.AddOpponent("bob")

	// When: a tic-tac-toe move arrives for it
	err := Apply(session, "alice", 0)

	// Then: the move is rejected
	require.ErrorIs(t, err, apperror.ErrWrongGameType)
}
