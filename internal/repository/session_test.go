package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peerplay/gamehub-backend/internal/entity"
	"github.com/peerplay/gamehub-backend/testing/suite"
)

func TestSessionRepository_Create(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	// Given: a fresh session with seat 0 claimed
	session := entity.NewSession("room1", entity.TypeTicTacToe, "alice")

	// When: Create is called
	err := sessionRepo.Create(ctx, session)

	// Then: no error should be returned, and the record is readable back
	require.NoError(t, err)

	retrieved, err := sessionRepo.GetByRoom(ctx, "room1")
	require.NoError(t, err)
	assert.Equal(t, session.Players, retrieved.Players)
	assert.Equal(t, entity.TypeTicTacToe, retrieved.GameType)
	require.NotNil(t, retrieved.TTT)
}

func TestSessionRepository_GetByRoom(t *testing.T) {
	t.Run("GetByRoom_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// Given: a stored session with some play state
		session := entity.NewSession("room1", entity.TypeConnectFour, "alice")
		session.AddOpponent("bob")
		session.C4[5][3] = "alice"
		require.NoError(t, sessionRepo.Create(ctx, session))

		// When: GetByRoom is called with the existing room
		retrieved, err := sessionRepo.GetByRoom(ctx, "room1")

		// Then: the retrieved session matches what was stored
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, retrieved.Players)
		assert.Equal(t, "alice", retrieved.Turn)
		require.NotNil(t, retrieved.C4)
		assert.Equal(t, "alice", retrieved.C4[5][3])
	})

	t.Run("GetByRoom_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// When: GetByRoom is called with a room that was never created
		retrieved, err := sessionRepo.GetByRoom(ctx, "ghost")

		// Then: an ErrSessionNotFound error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrSessionNotFound, err)
		assert.Nil(t, retrieved)
	})
}

func TestSessionRepository_Update(t *testing.T) {
	t.Run("Update_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		session := entity.NewSession("room1", entity.TypeTicTacToe, "alice")
		require.NoError(t, sessionRepo.Create(ctx, session))

		// When: Update seats the opponent
		updated, err := sessionRepo.Update(ctx, "room1", func(session *entity.Session) error {
			session.AddOpponent("bob")
			return nil
		})

		// Then: the returned and the stored session both hold the change
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, updated.Players)

		retrieved, err := sessionRepo.GetByRoom(ctx, "room1")
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, retrieved.Players)
		assert.Equal(t, "alice", retrieved.Turn)
	})

	t.Run("Update_MutatorError_LeavesRecordUntouched", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		session := entity.NewSession("room1", entity.TypeTicTacToe, "alice")
		require.NoError(t, sessionRepo.Create(ctx, session))

		// When: the mutator rejects the change
		_, err := sessionRepo.Update(ctx, "room1", func(session *entity.Session) error {
			session.AddOpponent("bob")
			return assert.AnError
		})

		// Then: the error propagates and nothing was written
		require.ErrorIs(t, err, assert.AnError)

		retrieved, err := sessionRepo.GetByRoom(ctx, "room1")
		require.NoError(t, err)
		assert.Equal(t, []string{"alice"}, retrieved.Players)
	})

	t.Run("Update_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// When: Update is called for a room that does not exist
		_, err := sessionRepo.Update(ctx, "ghost", func(session *entity.Session) error {
			return nil
		})

		// Then: an ErrSessionNotFound error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrSessionNotFound, err)
	})
}

func TestSessionRepository_DeleteByRoom(t *testing.T) {
	ctx, st := suite.New(t)

	sessionRepo := NewSessionRepository(st.Storage)

	session := entity.NewSession("room1", entity.TypeRPS, "alice")
	require.NoError(t, sessionRepo.Create(ctx, session))

	// When: DeleteByRoom is called
	err := sessionRepo.DeleteByRoom(ctx, "room1")

	// Then: the record is gone; deleting again is not an error
	require.NoError(t, err)

	_, err = sessionRepo.GetByRoom(ctx, "room1")
	assert.Equal(t, ErrSessionNotFound, err)

	require.NoError(t, sessionRepo.DeleteByRoom(ctx, "room1"))
}
