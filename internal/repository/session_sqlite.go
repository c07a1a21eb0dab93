package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/peerplay/gamehub-backend/internal/entity"
)

// sqlSession stores one JSON document per room in a sessions table. It
// satisfies the same SessionRepository contract as the Redis store and is
// selected with storage.driver "sqlite".
type sqlSession struct {
	db *sql.DB
}

func NewSQLiteSessionRepository(db *sql.DB) SessionRepository {
	return &sqlSession{
		db: db,
	}
}

func (that *sqlSession) GetByRoom(ctx context.Context, roomID string) (*entity.Session, error) {
	var data string

	err := that.db.QueryRowContext(ctx, `SELECT data FROM sessions WHERE room_id = ?`, roomID).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by room: %w", err)
	}

	var session entity.Session
	if err = json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (that *sqlSession) Create(ctx context.Context, session *entity.Session) error {
	return that.set(ctx, session)
}

func (that *sqlSession) Update(ctx context.Context, roomID string, mutate func(*entity.Session) error) (*entity.Session, error) {
	session, err := that.GetByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if err = mutate(session); err != nil {
		return nil, err
	}

	if err = that.set(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (that *sqlSession) DeleteByRoom(ctx context.Context, roomID string) error {
	if _, err := that.db.ExecContext(ctx, `DELETE FROM sessions WHERE room_id = ?`, roomID); err != nil {
		return fmt.Errorf("failed to delete session by room: %w", err)
	}

	return nil
}

func (that *sqlSession) set(ctx context.Context, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	query := `INSERT INTO sessions (room_id, data) VALUES (?, ?)
		ON CONFLICT(room_id) DO UPDATE SET data = excluded.data`

	if _, err = that.db.ExecContext(ctx, query, session.RoomID, string(sessionJSON)); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}
