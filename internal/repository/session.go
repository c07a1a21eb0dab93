package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/peerplay/gamehub-backend/internal/entity"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository is the durable per-room store contract: fetch by room,
// create with initial state, update with a mutator, delete by room. The
// mutator form assumes no concurrent mutator runs against the same room;
// the coordinator's per-room lock enforces that.
type SessionRepository interface {
	GetByRoom(ctx context.Context, roomID string) (*entity.Session, error)
	Create(ctx context.Context, session *entity.Session) error
	Update(ctx context.Context, roomID string, mutate func(*entity.Session) error) (*entity.Session, error)
	DeleteByRoom(ctx context.Context, roomID string) error
}

type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

func sessionKey(roomID string) string {
	return "session:" + roomID
}

func (that *dbSession) GetByRoom(ctx context.Context, roomID string) (*entity.Session, error) {
	response, err := that.client.Get(ctx, sessionKey(roomID)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by room: %w", err)
	}

	var session entity.Session
	if err = json.Unmarshal([]byte(response), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (that *dbSession) Create(ctx context.Context, session *entity.Session) error {
	return that.set(ctx, session)
}

func (that *dbSession) Update(ctx context.Context, roomID string, mutate func(*entity.Session) error) (*entity.Session, error) {
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

func (that *dbSession) DeleteByRoom(ctx context.Context, roomID string) error {
	if err := that.client.Del(ctx, sessionKey(roomID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session by room: %w", err)
	}

	return nil
}

func (that *dbSession) set(ctx context.Context, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	if err = that.client.Set(ctx, sessionKey(session.RoomID), sessionJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}
