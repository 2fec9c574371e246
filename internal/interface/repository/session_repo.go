package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
	"github.com/KlimZavadski/granica-bot/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisSessionRepository implements the SessionRepository interface on Redis.
// Sessions are stored as JSON, keyed by user, with a TTL so abandoned flows
// expire on their own.
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository creates a new Redis session repository
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) repository.SessionRepository {
	return &RedisSessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

// Get returns the user's session, or nil if no session exists
func (r *RedisSessionRepository) Get(ctx context.Context, userID int64) (*entity.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Save stores the session and refreshes its TTL
func (r *RedisSessionRepository) Save(ctx context.Context, session *entity.Session) error {
	session.UpdatedAt = time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(session.UserID), payload, r.ttl).Err()
}

// Delete destroys the user's session
func (r *RedisSessionRepository) Delete(ctx context.Context, userID int64) error {
	return r.client.Del(ctx, sessionKey(userID)).Err()
}
