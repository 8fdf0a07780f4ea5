package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gradepro/gradepro-web/internal/models"
)

// RedisStore keeps sessions in Redis with a TTL matching their expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// storedSession keeps the token, which models.Session hides from JSON.
type storedSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRedisStore builds a Redis-backed store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "session:", now: time.Now}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Save stores the session until it expires.
func (s *RedisStore) Save(ctx context.Context, sess models.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", sess.ID)
	}

	payload, err := json.Marshal(storedSession(sess))
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.key(sess.ID), payload, ttl).Err()
}

// Get loads a session.
func (s *RedisStore) Get(ctx context.Context, id string) (models.Session, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Session{}, ErrNotFound
		}
		return models.Session{}, err
	}

	var stored storedSession
	if err := json.Unmarshal(payload, &stored); err != nil {
		return models.Session{}, fmt.Errorf("corrupt session %s: %w", id, err)
	}

	return models.Session(stored), nil
}

// Delete removes a session.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
