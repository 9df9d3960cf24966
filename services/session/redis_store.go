package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roombook/models"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps sessions as JSON under session:<userID>, without TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (*models.BookingSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	data, err := s.client.Get(ctx, sessionKey(userID)).Result()
	return decodeSession(userID, data, err)
}

// decodeSession turns a GET reply into a session; a missing key is a
// fresh idle session.
func decodeSession(userID int64, data string, err error) (*models.BookingSession, error) {
	if err == redis.Nil {
		return models.NewBookingSession(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var sess models.BookingSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *models.BookingSession) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}
