package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// PresenceStore keeps the last reported status of every user with a TTL, so
// that a user who stops heartbeating decays to the fallback status.
type PresenceStore interface {
	Set(ctx context.Context, userID, status string) error
	Get(ctx context.Context, userID string) (string, error)
	GetMulti(ctx context.Context, userIDs []string) (map[string]string, error)
}

type presenceStore struct {
	client   *redis.Client
	ttl      time.Duration
	fallback string
}

func NewPresenceStore(client *redis.Client, ttl time.Duration, fallback string) PresenceStore {
	return &presenceStore{client: client, ttl: ttl, fallback: fallback}
}

func presenceKey(userID string) string {
	return "presence:" + userID
}

func (s *presenceStore) Set(ctx context.Context, userID, status string) error {
	return s.client.Set(ctx, presenceKey(userID), status, s.ttl).Err()
}

func (s *presenceStore) Get(ctx context.Context, userID string) (string, error) {
	status, err := s.client.Get(ctx, presenceKey(userID)).Result()
	if err == redis.Nil {
		return s.fallback, nil
	}

	if err != nil {
		return "", err
	}

	return status, nil
}

func (s *presenceStore) GetMulti(ctx context.Context, userIDs []string) (map[string]string, error) {
	result := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, presenceKey(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		if status, ok := v.(string); ok {
			result[userIDs[i]] = status
		} else {
			result[userIDs[i]] = s.fallback
		}
	}

	return result, nil
}
