package session

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/storekeep/adminapi/internal/domain"
)

const keyPrefix = "adminapi:session:"

// RedisStore keeps credentials in redis so sessions survive gateway restarts
// and can be shared between replicas.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (domain.Credential, bool, error) {
	val, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err == redis.Nil {
		return domain.Credential{}, false, nil
	}
	if err != nil {
		return domain.Credential{}, false, err
	}

	var cred domain.Credential
	if err := json.Unmarshal([]byte(val), &cred); err != nil {
		return domain.Credential{}, false, err
	}
	return cred, true, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, cred domain.Credential, ttl time.Duration) error {
	payload, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+sessionID, payload, ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, keyPrefix+sessionID).Err()
}
