package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the production Store. Sessions survive restarts and are
// shared across replicas; Redis TTLs handle expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("session: redis ping: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func redisKey(sid string) string { return "vyapar:session:" + sid }

func (s *RedisStore) Put(ctx context.Context, sid string, userID uint, ttl time.Duration) error {
	return s.client.Set(ctx, redisKey(sid), strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sid string) (uint, bool, error) {
	val, err := s.client.Get(ctx, redisKey(sid)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("session: corrupt record for %s: %w", sid, err)
	}
	return uint(id), true, nil
}

func (s *RedisStore) Del(ctx context.Context, sid string) error {
	return s.client.Del(ctx, redisKey(sid)).Err()
}
