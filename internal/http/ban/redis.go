package ban

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/loja-api/internal/redissvc"
)

const (
	strikeKeyPrefix = "ratelimit:strikes:"
	banKeyPrefix    = "ratelimit:ban:"
)

// RedisStore shares strikes and bans between every instance using the same Redis.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rs *redissvc.RedisService) *RedisStore {
	return &RedisStore{rdb: rs.Rdb()}
}

func (s *RedisStore) AddStrike(ctx context.Context, target string, window time.Duration) (int64, error) {
	key := strikeKeyPrefix + target
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.rdb.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return n, nil
}

func (s *RedisStore) Ban(ctx context.Context, target string, d time.Duration) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, banKeyPrefix+target, time.Now().Add(d).Unix(), d)
		pipe.Del(ctx, strikeKeyPrefix+target)
		return nil
	})
	return err
}

func (s *RedisStore) IsBanned(ctx context.Context, target string) (bool, error) {
	err := s.rdb.Get(ctx, banKeyPrefix+target).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
