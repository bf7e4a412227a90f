package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/connorcarey/ConnectFour-MiniMax/internal/service/bot"
)

// InitRedis connects to the redis server at addr. When the server cannot be
// reached it logs a warning and returns nil so callers can carry on with an
// in-process cache.
func InitRedis(ctx context.Context, addr, password string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("could not connect to redis, using the in-memory move cache")
		client.Close()
		return nil
	}

	log.Info().Str("addr", addr).Msg("redis connected")
	return client
}

// MoveCache implements bot.MoveCache on top of redis.Client.
type MoveCache struct {
	client *redis.Client
}

func NewMoveCache(client *redis.Client) *MoveCache {
	return &MoveCache{client: client}
}

// Set stores a column with expiration. A zero expiration keeps it forever.
func (r *MoveCache) Set(ctx context.Context, key string, column int, expiration time.Duration) error {
	return r.client.Set(ctx, key, column, expiration).Err()
}

// Get returns bot.ErrCacheMiss for unknown keys.
func (r *MoveCache) Get(ctx context.Context, key string) (int, error) {
	column, err := r.client.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return -1, bot.ErrCacheMiss
	}
	if err != nil {
		return -1, err
	}
	return column, nil
}

func (r *MoveCache) Close() error {
	return r.client.Close()
}
