package database

import (
	"context"
	"time"

	"github.com/lunora-app/lunora/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedis connects to the redis instance backing the session cache mirror.
// The mirror is latency-only, so a failed ping is logged but not fatal.
func NewRedis(cfg *config.Config) redis.UniversalClient {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Redis.Addr},
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis ping failed, cache mirror will degrade to remote-only reads")
	} else {
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	}

	return client
}
