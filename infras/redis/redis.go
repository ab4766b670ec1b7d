package redis

import (
	"context"
	"fmt"
	"net"
	"todolist/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Connect opens a client for the primary node and verifies it with PING.
func Connect(config *config.Config) (*goRedis.Client, error) {
	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	return client, nil
}

func New(config *config.Config) *goRedis.Client {
	client, err := Connect(config)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	return client
}
