package database

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates the shared TTL store. OTP and session code share this
// client and stay apart by key prefix only.
func NewRedis(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// Ping verifies connectivity at startup
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
