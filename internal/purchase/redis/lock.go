package redis

import (
	"context"
	"fmt"
	"time"

	"ms-storefront/internal/logger"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "storefront:"

// Redis is the settlement guard backed by SETNX locks.
type Redis struct {
	Client *redis.Client
	Logger *logger.Logger
}

func NewRedis(client *redis.Client, log *logger.Logger) *Redis {
	return &Redis{Client: client, Logger: log}
}

// Connect creates a client and checks the connection
func Connect(addr string, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // no password
		DB:       0,  // use default DB
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	log.Info("REDIS", fmt.Sprintf("Connected to Redis at %s for settlement locks", addr))
	return client, nil
}

// Acquire locks key for owner until ttl passes
func (r *Redis) Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	ok, err := r.Client.SetNX(ctx, keyPrefix+key, owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("lock %s: %w", key, err)
	}
	if !ok && r.Logger != nil {
		r.Logger.Warn("REDIS", fmt.Sprintf("Lock %s already held", key))
	}
	return ok, nil
}

// Release unlocks key if owner still holds it
func (r *Redis) Release(ctx context.Context, key, owner string) error {
	val, err := r.Client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return nil // already unlocked
	}
	if err != nil {
		return fmt.Errorf("read lock %s: %w", key, err)
	}
	if val != owner {
		return nil
	}
	return r.Client.Del(ctx, keyPrefix+key).Err()
}
