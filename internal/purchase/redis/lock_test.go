package redis

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"ms-storefront/internal/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a Redis client backed by miniredis
func setupTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err())

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return NewRedis(client, logger.NewWithWriter(&bytes.Buffer{})), mr
}

func TestAcquireIsExclusive(t *testing.T) {
	r, mr := setupTestRedis(t)
	ctx := context.Background()

	ok, err := r.Acquire(ctx, "settlement:flow-1", "order-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Acquire(ctx, "settlement:flow-1", "order-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, mr.Exists(keyPrefix+"settlement:flow-1"))
}

func TestReleaseOnlyByOwner(t *testing.T) {
	r, mr := setupTestRedis(t)
	ctx := context.Background()

	_, err := r.Acquire(ctx, "k", "owner-a", time.Minute)
	require.NoError(t, err)

	require.NoError(t, r.Release(ctx, "k", "owner-b"))
	assert.True(t, mr.Exists(keyPrefix+"k"), "foreign owner must not release the lock")

	require.NoError(t, r.Release(ctx, "k", "owner-a"))
	assert.False(t, mr.Exists(keyPrefix+"k"))

	assert.NoError(t, r.Release(ctx, "k", "owner-a"), "releasing twice is a no-op")
}

func TestLockExpires(t *testing.T) {
	r, mr := setupTestRedis(t)
	ctx := context.Background()

	_, err := r.Acquire(ctx, "k", "owner-a", 2*time.Second)
	require.NoError(t, err)
	mr.FastForward(3 * time.Second)

	ok, err := r.Acquire(ctx, "k", "owner-b", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConcurrentAcquireHasOneWinner(t *testing.T) {
	r, _ := setupTestRedis(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := r.Acquire(ctx, "settlement:flow-x", "owner", time.Minute)
			if err == nil && ok {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, winners)
}

func TestConnect(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()

	client, err := Connect(addr, logger.NewWithWriter(&bytes.Buffer{}))
	require.NoError(t, err)
	client.Close()

	mr.Close()
	_, err = Connect(addr, logger.NewWithWriter(&bytes.Buffer{}))
	assert.Error(t, err)
}
