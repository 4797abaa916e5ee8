package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-directory/internal/domain/user"
)

func setupTestCache(t *testing.T) (UserCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t)), mr
}

func TestRedisUserCache_SetAndGet(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	u := &domain.User{ID: 1, Name: "Alice", Email: "a@x.com"}
	require.NoError(t, c.Set(ctx, u))

	got, err := c.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u, got)
}

func TestRedisUserCache_MissReturnsNil(t *testing.T) {
	c, _ := setupTestCache(t)

	got, err := c.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_SetNilUser(t *testing.T) {
	c, _ := setupTestCache(t)

	err := c.Set(context.Background(), nil)
	assert.Error(t, err)
}

func TestRedisUserCache_EntryExpires(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &domain.User{ID: 1, Name: "Alice", Email: "a@x.com"}))

	mr.FastForward(10 * time.Minute)

	got, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_CorruptEntry(t *testing.T) {
	c, mr := setupTestCache(t)

	require.NoError(t, mr.Set("user:1", "{not json"))

	got, err := c.Get(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, got)
}
