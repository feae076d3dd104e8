package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRepository(client, "kiosk-7:"), mr
}

func TestRedisRepository_EmptyLoad(t *testing.T) {
	r, _ := setupTestRedis(t)

	s, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Session{}, s)
}

func TestRedisRepository_SaveLoadClear(t *testing.T) {
	r, mr := setupTestRedis(t)
	ctx := context.Background()

	want := models.Session{Token: "tok", UserID: "42", UserName: "Ann"}
	require.NoError(t, r.Save(ctx, want))
	assert.True(t, mr.Exists("kiosk-7:auth-storage"))
	assert.Zero(t, mr.TTL("kiosk-7:auth-storage"))

	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, r.Clear(ctx))
	require.NoError(t, r.Clear(ctx))
	assert.False(t, mr.Exists("kiosk-7:auth-storage"))
}

func TestRedisRepository_CorruptRecord(t *testing.T) {
	r, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("kiosk-7:auth-storage", "garbage"))

	_, err := r.Load(context.Background())
	require.ErrorContains(t, err, "decode session")
}

func TestRedisRepository_ServerDown(t *testing.T) {
	r, mr := setupTestRedis(t)
	mr.Close()

	_, err := r.Load(context.Background())
	require.ErrorContains(t, err, "redis get failed")
}
