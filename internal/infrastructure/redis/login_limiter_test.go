package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Proyectos-api/pkg/config"
)

func newLimiter(t *testing.T, max int) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, max, 15*time.Minute), mr
}

func TestLoginLimiter_BloqueaTrasMaxFallos(t *testing.T) {
	l, mr := newLimiter(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "ana@acme.test")
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, l.Fail(ctx, "ana@acme.test"))
	}
	ok, err := l.Allow(ctx, "ana@acme.test")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.Allow(ctx, "otro@acme.test")
	require.NoError(t, err)
	assert.True(t, ok, "el contador es por email")

	assert.Equal(t, 15*time.Minute, mr.TTL("login:fail:ana@acme.test"))
	mr.FastForward(16 * time.Minute)
	ok, err = l.Allow(ctx, "ana@acme.test")
	require.NoError(t, err)
	assert.True(t, ok, "el bloqueo expira")
}

func TestLoginLimiter_Reset(t *testing.T) {
	l, mr := newLimiter(t, 1)
	ctx := context.Background()

	require.NoError(t, l.Fail(ctx, "ana@acme.test"))
	ok, _ := l.Allow(ctx, "ana@acme.test")
	require.False(t, ok)

	require.NoError(t, l.Reset(ctx, "ana@acme.test"))
	assert.False(t, mr.Exists("login:fail:ana@acme.test"))
	ok, err := l.Allow(ctx, "ana@acme.test")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginLimiter_Desactivado(t *testing.T) {
	l, _ := newLimiter(t, 0)
	ctx := context.Background()

	require.NoError(t, l.Fail(ctx, "ana@acme.test"))
	ok, err := l.Allow(ctx, "ana@acme.test")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := Connect(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	_ = client.Close()

	mr.Close()
	_, err = Connect(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err, "sin servidor el ping falla")
}
