package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecorecoleccion-api/pkg/config"
)

var _ fiber.Storage = (*LimiterStorage)(nil)

func newStorage(t *testing.T) (*LimiterStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLimiterStorage(client, "test:"), mr
}

func TestNew_PingOK(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := New(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestNew_SinServidor(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err := New(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestLimiterStorage_GetSetDelete(t *testing.T) {
	s, mr := newStorage(t)

	v, err := s.Get("ip:1")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Set("ip:1", []byte("3"), time.Minute))
	assert.True(t, mr.Exists("test:ip:1"))

	v, err = s.Get("ip:1")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), v)

	require.NoError(t, s.Delete("ip:1"))
	v, err = s.Get("ip:1")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestLimiterStorage_Expira(t *testing.T) {
	s, mr := newStorage(t)
	require.NoError(t, s.Set("ip:2", []byte("1"), time.Second))
	mr.FastForward(2 * time.Second)
	v, err := s.Get("ip:2")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestLimiterStorage_ResetSoloSuPrefijo(t *testing.T) {
	s, mr := newStorage(t)
	require.NoError(t, s.Set("a", []byte("1"), 0))
	require.NoError(t, s.Set("b", []byte("1"), 0))
	require.NoError(t, mr.Set("otra:clave", "x"))

	require.NoError(t, s.Reset())
	assert.False(t, mr.Exists("test:a"))
	assert.False(t, mr.Exists("test:b"))
	assert.True(t, mr.Exists("otra:clave"))
}
