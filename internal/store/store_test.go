package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gofiber/storage/memory/v2"
	fredis "github.com/gofiber/storage/redis/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name string            `json:"name"`
	Age  int               `json:"age"`
	Tags map[string]string `json:"tags"`
}

func testStoreRoundTrip(t *testing.T, s Store[person]) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	p := person{Name: "John Doe", Age: 30, Tags: map[string]string{"role": "admin"}}
	require.NoError(t, s.Set(ctx, "1", p, time.Minute))

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, p, *got)

	require.NoError(t, s.Del(ctx, "1"))
	_, err = s.Get(ctx, "1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	testStoreRoundTrip(t, NewMemoryStore[person](memory.New(), "person:"))
}

func TestMemoryStore_KeyPrefix(t *testing.T) {
	storage := memory.New()
	s := NewMemoryStore[person](storage, "person:")
	require.NoError(t, s.Set(context.Background(), "1", person{Name: "Jane"}, 0))

	raw, err := storage.Get("person:1")
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

func TestPrefixedStorage(t *testing.T) {
	backend := memory.New()
	sessions := NewPrefixedStorage(backend, "session:")

	require.NoError(t, sessions.Set("abc", []byte("data"), 0))
	val, err := backend.Get("session:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), val)

	val, err = sessions.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), val)

	require.NoError(t, sessions.Delete("abc"))
	val, err = backend.Get("session:abc")
	require.NoError(t, err)
	assert.Nil(t, val)

	assert.ErrorIs(t, sessions.Reset(), ErrResetUnsupported)
}

func TestRedisStore(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set")
	}
	storage := fredis.New(fredis.Config{URL: redisURL})
	t.Cleanup(func() { storage.Close() })

	s := NewRedisStore[person](storage.Conn(), "test:person:")
	testStoreRoundTrip(t, s)

	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "ttl", person{Name: "Temp"}, time.Minute))
	ttl, err := storage.Conn().TTL(ctx, "test:person:ttl").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	require.NoError(t, s.Del(ctx, "ttl"))
}
