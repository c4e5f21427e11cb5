package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Hour))
	data, hit, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, data)
	assert.NoError(t, c.Delete(ctx, "key"))
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	_, hit, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "svg", []byte("<svg/>"), time.Hour))
	data, hit, err := c.Get(ctx, "svg")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("<svg/>"), data)

	require.NoError(t, c.Delete(ctx, "svg"))
	_, hit, _ = c.Get(ctx, "svg")
	assert.False(t, hit)

	assert.NoError(t, c.Delete(ctx, "svg"), "deleting a missing key")
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Nanosecond))
	time.Sleep(5 * time.Millisecond)
	_, hit, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "forever", []byte("y"), 0))
	_, hit, _ = c.Get(ctx, "forever")
	assert.True(t, hit)
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	require.NoError(t, err)

	fc := c.(*FileCache)
	path := fc.path("bad")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, hit, err := c.Get(ctx, "bad")
	require.NoError(t, err)
	assert.False(t, hit)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestKey(t *testing.T) {
	k1 := Key("svg", "hello", 1, "Minimal")
	k2 := Key("svg", "hello", 1, "Minimal")
	k3 := Key("svg", "hello", 2, "Minimal")
	k4 := Key("png", "hello", 1, "Minimal")

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, k1, k4)
	assert.Len(t, k1, len("svg:")+64)
	assert.Equal(t, "svg:", k1[:4])
}

func TestHash(t *testing.T) {
	assert.Equal(t, Hash([]byte("hello")), Hash([]byte("hello")))
	assert.NotEqual(t, Hash([]byte("hello")), Hash([]byte("world")))
	assert.Len(t, Hash([]byte("hello")), 64)
}

func TestRedisCacheRequiresAddr(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisConfig{})
	assert.Error(t, err)
}

// Runs against a live server when QRGLOW_TEST_REDIS is set, e.g. localhost:6379.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("QRGLOW_TEST_REDIS")
	if addr == "" {
		t.Skip("QRGLOW_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "qrglow-test"})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	data, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("v"), data)

	require.NoError(t, c.Delete(ctx, "k"))
	_, hit, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
}
