package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "qrglow.yaml", `
server:
  host: 127.0.0.1
  port: 9090
  write_timeout: 5s
logging:
  level: debug
  format: text
cache:
  backend: redis
  ttl: 10m
  redis:
    addr: redis:6379
    db: 2
render:
  preset: presets/neon.toml
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, "presets/neon.toml", cfg.Render.Preset)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("CACHE_BACKEND", "file")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, CacheFile, cfg.Cache.Backend)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeFile(t, "bad.yaml", "cache:\n  backend: memcached\n")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadPreset(t *testing.T) {
	path := writeFile(t, "neon.toml", `
margin = 2
quiet_zone = "full"
glow_strength = 1.5
foreground = ["#FF00FF", "00ffcc"]
seed = 7
`)
	p, err := LoadPreset(path)
	require.NoError(t, err)

	want := art.DefaultParams()
	want.Margin = 2
	want.QuietZone = art.QuietZoneFull
	want.GlowStrength = 1.5
	want.Foreground = []string{"#ff00ff", "#00ffcc"}
	want.Seed = 7
	assert.Equal(t, want, p)
}

func TestLoadPresetErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "margin = "},
		{"unknown key", "sparkle = true\n"},
		{"out of range", "seed = 500\n"},
		{"bad color", "background = \"nope\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPreset(writeFile(t, "p.toml", tt.content))
			require.Error(t, err)
			assert.True(t, qrerr.Is(err, qrerr.ErrCodeInvalidParams))
		})
	}

	_, err := LoadPreset(filepath.Join(t.TempDir(), "none.toml"))
	assert.True(t, qrerr.Is(err, qrerr.ErrCodeInvalidParams))
}
