package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Render  RenderConfig  `mapstructure:"render"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr is the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	Dir     string        `mapstructure:"dir"`
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RenderConfig struct {
	// Preset is an optional TOML file overriding the default render params.
	Preset string `mapstructure:"preset"`
}

const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.file_path", "")

	v.SetDefault("cache.backend", CacheNone)
	v.SetDefault("cache.dir", ".cache/qrglow")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)

	v.SetDefault("render.preset", "")
}

// Load reads the config file at path, if any, and applies environment
// overrides such as SERVER_PORT or CACHE_BACKEND.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	switch config.Cache.Backend {
	case CacheNone, CacheFile, CacheRedis:
	default:
		return nil, fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
	}

	return &config, nil
}

// LoadPreset decodes a TOML render preset over art.DefaultParams and
// validates the result. Keys the preset does not set keep their defaults.
func LoadPreset(path string) (art.Params, error) {
	p := art.DefaultParams()
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return p, qrerr.Wrap(qrerr.ErrCodeInvalidParams, err, "read preset %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return p, qrerr.New(qrerr.ErrCodeInvalidParams, "preset %s: unknown key %q", path, undecoded[0].String())
	}
	return p.Resolve()
}
