package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	"github.com/cristianadrielbraun/qrglow/internal/cache"
	"github.com/cristianadrielbraun/qrglow/internal/config"
	"github.com/cristianadrielbraun/qrglow/internal/handlers"
	"github.com/cristianadrielbraun/qrglow/internal/logger"
	"github.com/cristianadrielbraun/qrglow/internal/middleware"
	"github.com/cristianadrielbraun/qrglow/web/pages"
)

func main() {
	configPath := flag.String("config", os.Getenv("QRGLOW_CONFIG"), "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.Logging)

	defaults := art.DefaultParams()
	if cfg.Render.Preset != "" {
		if defaults, err = config.LoadPreset(cfg.Render.Preset); err != nil {
			log.Fatal().Err(err).Str("preset", cfg.Render.Preset).Msg("failed to load render preset")
		}
	}

	c, err := openCache(context.Background(), cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Cache.Backend).Msg("failed to open cache")
	}
	defer c.Close()

	srv := &http.Server{
		Addr:         getAddr(cfg.Server),
		Handler:      newRouter(handlers.New(c, cfg.Cache.TTL, defaults), defaults),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("cache", cfg.Cache.Backend).Msg("qrglow listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("qrglow stopped")
}

func newRouter(h *handlers.Handler, defaults art.Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())

	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.GET("/qr/plain", h.PlainQRHandler)
	}
	r.GET("/healthz", h.Healthz)
	r.GET("/sitemap.xml", h.SitemapXML)

	r.GET("/", func(c *gin.Context) {
		data := pages.FromQuery(c.Query("text"), c.Query("seed"), c.Query("margin"), c.Query("glow"), defaults)
		c.Header("Content-Type", "text/html; charset=utf-8")
		if err := pages.HomePage(data).Render(c.Request.Context(), c.Writer); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
		}
	})
	return r
}

func openCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheFile:
		return cache.NewFileCache(cfg.Dir)
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	default:
		return cache.NewNullCache(), nil
	}
}

// getAddr lets the PORT environment variable override the configured port.
func getAddr(cfg config.ServerConfig) string {
	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err == nil {
			return ":" + port
		}
	}
	return cfg.Addr()
}
