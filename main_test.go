package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	"github.com/cristianadrielbraun/qrglow/internal/cache"
	"github.com/cristianadrielbraun/qrglow/internal/config"
	"github.com/cristianadrielbraun/qrglow/internal/handlers"
	"github.com/cristianadrielbraun/qrglow/internal/middleware"
)

func TestRouter(t *testing.T) {
	defaults := art.DefaultParams()
	r := newRouter(handlers.New(nil, time.Minute, defaults), defaults)

	tests := []struct {
		path        string
		status      int
		contentType string
	}{
		{"/", http.StatusOK, "text/html; charset=utf-8"},
		{"/?text=hello&seed=5", http.StatusOK, "text/html; charset=utf-8"},
		{"/healthz", http.StatusOK, "application/json; charset=utf-8"},
		{"/sitemap.xml", http.StatusOK, "application/xml; charset=utf-8"},
		{"/api/qr?text=hello", http.StatusOK, "image/svg+xml"},
		{"/api/qr/plain?text=hello", http.StatusOK, "image/png"},
		{"/api/qr", http.StatusBadRequest, "application/json; charset=utf-8"},
		{"/missing", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
			if tt.contentType != "" {
				assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			}
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestOpenCache(t *testing.T) {
	c, err := openCache(context.Background(), config.CacheConfig{Backend: config.CacheNone})
	require.NoError(t, err)
	assert.IsType(t, &cache.NullCache{}, c)

	c, err = openCache(context.Background(), config.CacheConfig{Backend: config.CacheFile, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &cache.FileCache{}, c)

	_, err = openCache(context.Background(), config.CacheConfig{Backend: config.CacheRedis})
	assert.Error(t, err)
}

func TestGetAddr(t *testing.T) {
	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 9000}

	t.Setenv("PORT", "")
	assert.Equal(t, "127.0.0.1:9000", getAddr(cfg))

	t.Setenv("PORT", "3000")
	assert.Equal(t, ":3000", getAddr(cfg))

	t.Setenv("PORT", "http")
	assert.Equal(t, "127.0.0.1:9000", getAddr(cfg))
}
