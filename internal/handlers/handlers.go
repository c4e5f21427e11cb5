package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	"github.com/cristianadrielbraun/qrglow/internal/cache"
	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
)

// Handler carries the dependencies shared by the HTTP handlers.
type Handler struct {
	cache    cache.Cache
	ttl      time.Duration
	defaults art.Params
}

// New returns a Handler. A nil cache disables caching; defaults are the
// render params used for every query parameter the request leaves out.
func New(c cache.Cache, ttl time.Duration, defaults art.Params) *Handler {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Handler{cache: c, ttl: ttl, defaults: defaults}
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SitemapXML serves a minimal sitemap for the site.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (host == "localhost:8080" || host == "127.0.0.1:8080") {
		scheme = "http"
	}
	base := scheme + "://" + host
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + base + "/" + "</loc>\n" +
		"    <changefreq>weekly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(http.StatusOK, xml)
}

// writeError answers with {"error", "code"} and the status for err's code.
func writeError(c *gin.Context, err error) {
	status := qrerr.HTTPStatus(err)
	code := qrerr.GetCode(err)
	if code == "" {
		code = qrerr.ErrCodeInternal
	}
	msg := qrerr.UserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		msg = "internal error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}
