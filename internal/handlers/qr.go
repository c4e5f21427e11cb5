package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	"github.com/cristianadrielbraun/qrglow/internal/cache"
	"github.com/cristianadrielbraun/qrglow/internal/encode"
	"github.com/cristianadrielbraun/qrglow/internal/raster"
)

// renderedQR is what the cache stores per request.
type renderedQR struct {
	Version int    `json:"version"`
	ECL     string `json:"ecl"`
	Shapes  int    `json:"shapes"`
	Body    []byte `json:"body"`
}

// QRCodeHandler renders the glow artwork for the text query parameter as
// SVG or PNG.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	q, err := parseArtQuery(c.Request.URL.Query(), h.defaults)
	if err != nil {
		writeError(c, err)
		return
	}

	key := cache.Key("qr", q)
	cacheState := "miss"
	var out *renderedQR
	if data, hit, err := h.cache.Get(c.Request.Context(), key); err != nil {
		log.Warn().Err(err).Msg("cache get failed")
	} else if hit {
		var cached renderedQR
		if err := json.Unmarshal(data, &cached); err == nil {
			out = &cached
			cacheState = "hit"
		}
	}

	if out == nil {
		out, err = renderQuery(q)
		if err != nil {
			writeError(c, err)
			return
		}
		if data, err := json.Marshal(out); err == nil {
			if err := h.cache.Set(c.Request.Context(), key, data, h.ttl); err != nil {
				log.Warn().Err(err).Msg("cache set failed")
			}
		}
	}

	c.Header("X-QR-Version", strconv.Itoa(out.Version))
	c.Header("X-QR-ECL", out.ECL)
	c.Header("X-QR-Debug", fmt.Sprintf("format=%s;seed=%d;encoder=%s;shapes=%d;cache=%s",
		q.Format, q.Params.Seed, q.Request.Backend, out.Shapes, cacheState))
	c.Header("Cache-Control", "public, max-age=3600")

	contentType := "image/svg+xml"
	if q.Format == formatPNG {
		contentType = "image/png"
	}
	c.Data(http.StatusOK, contentType, out.Body)
}

func renderQuery(q artQuery) (*renderedQR, error) {
	start := time.Now()
	symbol, err := encode.Encode(q.Request)
	if err != nil {
		return nil, err
	}
	encoded := time.Now()

	artwork, err := art.Render(symbol, q.Params)
	if err != nil {
		return nil, err
	}
	body := []byte(artwork.SVG)
	rendered := time.Now()

	if q.Format == formatPNG {
		if body, err = raster.ToPNG(body, q.Size); err != nil {
			return nil, err
		}
	}

	log.Debug().
		Int("version", symbol.Version).
		Str("encoder", string(q.Request.Backend)).
		Int("shapes", artwork.Stats.Shapes).
		Dur("encode", encoded.Sub(start)).
		Dur("render", rendered.Sub(encoded)).
		Dur("total", time.Since(start)).
		Msg("qr rendered")

	return &renderedQR{
		Version: symbol.Version,
		ECL:     string(symbol.ECL),
		Shapes:  artwork.Stats.Shapes,
		Body:    body,
	}, nil
}
