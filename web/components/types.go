package components

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cristianadrielbraun/qrglow/internal/art"
)

// PreviewData is used by the QR UI component to build the artwork URL.
type PreviewData struct {
	Text   string
	Params art.Params
}

// ImageURL points at /api/qr with every render parameter spelled out.
func (d PreviewData) ImageURL() string {
	q := url.Values{}
	q.Set("text", d.Text)
	q.Set("seed", strconv.Itoa(d.Params.Seed))
	q.Set("margin", strconv.Itoa(d.Params.Margin))
	q.Set("quietZone", string(d.Params.QuietZone))
	q.Set("invert", strconv.FormatBool(d.Params.Invert))
	q.Set("line", strconv.Itoa(d.Params.LineThickness))
	q.Set("finder", strconv.Itoa(d.Params.FinderThickness))
	q.Set("glow", strconv.FormatFloat(d.Params.GlowStrength, 'f', -1, 64))
	q.Set("fg", strings.Join(d.Params.Foreground, ","))
	q.Set("bg", d.Params.Background)
	return "/api/qr?" + q.Encode()
}

// PlainURL points at the conventional QR image for the same text.
func (d PreviewData) PlainURL() string {
	return "/api/qr/plain?text=" + url.QueryEscape(d.Text)
}
