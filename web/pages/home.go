package pages

import (
	"strconv"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	"github.com/cristianadrielbraun/qrglow/web/components"
)

// DefaultText is previewed when the page is opened without ?text=.
const DefaultText = "https://qrglow.dev"

// FromQuery builds the preview from the page's own query parameters,
// falling back to defaults for anything missing or malformed.
func FromQuery(text, seed, margin, glow string, defaults art.Params) components.PreviewData {
	if text == "" {
		text = DefaultText
	}
	p := defaults
	if n, err := strconv.Atoi(seed); err == nil {
		p.Seed = n
	}
	if n, err := strconv.Atoi(margin); err == nil {
		p.Margin = n
	}
	if f, err := strconv.ParseFloat(glow, 64); err == nil {
		p.GlowStrength = f
	}
	return components.PreviewData{Text: text, Params: p}
}
