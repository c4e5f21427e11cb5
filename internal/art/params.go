package art

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
)

// Unit is the side of one cell in SVG user units.
const Unit = 4

// QuietZone selects how the one-cell frame around the symbol is drawn.
type QuietZone string

const (
	// QuietZoneMinimal sprinkles noise on the frame, keeping clear runs next to
	// the finder patterns.
	QuietZoneMinimal QuietZone = "Minimal"
	// QuietZoneFull keeps the frame clear.
	QuietZoneFull QuietZone = "Full"
)

// ParseQuietZone is case-insensitive. Empty input means QuietZoneMinimal.
func ParseQuietZone(s string) (QuietZone, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "minimal":
		return QuietZoneMinimal, true
	case "full":
		return QuietZoneFull, true
	}
	return "", false
}

// Params are the resolved rendering parameters.
type Params struct {
	Margin          int       `json:"margin" toml:"margin"`
	QuietZone       QuietZone `json:"quiet_zone" toml:"quiet_zone"`
	Invert          bool      `json:"invert" toml:"invert"`
	LineThickness   int       `json:"line_thickness" toml:"line_thickness"`
	FinderThickness int       `json:"finder_thickness" toml:"finder_thickness"`
	GlowStrength    float64   `json:"glow_strength" toml:"glow_strength"`
	Foreground      []string  `json:"foreground" toml:"foreground"`
	Background      string    `json:"background" toml:"background"`
	Seed            int       `json:"seed" toml:"seed"`
}

// Parameter bounds.
const (
	MinMargin, MaxMargin       = 0, 10
	MinThickness, MaxThickness = 1, Unit
	MinGlow, MaxGlow           = 0.0, 4.0
	MinSeed, MaxSeed           = 1, 100
)

// DefaultParams returns the stock glow look.
func DefaultParams() Params {
	return Params{
		Margin:          4,
		QuietZone:       QuietZoneMinimal,
		LineThickness:   2,
		FinderThickness: 4,
		GlowStrength:    2,
		Foreground:      []string{"#fb51dd", "#f2cffa", "#aefdfd", "#54a9fe"},
		Background:      "#101529",
		Seed:            1,
	}
}

// Resolve validates p and returns a copy with colors normalized to
// lowercase #rrggbb.
func (p Params) Resolve() (Params, error) {
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return p, qrerr.New(qrerr.ErrCodeInvalidParams, "margin %d out of range [%d, %d]", p.Margin, MinMargin, MaxMargin)
	}
	if _, ok := ParseQuietZone(string(p.QuietZone)); !ok {
		return p, qrerr.New(qrerr.ErrCodeInvalidParams, "unknown quiet zone %q", p.QuietZone)
	}
	p.QuietZone, _ = ParseQuietZone(string(p.QuietZone))
	if err := checkThickness("line thickness", p.LineThickness); err != nil {
		return p, err
	}
	if err := checkThickness("finder thickness", p.FinderThickness); err != nil {
		return p, err
	}
	if p.GlowStrength < MinGlow || p.GlowStrength > MaxGlow {
		return p, qrerr.New(qrerr.ErrCodeInvalidParams, "glow strength %g out of range [%g, %g]", p.GlowStrength, MinGlow, MaxGlow)
	}
	if p.Seed < MinSeed || p.Seed > MaxSeed {
		return p, qrerr.New(qrerr.ErrCodeInvalidParams, "seed %d out of range [%d, %d]", p.Seed, MinSeed, MaxSeed)
	}
	if len(p.Foreground) == 0 {
		return p, qrerr.New(qrerr.ErrCodeInvalidParams, "foreground palette is empty")
	}

	fg := make([]string, len(p.Foreground))
	for i, c := range p.Foreground {
		hex, err := normalizeColor(c)
		if err != nil {
			return p, qrerr.Wrap(qrerr.ErrCodeInvalidParams, err, "foreground color %d", i)
		}
		fg[i] = hex
	}
	p.Foreground = fg

	bg, err := normalizeColor(p.Background)
	if err != nil {
		return p, qrerr.Wrap(qrerr.ErrCodeInvalidParams, err, "background color")
	}
	p.Background = bg
	return p, nil
}

func checkThickness(name string, v int) error {
	if v < MinThickness || v > MaxThickness {
		return qrerr.New(qrerr.ErrCodeInvalidParams, "%s %d out of range [%d, %d]", name, v, MinThickness, MaxThickness)
	}
	return nil
}

// strokeOffset is the inset that centers a stroke of the given thickness
// inside a cell. It lies in [0, Unit/2].
func strokeOffset(thin int) float64 {
	return float64(Unit-thin) / 2
}

func normalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}
