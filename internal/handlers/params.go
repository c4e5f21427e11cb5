package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	"github.com/cristianadrielbraun/qrglow/internal/encode"
	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
	"github.com/cristianadrielbraun/qrglow/internal/raster"
)

const (
	formatSVG = "svg"
	formatPNG = "png"
)

// artQuery is everything /api/qr reads from the query string.
type artQuery struct {
	Request encode.Request `json:"request"`
	Params  art.Params     `json:"params"`
	Format  string         `json:"format"`
	Size    int            `json:"size"`
}

// parseArtQuery overlays the query on defaults. Values are validated later
// by art.Params.Resolve and encode.Encode; here only their syntax is checked.
func parseArtQuery(q url.Values, defaults art.Params) (artQuery, error) {
	var out artQuery

	text := strings.TrimSpace(q.Get("text"))
	if text == "" {
		text = strings.TrimSpace(q.Get("url"))
	}
	if text == "" {
		return out, qrerr.New(qrerr.ErrCodeInvalidInput, "text parameter is required")
	}
	out.Request.Text = text

	var ok bool
	if out.Request.ECL, ok = art.ParseECL(q.Get("ecl")); !ok {
		return out, qrerr.New(qrerr.ErrCodeInvalidInput, "unknown error correction level %q", q.Get("ecl"))
	}
	if out.Request.Mode, ok = art.ParseMode(q.Get("mode")); !ok {
		return out, qrerr.New(qrerr.ErrCodeInvalidInput, "unknown encoding mode %q", q.Get("mode"))
	}
	if out.Request.Backend, ok = encode.ParseBackend(q.Get("encoder")); !ok {
		return out, qrerr.New(qrerr.ErrCodeInvalidInput, "unknown encoder %q", q.Get("encoder"))
	}
	if err := intParam(q, "version", &out.Request.MinVersion, qrerr.ErrCodeInvalidInput); err != nil {
		return out, err
	}
	if v := q.Get("strict"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return out, qrerr.Wrap(qrerr.ErrCodeInvalidInput, err, "invalid strict %q", v)
		}
		out.Request.StrictVersion = b
	}

	out.Format = strings.ToLower(q.Get("format"))
	switch out.Format {
	case "":
		out.Format = formatSVG
	case formatSVG, formatPNG:
	default:
		return out, qrerr.New(qrerr.ErrCodeInvalidInput, "unknown format %q", out.Format)
	}
	if out.Format == formatPNG {
		out.Size = raster.DefaultSize
		if err := intParam(q, "size", &out.Size, qrerr.ErrCodeInvalidInput); err != nil {
			return out, err
		}
	}

	p := defaults
	p.Foreground = append([]string(nil), defaults.Foreground...)
	if err := intParam(q, "margin", &p.Margin, qrerr.ErrCodeInvalidParams); err != nil {
		return out, err
	}
	if err := intParam(q, "line", &p.LineThickness, qrerr.ErrCodeInvalidParams); err != nil {
		return out, err
	}
	if err := intParam(q, "finder", &p.FinderThickness, qrerr.ErrCodeInvalidParams); err != nil {
		return out, err
	}
	if err := intParam(q, "seed", &p.Seed, qrerr.ErrCodeInvalidParams); err != nil {
		return out, err
	}
	if v := q.Get("quietZone"); v != "" {
		if p.QuietZone, ok = art.ParseQuietZone(v); !ok {
			return out, qrerr.New(qrerr.ErrCodeInvalidParams, "unknown quiet zone %q", v)
		}
	}
	if v := q.Get("invert"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return out, qrerr.Wrap(qrerr.ErrCodeInvalidParams, err, "invalid invert %q", v)
		}
		p.Invert = b
	}
	if v := q.Get("glow"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return out, qrerr.Wrap(qrerr.ErrCodeInvalidParams, err, "invalid glow %q", v)
		}
		p.GlowStrength = f
	}
	if v := q.Get("fg"); v != "" {
		p.Foreground = splitColors(v)
	}
	if v := q.Get("bg"); v != "" {
		p.Background = v
	}

	resolved, err := p.Resolve()
	if err != nil {
		return out, err
	}
	out.Params = resolved
	return out, nil
}

func intParam(q url.Values, name string, dst *int, code qrerr.Code) error {
	v := q.Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return qrerr.Wrap(code, err, "invalid %s %q", name, v)
	}
	*dst = n
	return nil
}

// splitColors splits a comma separated palette, dropping empty entries.
func splitColors(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
