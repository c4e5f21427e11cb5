package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	"github.com/cristianadrielbraun/qrglow/internal/cache"
	"github.com/cristianadrielbraun/qrglow/internal/config"
	"github.com/cristianadrielbraun/qrglow/internal/encode"
	"github.com/cristianadrielbraun/qrglow/internal/raster"
)

type renderOpts struct {
	output     string
	preset     string
	encoder    string
	ecl        string
	mode       string
	minVersion int
	strict     bool
	size       int
	noCache    bool

	margin    int
	quietZone string
	invert    bool
	line      int
	finder    int
	glow      float64
	fg        []string
	bg        string
	seed      int
}

// renderResult is cached per input, keyed by everything that shapes the output.
type renderResult struct {
	Version int       `json:"version"`
	ECL     string    `json:"ecl"`
	Stats   art.Stats `json:"stats"`
	Body    []byte    `json:"body"`
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts
	d := art.DefaultParams()

	cmd := &cobra.Command{
		Use:   "render TEXT",
		Short: "Render TEXT as QR artwork (SVG or PNG)",
		Long: `Render encodes TEXT as a QR code and writes the glow artwork.

The output format follows the file extension of --output: .svg or .png.
Use "-" to write SVG to stdout. Flags override values from --preset.`,
		Example: `  qrglow render "https://example.com" -o code.svg
  qrglow render hello -o code.png --size 1024 --seed 42 --quiet-zone full
  qrglow render hello -o - --fg "#ff00ff,#00ffff" --invert`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := resolveParams(cmd, opts)
			if err != nil {
				return err
			}
			req, err := buildRequest(args[0], opts)
			if err != nil {
				return err
			}
			return runRender(cmd, req, params, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (.svg, .png, or - for stdout)")
	f.StringVar(&opts.preset, "preset", "", "TOML file with render params")
	f.StringVar(&opts.encoder, "encoder", string(encode.BackendYeqown), "QR encoder: yeqown, skip2, rsc")
	f.StringVar(&opts.ecl, "ecl", "L", "error correction level: L, M, Q, H")
	f.StringVar(&opts.mode, "mode", "auto", "encoding mode: auto, numeric, alphanumeric, byte (forced modes need the yeqown encoder)")
	f.IntVar(&opts.minVersion, "min-version", 0, "smallest QR version to use (0 = automatic)")
	f.BoolVar(&opts.strict, "strict-version", false, "use exactly --min-version, failing when the text does not fit")
	f.IntVar(&opts.size, "size", raster.DefaultSize, "PNG side in pixels")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	f.IntVar(&opts.margin, "margin", d.Margin, "noise margin in cells")
	f.StringVar(&opts.quietZone, "quiet-zone", string(d.QuietZone), "quiet zone: minimal or full")
	f.BoolVar(&opts.invert, "invert", d.Invert, "trace dark cells instead of light cells")
	f.IntVar(&opts.line, "line", d.LineThickness, "line thickness (1-4)")
	f.IntVar(&opts.finder, "finder", d.FinderThickness, "finder pattern line thickness (1-4)")
	f.Float64Var(&opts.glow, "glow", d.GlowStrength, "glow blur strength (0-4)")
	f.StringSliceVar(&opts.fg, "fg", d.Foreground, "foreground palette")
	f.StringVar(&opts.bg, "bg", d.Background, "background color")
	f.IntVar(&opts.seed, "seed", d.Seed, "random seed (1-100)")

	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// resolveParams starts from the preset, or the defaults, and applies every
// flag the user set explicitly.
func resolveParams(cmd *cobra.Command, opts renderOpts) (art.Params, error) {
	p := art.DefaultParams()
	if opts.preset != "" {
		var err error
		if p, err = config.LoadPreset(opts.preset); err != nil {
			return p, err
		}
	}

	f := cmd.Flags()
	if f.Changed("margin") {
		p.Margin = opts.margin
	}
	if f.Changed("quiet-zone") {
		p.QuietZone = art.QuietZone(opts.quietZone)
	}
	if f.Changed("invert") {
		p.Invert = opts.invert
	}
	if f.Changed("line") {
		p.LineThickness = opts.line
	}
	if f.Changed("finder") {
		p.FinderThickness = opts.finder
	}
	if f.Changed("glow") {
		p.GlowStrength = opts.glow
	}
	if f.Changed("fg") {
		p.Foreground = opts.fg
	}
	if f.Changed("bg") {
		p.Background = opts.bg
	}
	if f.Changed("seed") {
		p.Seed = opts.seed
	}
	return p.Resolve()
}

func buildRequest(text string, opts renderOpts) (encode.Request, error) {
	req := encode.Request{Text: text, MinVersion: opts.minVersion, StrictVersion: opts.strict}
	var ok bool
	if req.ECL, ok = art.ParseECL(opts.ecl); !ok {
		return req, fmt.Errorf("unknown error correction level %q", opts.ecl)
	}
	if req.Mode, ok = art.ParseMode(opts.mode); !ok {
		return req, fmt.Errorf("unknown encoding mode %q", opts.mode)
	}
	if req.Backend, ok = encode.ParseBackend(opts.encoder); !ok {
		return req, fmt.Errorf("unknown encoder %q", opts.encoder)
	}
	return req, nil
}

func outputFormat(path string) (string, error) {
	if path == "-" {
		return "svg", nil
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		return "svg", nil
	case ".png":
		return "png", nil
	default:
		return "", fmt.Errorf("unsupported output extension %q (want .svg or .png)", ext)
	}
}

func runRender(cmd *cobra.Command, req encode.Request, params art.Params, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	format, err := outputFormat(opts.output)
	if err != nil {
		return err
	}
	size := 0
	if format == "png" {
		size = opts.size
	}

	c, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer c.Close()

	key := cache.Key("render", req, params, format, size)
	res, cached := loadCached(ctx, c, key)
	if !cached {
		prog := newProgress(logger)
		if res, err = render(req, params, format, size); err != nil {
			return err
		}
		prog.done("rendered " + req.Text)
		if data, err := json.Marshal(res); err == nil {
			if err := c.Set(ctx, key, data, 0); err != nil {
				logger.Warn("cache write failed", "err", err)
			}
		}
	}
	logger.Debug("symbol", "version", res.Version, "ecl", res.ECL, "shapes", res.Stats.Shapes, "cached", cached)

	if opts.output == "-" {
		_, err := cmd.OutOrStdout().Write(res.Body)
		return err
	}
	if err := os.WriteFile(opts.output, res.Body, 0644); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	source := "rendered"
	if cached {
		source = styleCached.Render("cached")
	}
	printSuccess(out, "Wrote %s (%s)", styleHighlight.Render(opts.output), source)
	printDetail(out, "version", fmt.Sprintf("%d (%dx%d, ECL %s)", res.Version, res.Stats.MatrixWidth, res.Stats.MatrixWidth, res.ECL))
	printDetail(out, "shapes", fmt.Sprintf("%d", res.Stats.Shapes))
	return nil
}

func loadCached(ctx context.Context, c cache.Cache, key string) (renderResult, bool) {
	var res renderResult
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		return res, false
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return res, false
	}
	return res, true
}

func render(req encode.Request, params art.Params, format string, size int) (renderResult, error) {
	symbol, err := encode.Encode(req)
	if err != nil {
		return renderResult{}, err
	}
	artwork, err := art.Render(symbol, params)
	if err != nil {
		return renderResult{}, err
	}

	body := []byte(artwork.SVG)
	if format == "png" {
		if body, err = raster.ToPNG(body, size); err != nil {
			return renderResult{}, err
		}
	}
	return renderResult{
		Version: symbol.Version,
		ECL:     string(symbol.ECL),
		Stats:   artwork.Stats,
		Body:    body,
	}, nil
}
