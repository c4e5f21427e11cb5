package cli

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	"github.com/cristianadrielbraun/qrglow/internal/encode"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("QRGLOW_CACHE_DIR", filepath.Join(t.TempDir(), "cache"))

	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.svg")
	out, err := execute(t, "render", "hello", "-o", path, "--seed", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")
	assert.Contains(t, out, "shapes")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	symbol, err := encode.Encode(encode.Request{Text: "hello"})
	require.NoError(t, err)
	p := art.DefaultParams()
	p.Seed = 42
	want, err := art.RenderSVG(symbol, p)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestRenderStdout(t *testing.T) {
	out, err := execute(t, "render", "hello", "-o", "-", "--invert", "--quiet-zone", "full", "--fg", "#ff00ff,#00ffff")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg"))
	assert.Contains(t, out, `fill="#ff00ff"`)
}

func TestRenderPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.png")
	_, err := execute(t, "render", "hello", "-o", path, "--size", "200", "--encoder", "skip2")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestRenderPreset(t *testing.T) {
	dir := t.TempDir()
	preset := filepath.Join(dir, "neon.toml")
	require.NoError(t, os.WriteFile(preset, []byte("seed = 3\nbackground = \"#000000\"\n"), 0644))

	out, err := execute(t, "render", "hello", "-o", "-", "--preset", preset, "--bg", "#111111")
	require.NoError(t, err)
	assert.Contains(t, out, `fill="#111111"`, "flag overrides preset")
	assert.NotContains(t, out, `fill="#000000"`)
}

func TestRenderCached(t *testing.T) {
	t.Setenv("QRGLOW_CACHE_DIR", t.TempDir())
	path := filepath.Join(t.TempDir(), "code.svg")

	run := func() string {
		var out bytes.Buffer
		root := NewRootCommand()
		root.SetArgs([]string{"render", "cache me", "-o", path})
		root.SetOut(&out)
		root.SetErr(&bytes.Buffer{})
		require.NoError(t, root.ExecuteContext(context.Background()))
		return out.String()
	}
	assert.Contains(t, run(), "(rendered)")
	assert.Contains(t, run(), "(cached)")
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"no text", []string{"render", "-o", filepath.Join(dir, "a.svg")}},
		{"no output", []string{"render", "hello"}},
		{"bad extension", []string{"render", "hello", "-o", filepath.Join(dir, "a.gif")}},
		{"bad seed", []string{"render", "hello", "-o", "-", "--seed", "0"}},
		{"bad thickness", []string{"render", "hello", "-o", "-", "--line", "5"}},
		{"bad encoder", []string{"render", "hello", "-o", "-", "--encoder", "zxing"}},
		{"bad ecl", []string{"render", "hello", "-o", "-", "--ecl", "Z"}},
		{"bad size", []string{"render", "hello", "-o", filepath.Join(dir, "a.png"), "--size", "5"}},
		{"kanji mode", []string{"render", "hello", "-o", "-", "--mode", "kanji"}},
		{"strict version too small", []string{"render", strings.Repeat("abcdefghij", 10), "-o", "-", "--min-version", "2", "--strict-version"}},
		{"missing preset", []string{"render", "hello", "-o", "-", "--preset", filepath.Join(dir, "none.toml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRenderMinVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.svg")
	out, err := execute(t, "render", strings.Repeat("abcdefghij", 10), "-o", path, "--min-version", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "5 (37x37")

	out, err = execute(t, "render", "hi", "-o", path, "--min-version", "3", "--strict-version")
	require.NoError(t, err)
	assert.Contains(t, out, "3 (29x29")
}

func TestVersionCommand(t *testing.T) {
	SetVersion("v1.2.3", "abc123", "2026-01-02")
	t.Cleanup(func() { SetVersion("dev", "none", "unknown") })

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "qrglow v1.2.3 (commit abc123, built 2026-01-02)\n", out)
}

func TestOutputFormat(t *testing.T) {
	tests := map[string]string{"-": "svg", "a.svg": "svg", "A.SVG": "svg", "b.png": "png"}
	for in, want := range tests {
		got, err := outputFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := outputFormat("noext")
	assert.Error(t, err)
}

func TestLoggerFromContext(t *testing.T) {
	assert.Equal(t, log.Default(), loggerFromContext(context.Background()))

	l := newLogger(&bytes.Buffer{}, log.DebugLevel)
	assert.Same(t, l, loggerFromContext(withLogger(context.Background(), l)))
}
