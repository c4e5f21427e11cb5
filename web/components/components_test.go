package components

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrglow/internal/art"
)

func TestImageURL(t *testing.T) {
	d := PreviewData{Text: "a b&c", Params: art.DefaultParams()}
	u, err := url.Parse(d.ImageURL())
	require.NoError(t, err)

	assert.Equal(t, "/api/qr", u.Path)
	q := u.Query()
	assert.Equal(t, "a b&c", q.Get("text"))
	assert.Equal(t, "1", q.Get("seed"))
	assert.Equal(t, "4", q.Get("margin"))
	assert.Equal(t, "Minimal", q.Get("quietZone"))
	assert.Equal(t, "false", q.Get("invert"))
	assert.Equal(t, "2", q.Get("glow"))
	assert.Equal(t, "#fb51dd,#f2cffa,#aefdfd,#54a9fe", q.Get("fg"))
	assert.Equal(t, "#101529", q.Get("bg"))
}

func TestButtonMergesClasses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Button("Go <now>", "bg-sky-500").Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "bg-sky-500")
	assert.NotContains(t, out, "bg-fuchsia-500")
	assert.Contains(t, out, "Go &lt;now&gt;")
}

func TestCardRendersChildren(t *testing.T) {
	var buf bytes.Buffer
	ctx := templ.WithChildren(context.Background(), Preview(PreviewData{Text: "x", Params: art.DefaultParams()}))
	require.NoError(t, Card("p-2").Render(ctx, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<div class="`))
	assert.True(t, strings.HasSuffix(out, `</div>`))
	assert.Contains(t, out, "p-2")
	assert.NotContains(t, out, "p-6")
	assert.Contains(t, out, `<img src="/api/qr?`)
	assert.Contains(t, out, `/api/qr/plain?text=x`)
}

func TestFieldEscapesValue(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Field("Seed", "seed", "number", `7"`, "w-24").Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, `name="seed" value="7&#34;"`)
	assert.Contains(t, out, "w-24")
	assert.NotContains(t, out, "w-full")
}

func TestPlainURL(t *testing.T) {
	d := PreviewData{Text: "a b&c"}
	assert.Equal(t, "/api/qr/plain?text=a+b%26c", d.PlainURL())
}
