package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrglow/internal/art"
	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
)

func renderSample(t *testing.T) []byte {
	t.Helper()
	m := make([]art.Module, 21*21)
	for y := 8; y < 13; y++ {
		for x := 8; x < 13; x++ {
			m[y*21+x] = art.ON
		}
	}
	p := art.DefaultParams()
	p.Margin = 0
	p.QuietZone = art.QuietZoneFull
	p.Foreground = []string{"#ffffff"}
	svg, err := art.RenderSVG(art.OutputQr{Version: 1, Matrix: m}, p)
	require.NoError(t, err)
	return []byte(svg)
}

func TestToPNG(t *testing.T) {
	out, err := ToPNG(renderSample(t), 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
	assert.Equal(t, DefaultSize, img.Bounds().Dy())
}

func TestRasterizeColors(t *testing.T) {
	img, err := Rasterize(renderSample(t), 256)
	require.NoError(t, err)

	// corner: background #101529
	c := img.RGBAAt(2, 2)
	assert.InDelta(t, 0x10, int(c.R), 2)
	assert.InDelta(t, 0x15, int(c.G), 2)
	assert.InDelta(t, 0x29, int(c.B), 2)
	assert.Equal(t, uint8(255), c.A)

	// center of the 5x5 block: foreground white
	c = img.RGBAAt(128, 128)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(255), c.G)
	assert.Equal(t, uint8(255), c.B)
}

func TestRasterizeRejectsSize(t *testing.T) {
	for _, size := range []int{-1, 10, MaxSize + 1} {
		_, err := Rasterize(renderSample(t), size)
		require.Error(t, err)
		assert.True(t, qrerr.Is(err, qrerr.ErrCodeInvalidInput))
	}
}

func TestRasterizeRejectsGarbage(t *testing.T) {
	_, err := Rasterize([]byte("<svg"), 128)
	require.Error(t, err)
}
