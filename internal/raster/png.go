// Package raster converts rendered SVG documents to PNG.
package raster

import (
	"bytes"
	"image"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
)

const (
	DefaultSize = 512
	MinSize     = 64
	MaxSize     = 4096
)

// ToPNG rasterizes svg into a size x size PNG. A size of 0 means
// DefaultSize. Elements the rasterizer does not support, such as filters,
// are skipped, so the glow is not part of the bitmap.
func ToPNG(svg []byte, size int) ([]byte, error) {
	img, err := Rasterize(svg, size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, qrerr.Wrap(qrerr.ErrCodeRasterFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Rasterize draws svg onto a new size x size RGBA image, scaling its view
// box to fill the image.
func Rasterize(svg []byte, size int) (*image.RGBA, error) {
	if size == 0 {
		size = DefaultSize
	}
	if size < MinSize || size > MaxSize {
		return nil, qrerr.New(qrerr.ErrCodeInvalidInput, "size %d out of range [%d, %d]", size, MinSize, MaxSize)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, qrerr.Wrap(qrerr.ErrCodeRasterFailed, err, "parse svg")
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)
	return img, nil
}
