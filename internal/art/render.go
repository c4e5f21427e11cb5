// Package art turns a QR module matrix into the glow artwork: a padded,
// noise-framed canvas whose connected regions are traced into stroked
// outlines and painted as colored SVG paths.
//
// Rendering is deterministic for a given matrix, parameter set and seed,
// and every call owns its grids, so concurrent renders never share state.
package art

import (
	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
	"github.com/cristianadrielbraun/qrglow/internal/rng"
)

// MaxVersion is the largest QR symbol version.
const MaxVersion = 40

// Stats summarizes how a render classified the canvas.
type Stats struct {
	MatrixWidth     int
	Shapes          int
	ShapeCells      int
	BackgroundCells int
}

// Artwork is a finished render.
type Artwork struct {
	SVG    string
	Shapes []*Shape
	Stats  Stats
}

// RenderSVG renders qr with p and returns the SVG document.
func RenderSVG(qr OutputQr, p Params) (string, error) {
	a, err := Render(qr, p)
	if err != nil {
		return "", err
	}
	return a.SVG, nil
}

// Render renders qr with p. Input and parameters are validated before any
// grid is allocated.
func Render(qr OutputQr, p Params) (*Artwork, error) {
	if err := checkInput(qr); err != nil {
		return nil, err
	}
	p, err := p.Resolve()
	if err != nil {
		return nil, err
	}

	t, err := trace(qr, p)
	if err != nil {
		return nil, err
	}

	st := Stats{MatrixWidth: t.width, Shapes: len(t.shapes)}
	for _, v := range t.visited {
		switch {
		case v == background:
			st.BackgroundCells++
		case v >= firstShape:
			st.ShapeCells++
		}
	}
	return &Artwork{
		SVG:    paint(t.width, t.shapes, p),
		Shapes: t.shapes,
		Stats:  st,
	}, nil
}

// trace composes the canvas and runs the tracer over it. p must be resolved.
func trace(qr OutputQr, p Params) (*tracer, error) {
	rnd := rng.New(int32(p.Seed))
	g := Compose(qr.Matrix, qr.Width(), p.Margin, p.QuietZone, rnd)
	t := newTracer(newBoard(g, p.Invert), rnd, p)
	if err := t.run(); err != nil {
		return nil, err
	}
	return t, nil
}

func checkInput(qr OutputQr) error {
	if qr.Version < 1 || qr.Version > MaxVersion {
		return qrerr.New(qrerr.ErrCodeInvalidInput, "version %d out of range [1, %d]", qr.Version, MaxVersion)
	}
	if w := qr.Width(); len(qr.Matrix) != w*w {
		return qrerr.New(qrerr.ErrCodeInvalidInput, "matrix has %d cells, version %d needs %d", len(qr.Matrix), qr.Version, w*w)
	}
	return nil
}
