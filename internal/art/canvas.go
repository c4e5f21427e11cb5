package art

import "github.com/cristianadrielbraun/qrglow/internal/rng"

// quietRun is the length of the clear stretch kept on the quiet-zone frame
// next to each finder pattern.
const quietRun = 8

// Grid is the padded working canvas: the symbol centered inside a noisy
// margin. It is not modified once Compose returns.
type Grid struct {
	Width int
	Cells []Module
}

// At returns the cell at (x, y).
func (g *Grid) At(x, y int) Module { return g.Cells[y*g.Width+x] }

// Compose embeds the qrWidth x qrWidth matrix in a canvas with margin cells
// on every side and fills the margin with noise drawn from rnd. The draw
// order is fixed so the same seed always produces the same canvas.
func Compose(matrix []Module, qrWidth, margin int, qz QuietZone, rnd *rng.Splitmix32) *Grid {
	mw := qrWidth + 2*margin
	g := &Grid{Width: mw, Cells: make([]Module, mw*mw)}

	noise := func(x, y int) {
		if rnd.Float64() > 0.5 {
			g.Cells[y*mw+x] = ON
		}
	}

	// Bands of non-positive extent are empty, so margins of 0 and 1 draw nothing here.
	for y := 0; y < margin-1; y++ {
		for x := 0; x < mw; x++ {
			noise(x, y)
		}
	}
	for y := margin - 1; y < margin+qrWidth+1; y++ {
		for x := 0; x < margin-1; x++ {
			noise(x, y)
		}
		if y >= margin && y < margin+qrWidth {
			row := (y - margin) * qrWidth
			copy(g.Cells[y*mw+margin:y*mw+margin+qrWidth], matrix[row:row+qrWidth])
		}
		for x := margin + qrWidth + 1; x < mw; x++ {
			noise(x, y)
		}
	}
	for y := margin + qrWidth + 1; y < mw; y++ {
		for x := 0; x < mw; x++ {
			noise(x, y)
		}
	}

	// With no margin the frame lies outside the canvas.
	if qz != QuietZoneMinimal || margin == 0 {
		return g
	}
	inner, outer := margin-1, mw-margin
	for x := margin + quietRun; x < outer-quietRun; x++ {
		noise(x, inner)
	}
	for y := margin + quietRun; y < outer; y++ {
		if y < outer-quietRun {
			noise(inner, y)
		}
		noise(outer, y)
	}
	for x := margin + quietRun; x <= outer; x++ {
		noise(x, outer)
	}
	return g
}
