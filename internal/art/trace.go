package art

import (
	"strconv"
	"strings"

	qrerr "github.com/cristianadrielbraun/qrglow/internal/errors"
	"github.com/cristianadrielbraun/qrglow/internal/rng"
)

// Shape is one traced region: an outer contour plus the contours of the
// holes it encloses, all in one compound path.
type Shape struct {
	Color string
	path  strings.Builder
}

// Path returns the SVG path data of the shape.
func (s *Shape) Path() string { return s.path.String() }

type direction uint8

const (
	right direction = iota
	down
	left
	up
)

// tracer walks contours over a board. One tracer serves one render.
type tracer struct {
	*board
	rnd     *rng.Splitmix32
	palette []string
	line    int
	finder  int

	shapes []*Shape

	// Set per contour.
	thin   int
	offset float64
	baseX  int
	baseY  int
	cw     bool
	budget int
}

func newTracer(b *board, rnd *rng.Splitmix32, p Params) *tracer {
	return &tracer{
		board:   b,
		rnd:     rnd,
		palette: p.Foreground,
		line:    p.LineThickness,
		finder:  p.FinderThickness,
		budget:  4*len(b.visited) + 4,
	}
}

// run classifies the border-reachable background, then scans the grid row
// by row, starting a contour at every cell not yet claimed.
func (t *tracer) run() error {
	t.seedBorder()
	t.flood()

	w := t.width
	for y := 0; y < w; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if t.visited[i] != unvisited {
				continue
			}

			t.thin = t.line
			if t.grid.Cells[i].Has(FINDER) {
				t.thin = t.finder
			}
			t.offset = strokeOffset(t.thin)

			if !t.on(x, y) {
				if err := t.hole(x, y); err != nil {
					return err
				}
				continue
			}
			if y > 0 && t.on(x, y-1) && t.visited[i-w] != unvisited {
				t.visited[i] = t.visited[i-w]
				continue
			}
			if x > 0 && t.on(x-1, y) && t.visited[i-1] != unvisited {
				t.visited[i] = t.visited[i-1]
				continue
			}
			if err := t.outline(x, y); err != nil {
				return err
			}
		}
	}
	return nil
}

// outline starts a new shape at (x, y) and walks its outer contour clockwise.
func (t *tracer) outline(x, y int) error {
	s := &Shape{Color: t.palette[t.rnd.Intn(len(t.palette))]}
	t.shapes = append(t.shapes, s)
	id := firstShape + int32(len(t.shapes)-1)

	s.path.WriteByte('M')
	s.path.WriteString(num(float64(x*Unit) + t.offset))
	s.path.WriteByte(',')
	s.path.WriteString(num(float64(y*Unit) + t.offset))

	t.baseX, t.baseY, t.cw = x, y, true
	return t.walk(right, x, y, id)
}

// hole handles an off cell that the border flood never reached. Its contour
// is added to the shape on its left, walked counter-clockwise, and the rest
// of the hole is then flooded so the scan does not find it again.
func (t *tracer) hole(x, y int) error {
	if x == 0 || t.visited[y*t.width+x-1] < firstShape {
		return qrerr.New(qrerr.ErrCodeInternalInvariant, "hole at (%d,%d) has no enclosing shape", x, y)
	}
	id := t.visited[y*t.width+x-1]
	s := t.shapes[id-firstShape]

	s.path.WriteByte('M')
	s.path.WriteString(num(float64(x*Unit) - t.offset))
	s.path.WriteByte(',')
	s.path.WriteString(num(float64(y*Unit) - t.offset))
	s.cmd('v', 2*t.offset)

	t.baseX, t.baseY, t.cw = x, y-1, false
	if err := t.walk(down, x-1, y, id); err != nil {
		return err
	}
	t.push(x, y)
	t.flood()
	return nil
}

func (t *tracer) mark(x, y int, id int32) error {
	i := y*t.width + x
	if v := t.visited[i]; v != unvisited && v != id {
		return qrerr.New(qrerr.ErrCodeInternalInvariant, "cell (%d,%d) claimed by %d, then by %d", x, y, v, id)
	}
	t.visited[i] = id
	return nil
}

// walk follows a contour leg by leg until it closes. Each leg runs straight
// while the next cell is on and the diagonal cell on the outer side is off.
// A leg stopped by an on diagonal turns toward it through a mitered corner;
// otherwise the contour turns clockwise around the cell it stopped on.
func (t *tracer) walk(dir direction, x, y int, id int32) error {
	s := t.shapes[id-firstShape]
	last := t.width - 1
	thin := float64(t.thin)
	miter := 2 * t.offset

	for legs := 0; ; legs++ {
		if legs > t.budget {
			return qrerr.New(qrerr.ErrCodeInternalInvariant, "contour of shape %d did not close", id)
		}
		if err := t.mark(x, y, id); err != nil {
			return err
		}
		turn := false

		switch dir {
		case right:
			sx := x
			for x < last {
				next, diag := t.on(x+1, y), y > 0 && t.on(x+1, y-1)
				if !next || diag {
					turn = next && diag
					break
				}
				x++
				if err := t.mark(x, y, id); err != nil {
					return err
				}
			}
			if turn {
				s.cmd('h', float64((x-sx+1)*Unit))
				s.cmd('v', -miter)
				dir, x, y = up, x+1, y-1
			} else {
				s.cmd('h', float64((x-sx)*Unit)+thin)
				dir = down
			}

		case down:
			sy := y
			for y < last {
				next, diag := t.on(x, y+1), x < last && t.on(x+1, y+1)
				if !next || diag {
					turn = next && diag
					break
				}
				y++
				if err := t.mark(x, y, id); err != nil {
					return err
				}
			}
			if turn {
				s.cmd('v', float64((y-sy+1)*Unit))
				s.cmd('h', miter)
				dir, x, y = right, x+1, y+1
			} else {
				s.cmd('v', float64((y-sy)*Unit)+thin)
				dir = left
			}

		case left:
			sx := x
			for x > 0 {
				next, diag := t.on(x-1, y), y < last && t.on(x-1, y+1)
				if !next || diag {
					turn = next && diag
					break
				}
				x--
				if err := t.mark(x, y, id); err != nil {
					return err
				}
			}
			if !t.cw && x == t.baseX && y == t.baseY {
				s.path.WriteByte('z')
				return nil
			}
			if turn {
				s.cmd('h', float64((x-sx-1)*Unit))
				s.cmd('v', miter)
				dir, x, y = down, x-1, y+1
			} else {
				s.cmd('h', float64((x-sx)*Unit)-thin)
				dir = up
			}

		case up:
			sy := y
			for y > 0 {
				next, diag := t.on(x, y-1), x > 0 && t.on(x-1, y-1)
				if !next || diag {
					turn = next && diag
					break
				}
				y--
				if err := t.mark(x, y, id); err != nil {
					return err
				}
			}
			if t.cw && x == t.baseX && y == t.baseY {
				s.path.WriteByte('z')
				return nil
			}
			if turn {
				s.cmd('v', float64((y-sy-1)*Unit))
				s.cmd('h', -miter)
				dir, x, y = left, x-1, y-1
			} else {
				s.cmd('v', float64((y-sy)*Unit)-thin)
				dir = right
			}
		}
	}
}

func (s *Shape) cmd(c byte, v float64) {
	s.path.WriteByte(c)
	s.path.WriteString(num(v))
}

// num formats v in its shortest decimal form. Negative zero prints as 0.
func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
