package art

// Visitation values. Anything at or above firstShape is a shape id.
const (
	unvisited  int32 = 0
	background int32 = 1
	firstShape int32 = 2
)

// board pairs the working grid with the visitation grid of one render.
type board struct {
	grid    *Grid
	width   int
	invert  bool
	visited []int32
	stack   []int
}

func newBoard(g *Grid, invert bool) *board {
	return &board{
		grid:    g,
		width:   g.Width,
		invert:  invert,
		visited: make([]int32, len(g.Cells)),
	}
}

// on reports whether (x, y) is drawn, honoring inversion.
func (b *board) on(x, y int) bool {
	return b.grid.Cells[y*b.width+x].Has(ON) != b.invert
}

func (b *board) push(x, y int) {
	b.stack = append(b.stack, y*b.width+x)
}

// seedBorder queues every off cell on the canvas edge.
func (b *board) seedBorder() {
	last := b.width - 1
	for x := 0; x < b.width; x++ {
		if !b.on(x, 0) {
			b.push(x, 0)
		}
	}
	for y := 1; y < last; y++ {
		if !b.on(0, y) {
			b.push(0, y)
		}
		if !b.on(last, y) {
			b.push(last, y)
		}
	}
	for x := 0; x < b.width; x++ {
		if !b.on(x, last) {
			b.push(x, last)
		}
	}
}

// flood drains the work stack, marking every off cell 8-connected to a
// queued cell as background. Marked cells are never queued again, so all
// calls over one render touch each cell at most once.
func (b *board) flood() {
	last := b.width - 1
	for len(b.stack) > 0 {
		i := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		if b.visited[i] != unvisited {
			continue
		}
		b.visited[i] = background

		x, y := i%b.width, i/b.width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if nx < 0 || nx > last || ny < 0 || ny > last {
					continue
				}
				if b.on(nx, ny) || b.visited[ny*b.width+nx] != unvisited {
					continue
				}
				b.push(nx, ny)
			}
		}
	}
}
