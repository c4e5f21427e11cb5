package art

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrglow/internal/rng"
)

// sampleMatrix builds a QR-shaped matrix: three finder patterns plus a
// fixed arithmetic data pattern.
func sampleMatrix(version int) []Module {
	q := QRWidth(version)
	m := make([]Module, q*q)
	corners := [][2]int{{0, 0}, {q - 7, 0}, {0, q - 7}}
	for y := 0; y < q; y++ {
		for x := 0; x < q; x++ {
			finder := false
			var a, b int
			for _, c := range corners {
				if x >= c[0] && x < c[0]+7 && y >= c[1] && y < c[1]+7 {
					finder, a, b = true, x-c[0], y-c[1]
				}
			}
			if finder {
				m[y*q+x] = FINDER
				ring := a == 0 || a == 6 || b == 0 || b == 6
				core := a >= 2 && a <= 4 && b >= 2 && b <= 4
				if ring || core {
					m[y*q+x] |= ON
				}
				continue
			}
			m[y*q+x] = DATA
			if (x*7+y*13+x*y)%5 < 2 {
				m[y*q+x] |= ON
			}
		}
	}
	return m
}

// sparseMatrix returns a version 1 matrix with only the given cells on.
func sparseMatrix(flag Module, cells ...[2]int) OutputQr {
	q := QRWidth(1)
	m := make([]Module, q*q)
	for _, c := range cells {
		m[c[1]*q+c[0]] = ON | flag
	}
	return OutputQr{Version: 1, Matrix: m}
}

// randomMatrix fills a matrix from a seeded stream with the given density.
func randomMatrix(version int, seed int32, density float64) []Module {
	q := QRWidth(version)
	r := rng.New(seed)
	m := make([]Module, q*q)
	for i := range m {
		if r.Float64() < density {
			m[i] |= ON
		}
		if r.Float64() < 0.1 {
			m[i] |= FINDER
		}
	}
	return m
}

// bareParams disables every source of noise so only the matrix is traced.
func bareParams() Params {
	p := DefaultParams()
	p.Margin = 0
	p.QuietZone = QuietZoneFull
	return p
}

// components labels the 4-connected regions of on cells; off cells get -1.
func components(b *board) ([]int, int) {
	w := b.width
	label := make([]int, w*w)
	for i := range label {
		label[i] = -1
	}
	n := 0
	for i := range label {
		if label[i] >= 0 || !b.on(i%w, i/w) {
			continue
		}
		queue := []int{i}
		label[i] = n
		for len(queue) > 0 {
			j := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			x, y := j%w, j/w
			for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= w {
					continue
				}
				k := ny*w + nx
				if label[k] < 0 && b.on(nx, ny) {
					label[k] = n
					queue = append(queue, k)
				}
			}
		}
		n++
	}
	return label, n
}

var (
	subpathRe = regexp.MustCompile(`M[^M]*`)
	startRe   = regexp.MustCompile(`^M(-?[\d.]+),(-?[\d.]+)([hv])`)
	stepRe    = regexp.MustCompile(`([hv])(-?[\d.]+)`)
)

// requireClosed checks that every subpath of d ends with z and that the
// implicit closing segment is axis-aligned: outer contours open with h and
// end directly below their start, hole contours open with v and end level
// with theirs.
func requireClosed(t *testing.T, d string) {
	t.Helper()
	subs := subpathRe.FindAllString(d, -1)
	require.NotEmpty(t, subs, d)
	for _, sub := range subs {
		require.Regexp(t, `z$`, sub)
		start := startRe.FindStringSubmatch(sub)
		require.NotNil(t, start, sub)

		var dx, dy float64
		for _, m := range stepRe.FindAllStringSubmatch(sub, -1) {
			v, err := strconv.ParseFloat(m[2], 64)
			require.NoError(t, err)
			if m[1] == "h" {
				dx += v
			} else {
				dy += v
			}
		}
		if start[3] == "h" {
			require.Zero(t, dx, sub)
			require.Greater(t, dy, 0.0, sub)
		} else {
			require.Zero(t, dy, sub)
		}
	}
}
