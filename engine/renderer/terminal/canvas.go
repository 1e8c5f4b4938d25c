package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// canvas is a braille raster: every cell holds a 2x4 grid of dots, one
// color and the depth of the nearest opaque stroke drawn into it.
type canvas struct {
	w, h  int // in cells
	mask  [][]uint8
	color [][]colorful.Color
	depth [][]float32
	used  [][]bool
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h}
	c.mask = make([][]uint8, h)
	c.color = make([][]colorful.Color, h)
	c.depth = make([][]float32, h)
	c.used = make([][]bool, h)
	for i := 0; i < h; i++ {
		c.mask[i] = make([]uint8, w)
		c.color[i] = make([]colorful.Color, w)
		c.depth[i] = make([]float32, w)
		c.used[i] = make([]bool, w)
	}
	c.clear()
	return c
}

func (c *canvas) clear() {
	inf := math32.Inf(1)
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			c.mask[y][x] = 0
			c.depth[y][x] = inf
			c.used[y][x] = false
		}
	}
}

// dotBit maps a dot inside its cell to the braille pattern bit.
var dotBit = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

type stroke struct {
	color      colorful.Color
	depthTest  bool
	depthWrite bool
}

// setDot sets a dot at micro coords (2x4 per cell). z is NDC depth in [-1, 1].
func (c *canvas) setDot(mx, my int, z float32, s stroke) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= c.h || cx >= c.w {
		return
	}
	if s.depthTest && z > c.depth[cy][cx] {
		return
	}
	if s.depthWrite {
		c.depth[cy][cx] = z
	}
	c.mask[cy][cx] |= dotBit[rx][ry]
	if !c.used[cy][cx] || s.depthWrite {
		c.color[cy][cx] = s.color
		c.used[cy][cx] = true
	} else {
		c.color[cy][cx] = c.color[cy][cx].BlendRgb(s.color, 0.5)
	}
}

// clip trims the segment to the raster rectangle in dot space
// (Liang-Barsky). Returns the parameters of the visible part along the
// segment, or false when nothing is visible.
func (c *canvas) clip(x0, y0, x1, y1 float32) (float32, float32, bool) {
	for _, v := range [4]float32{x0, y0, x1, y1} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return 0, 0, false
		}
	}
	maxX := float32(c.w*2 - 1)
	maxY := float32(c.h*4 - 1)
	dx, dy := x1-x0, y1-y0
	t0, t1 := float32(0), float32(1)
	edges := [4][2]float32{
		{-dx, x0},
		{dx, maxX - x0},
		{-dy, y0},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return t0, t1, true
}

// line clips a segment given in dot coordinates to the raster and draws the
// visible part with Bresenham, interpolating depth.
func (c *canvas) line(fx0, fy0, z0, fx1, fy1, z1 float32, s stroke) {
	t0, t1, ok := c.clip(fx0, fy0, fx1, fy1)
	if !ok {
		return
	}
	dz := z1 - z0
	z0, z1 = z0+dz*t0, z0+dz*t1
	x0 := int(fx0 + (fx1-fx0)*t0 + 0.5)
	y0 := int(fy0 + (fy1-fy0)*t0 + 0.5)
	x1 := int(fx0 + (fx1-fx0)*t1 + 0.5)
	y1 := int(fy0 + (fy1-fy0)*t1 + 0.5)

	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := max(dx, -dy)
	err := dx + dy
	i := 0
	for {
		t := float32(0)
		if steps > 0 {
			t = float32(i) / float32(steps)
		}
		c.setDot(x0, y0, z0+(z1-z0)*t, s)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
		i++
	}
}

// lines renders the canvas, one string per cell row, colored with lipgloss.
func (c *canvas) lines() []string {
	out := make([]string, c.h)
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		sb.Reset()
		x := 0
		for x < c.w {
			if c.mask[y][x] == 0 {
				sb.WriteRune(' ')
				x++
				continue
			}
			// Group runs of the same color into one styled span.
			hex := c.color[y][x].Clamped().Hex()
			run := []rune{rune(0x2800 + int(c.mask[y][x]))}
			x++
			for x < c.w && c.mask[y][x] != 0 && c.color[y][x].Clamped().Hex() == hex {
				run = append(run, rune(0x2800+int(c.mask[y][x])))
				x++
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(string(run)))
		}
		out[y] = sb.String()
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
