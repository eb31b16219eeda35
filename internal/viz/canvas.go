package viz

import (
	"strings"

	"github.com/san-kum/crittersim/internal/geom"
)

// Braille cells pack 2x4 dots per character; the canvas resolution in
// dots is (Width*2) x (Height*4). Unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// Line draws with Bresenham's algorithm in dot coordinates.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Circle draws a midpoint circle in dot coordinates.
func (c *Canvas) Circle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y := r, 0
	e := 1 - r
	for x >= y {
		c.Set(cx+x, cy+y)
		c.Set(cx+y, cy+x)
		c.Set(cx-y, cy+x)
		c.Set(cx-x, cy+y)
		c.Set(cx-x, cy-y)
		c.Set(cx-y, cy-x)
		c.Set(cx+y, cy-x)
		c.Set(cx+x, cy-y)
		y++
		if e < 0 {
			e += 2*y + 1
		} else {
			x--
			e += 2*(y-x) + 1
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// View maps world coordinates onto a canvas. World y points up; dot y
// points down.
type View struct {
	Canvas *Canvas
	bounds geom.Rect
	sx, sy float64
}

// NewView fits the given world rect onto a fresh w×h canvas.
func NewView(w, h int, bounds geom.Rect) *View {
	v := &View{Canvas: NewCanvas(w, h), bounds: bounds}
	v.sx = float64(w*2-1) / bounds.Width()
	v.sy = float64(h*4-1) / bounds.Height()
	return v
}

func (v *View) dot(p geom.Vec2) (int, int) {
	x := int((p.X - v.bounds.Min.X) * v.sx)
	y := v.Canvas.Height*4 - 1 - int((p.Y-v.bounds.Min.Y)*v.sy)
	return x, y
}

func (v *View) Point(p geom.Vec2) {
	x, y := v.dot(p)
	v.Canvas.Set(x, y)
}

func (v *View) Segment(a, b geom.Vec2) {
	x0, y0 := v.dot(a)
	x1, y1 := v.dot(b)
	v.Canvas.Line(x0, y0, x1, y1)
}

// CircleAt draws a world-space circle, radius scaled on the horizontal
// axis.
func (v *View) CircleAt(center geom.Vec2, r float64) {
	x, y := v.dot(center)
	v.Canvas.Circle(x, y, int(r*v.sx))
}

// Border outlines a world rect.
func (v *View) Border(r geom.Rect) {
	bl := r.Min
	br := geom.V(r.Max.X, r.Min.Y)
	tl := geom.V(r.Min.X, r.Max.Y)
	tr := r.Max
	v.Segment(bl, br)
	v.Segment(br, tr)
	v.Segment(tr, tl)
	v.Segment(tl, bl)
}
