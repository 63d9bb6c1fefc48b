package tui

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

const brailleBase = 0x2800

// dotBits maps a dot's position inside a 2x4 braille cell to its bit.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille raster addressed in dot coordinates, with y growing
// downwards. A canvas of cols x rows cells holds (cols*2) x (rows*4) dots.
type Canvas struct {
	cols, rows int
	cells      []uint8
}

func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{
		cols:  cols,
		rows:  rows,
		cells: make([]uint8, cols*rows),
	}
}

// PixelSize is the drawable area in dots.
func (c *Canvas) PixelSize() (int, int) {
	return c.cols * 2, c.rows * 4
}

func (c *Canvas) cell(x, y int) (int, uint8, bool) {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return 0, 0, false
	}
	return (y/4)*c.cols + x/2, dotBits[y%4][x%2], true
}

// Dot lights the dot nearest to p. Points off the canvas are dropped.
func (c *Canvas) Dot(p mgl64.Vec2) {
	if i, bit, ok := c.cell(int(math.Round(p.X())), int(math.Round(p.Y()))); ok {
		c.cells[i] |= bit
	}
}

func (c *Canvas) Lit(x, y int) bool {
	i, bit, ok := c.cell(x, y)
	return ok && c.cells[i]&bit != 0
}

// Segment samples the line from a to b at sub-dot spacing.
func (c *Canvas) Segment(a, b mgl64.Vec2) {
	d := b.Sub(a)
	n := int(math.Ceil(d.Len()*2)) + 1
	for i := 0; i <= n; i++ {
		c.Dot(a.Add(d.Mul(float64(i) / float64(n))))
	}
}

func (c *Canvas) Disc(center mgl64.Vec2, r float64) {
	reach := int(math.Ceil(r))
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			off := mgl64.Vec2{float64(dx), float64(dy)}
			if off.Len() <= r {
				c.Dot(center.Add(off))
			}
		}
	}
}

func (c *Canvas) Clear() {
	clear(c.cells)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		for _, bits := range c.cells[row*c.cols : (row+1)*c.cols] {
			b.WriteRune(rune(brailleBase + int(bits)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
