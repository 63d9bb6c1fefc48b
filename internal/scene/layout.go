package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Layout maps pendulum angles to screen space with y pointing down. The
// thread is anchored at the pivot and is Scale units long.
type Layout struct {
	Pivot mgl64.Vec2
	Scale float64
}

// NewLayout centres the pivot and sizes the thread to height/2.25 so the
// ball stays on screen at every angle.
func NewLayout(width, height float64) Layout {
	return Layout{
		Pivot: mgl64.Vec2{width / 2, height / 2},
		Scale: height / 2.25,
	}
}

// Ball returns the ball centre for the given angle.
func (l Layout) Ball(radians float64) mgl64.Vec2 {
	dir := mgl64.Vec2{math.Cos(radians), math.Sin(radians)}
	return l.Pivot.Add(dir.Mul(l.Scale))
}

// ThreadRotation returns the thread's rotation in degrees, clockwise on a
// y-down screen.
func (l Layout) ThreadRotation(r Readout) float64 {
	return r.Degrees
}
