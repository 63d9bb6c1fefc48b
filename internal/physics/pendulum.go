package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/pendulum/internal/dynamo"
)

const (
	// Gravity is the signed gravitational constant driving the swing.
	Gravity = 9.81

	// LegacyPi is the two-decimal constant used when degree conversions
	// must match older recorded runs exactly.
	LegacyPi = 3.14
)

// Pendulum is a single-point pendulum whose angle is measured from the
// horizontal, so the resting position is at Pi/2 rad.
//
// Tick is a single explicit Euler step with no clamping of dt: a frame stall
// produces a proportionally large, possibly unstable, step.
type Pendulum struct {
	Gravity float64
	// Pi is used by SetDegrees and Degrees only.
	Pi float64

	length       float64
	angle        float64
	velocity     float64
	acceleration float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Gravity: Gravity,
		Pi:      math.Pi,
		length:  1.0,
	}
}

// SetLength rejects lengths that would make Tick divide by zero or
// propagate NaN.
func (p *Pendulum) SetLength(meters float64) error {
	if !(meters > 0) || math.IsInf(meters, 0) {
		return fmt.Errorf("length %v: %w", meters, dynamo.ErrParameterBounds)
	}
	p.length = meters
	return nil
}

func (p *Pendulum) SetRadians(radians float64) {
	p.angle = radians
}

func (p *Pendulum) SetDegrees(degrees float64) {
	p.angle = degrees / 180.0 * p.Pi
}

// SetVelocity sets the angular velocity in rad/s.
func (p *Pendulum) SetVelocity(radPerSec float64) {
	p.velocity = radPerSec
}

func (p *Pendulum) Length() float64  { return p.length }
func (p *Pendulum) Radians() float64 { return p.angle }
func (p *Pendulum) Degrees() float64 { return p.angle / p.Pi * 180.0 }

// Acceleration is the angular acceleration computed by the last Tick.
func (p *Pendulum) Acceleration() float64       { return p.acceleration }
func (p *Pendulum) LinearAcceleration() float64 { return p.acceleration * p.length }
func (p *Pendulum) Velocity() float64           { return p.velocity }
func (p *Pendulum) LinearVelocity() float64     { return p.velocity * p.length }

func (p *Pendulum) Tick(dt float64) {
	p.acceleration = p.Gravity * math.Cos(p.angle) / p.length
	p.velocity += p.acceleration * dt
	p.angle += p.velocity * dt
}

func (p *Pendulum) State() dynamo.State {
	return dynamo.State{p.angle, p.velocity, p.acceleration}
}

// Restore loads angle and velocity from x; acceleration is recomputed on
// the next Tick.
func (p *Pendulum) Restore(x dynamo.State) {
	p.angle = x[dynamo.Angle]
	p.velocity = x[dynamo.Velocity]
	if len(x) > dynamo.Acceleration {
		p.acceleration = x[dynamo.Acceleration]
	}
}

// Energy returns the specific mechanical energy (per unit mass) of x,
// measured from the resting position so it is zero only at rest.
func (p *Pendulum) Energy(x dynamo.State) float64 {
	// KE = 0.5 * (L*omega)^2
	// PE = g * L * (1 - sin(theta)), zero at theta = pi/2
	v := p.length * x[dynamo.Velocity]
	ke := 0.5 * v * v
	pe := p.Gravity * p.length * (1 - math.Sin(x[dynamo.Angle]))
	return ke + pe
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"length":  p.length,
		"gravity": p.Gravity,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "length":
		return p.SetLength(value)
	case "gravity":
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("gravity %v: %w", value, dynamo.ErrParameterBounds)
		}
		p.Gravity = value
	default:
		return fmt.Errorf("param %s: %w", name, dynamo.ErrUnknownParam)
	}
	return nil
}
