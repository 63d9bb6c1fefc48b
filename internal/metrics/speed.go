package metrics

import (
	"math"

	"github.com/san-kum/pendulum/internal/dynamo"
)

// PeakSpeed tracks the largest linear speed of the ball.
type PeakSpeed struct {
	length float64
	peak   float64
}

func NewPeakSpeed(length float64) *PeakSpeed {
	return &PeakSpeed{length: length}
}

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) Observe(x dynamo.State, t float64) {
	if len(x) < 2 {
		return
	}
	p.peak = math.Max(p.peak, math.Abs(x[dynamo.Velocity]*p.length))
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }

// Defaults returns the metrics recorded for every headless run of a
// pendulum of the given length.
func Defaults(length float64, model dynamo.Hamiltonian) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergy(model),
		NewEnergyDrift(model),
		NewPeakSpeed(length),
	}
}
